package esp32

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"agrisight/internal/domain/port"
)

// Client управление контроллером теплицы по HTTP.
// Устройство отвечает медленно, поэтому таймауты короткие и фиксированные.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиент устройства по адресу вида host:port.
func NewClient(host string, port int) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d", host, port),
		http:    &http.Client{Timeout: 12 * time.Second},
	}
}

// Relay включает или выключает помпу.
func (c *Client) Relay(ctx context.Context, action string) error {
	return c.post(ctx, "/relay/"+action)
}

// Capture просит камеру сделать снимок; кадр устройство загрузит само.
func (c *Client) Capture(ctx context.Context) error {
	return c.post(ctx, "/capture")
}

// TriggerSensors запускает чтение DHT и датчика влажности почвы.
// Показания устройство пришлёт на сервер отдельными запросами.
func (c *Client) TriggerSensors(ctx context.Context) error {
	if err := c.post(ctx, "/read/dht"); err != nil {
		log.Printf("[ESP] DHT trigger error: %v", err)
	}
	return c.post(ctx, "/read/soil")
}

// Online проверяет доступность устройства.
func (c *Client) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) post(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("device request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("device request %s: status %d", path, resp.StatusCode)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.DeviceController = (*Client)(nil)
