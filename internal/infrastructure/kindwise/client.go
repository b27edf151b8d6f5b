package kindwise

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

const (
	// DefaultBaseURL API сервиса crop.health.
	DefaultBaseURL = "https://crop.kindwise.com/api/v1"

	defaultTimeout      = 30 * time.Second
	defaultPollInterval = time.Second
	defaultMaxPolls     = 10

	statusCompleted = "COMPLETED"
)

// Config параметры клиента. Интервал и бюджет опроса выведены в конфигурацию,
// чтобы тесты не ждали реального времени.
type Config struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	PollInterval time.Duration
	MaxPolls     int
}

// Client клиент асинхронного API определения болезней.
// Протокол: POST снимка → либо готовый результат, либо токен продолжения,
// по которому результат запрашивается повторно.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient создаёт клиент, подставляя значения по умолчанию.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxPolls == 0 {
		cfg.MaxPolls = defaultMaxPolls
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type suggestion struct {
	Name           string  `json:"name"`
	Probability    float64 `json:"probability"`
	ScientificName string  `json:"scientific_name"`
}

type suggestionList struct {
	Suggestions []suggestion `json:"suggestions"`
}

type apiResult struct {
	Disease suggestionList `json:"disease"`
	Crop    suggestionList `json:"crop"`
}

type apiResponse struct {
	Status string     `json:"status"`
	Token  string     `json:"token"`
	Result *apiResult `json:"result"`
}

// Identify отправляет снимок на анализ и дожидается результата.
// Исчерпанный бюджет опроса — не ошибка: возвращается результат-заглушка.
func (c *Client) Identify(ctx context.Context, imageData []byte, cropType string) (entity.IdentificationResult, error) {
	var zero entity.IdentificationResult

	if c.cfg.APIKey == "" {
		return zero, fmt.Errorf("%w: identification api key", entity.ErrConfiguration)
	}

	payload, err := json.Marshal(map[string]any{
		"images":         []string{base64.StdEncoding.EncodeToString(imageData)},
		"similar_images": true,
	})
	if err != nil {
		return zero, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/identification", bytes.NewReader(payload))
	if err != nil {
		return zero, err
	}
	req.Header.Set("Api-Key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, wrapNetErr(err)
	}
	defer resp.Body.Close()

	// Сервис отвечает 201 с готовым результатом или 200 с токеном.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return zero, &entity.UpstreamError{StatusCode: resp.StatusCode}
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return zero, fmt.Errorf("decode identification response: %w", err)
	}

	if body.Result != nil && body.Status == statusCompleted {
		return normalize(body.Result, cropType), nil
	}

	if body.Token == "" {
		return zero, errors.New("no continuation token in identification response")
	}

	return c.poll(ctx, body.Token, cropType)
}

// poll запрашивает результат по токену с фиксированным интервалом.
// Любой статус вне {200, 202, 204} останавливает опрос досрочно.
func (c *Client) poll(ctx context.Context, token, cropType string) (entity.IdentificationResult, error) {
	var zero entity.IdentificationResult

	for attempt := 0; attempt < c.cfg.MaxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%w: %v", entity.ErrTimeout, ctx.Err())
		case <-time.After(c.cfg.PollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/identification/"+token, nil)
		if err != nil {
			return zero, err
		}
		req.Header.Set("Api-Key", c.cfg.APIKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return zero, wrapNetErr(err)
		}

		if resp.StatusCode == http.StatusOK {
			var body apiResponse
			err := json.NewDecoder(resp.Body).Decode(&body)
			resp.Body.Close()
			if err != nil {
				return zero, fmt.Errorf("decode poll response: %w", err)
			}
			if body.Result != nil {
				return normalize(body.Result, cropType), nil
			}
			continue
		}

		resp.Body.Close()
		if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusNoContent {
			break
		}
	}

	return entity.NotIdentified(cropType), nil
}

// normalize сворачивает вложенные списки предложений до top-1.
// Отсутствующие поля получают значения по умолчанию, а не nil.
func normalize(res *apiResult, cropType string) entity.IdentificationResult {
	out := entity.IdentificationResult{
		Disease:     "Unknown",
		Confidence:  0,
		Description: "No description available",
		CropName:    cropType,
		Conclusive:  true,
	}
	if out.CropName == "" {
		out.CropName = entity.DefaultCropType
	}

	if len(res.Disease.Suggestions) > 0 {
		top := res.Disease.Suggestions[0]
		if top.Name != "" {
			out.Disease = top.Name
		}
		out.Confidence = top.Probability
		if top.ScientificName != "" {
			out.Description = top.ScientificName
		}
	}
	if len(res.Crop.Suggestions) > 0 && res.Crop.Suggestions[0].Name != "" {
		out.CropName = res.Crop.Suggestions[0].Name
	}
	return out
}

// wrapNetErr помечает сетевые таймауты классом ErrTimeout.
func wrapNetErr(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %v", entity.ErrTimeout, err)
	}
	return err
}

// Проверка реализации интерфейса
var _ port.DiseaseIdentifier = (*Client)(nil)
