package port

import "context"

// DeviceController управление контроллером теплицы (ESP32).
type DeviceController interface {
	// Relay включает или выключает помпу. action: "on" или "off".
	Relay(ctx context.Context, action string) error

	// Capture просит камеру сделать снимок; кадр устройство само
	// загрузит на сервер через POST /scan.
	Capture(ctx context.Context) error

	// TriggerSensors запускает чтение DHT и датчика влажности почвы.
	TriggerSensors(ctx context.Context) error

	// Online проверяет доступность устройства.
	Online(ctx context.Context) bool
}
