package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

// LowMoistureThreshold влажность почвы в процентах, ниже которой уходит
// предупреждение в мессенджер.
const LowMoistureThreshold = 20.0

// TelemetryService приём показаний датчиков и команды устройству.
type TelemetryService struct {
	sensors  port.SensorRepository
	actions  port.ActionRepository
	weather  port.WeatherRepository
	device   port.DeviceController
	notifier port.Notifier
}

func NewTelemetryService(sensors port.SensorRepository, actions port.ActionRepository, weather port.WeatherRepository, device port.DeviceController, notifier port.Notifier) *TelemetryService {
	return &TelemetryService{sensors: sensors, actions: actions, weather: weather, device: device, notifier: notifier}
}

// Record сохраняет показания, присланные ESP32. Значение -1 означает
// неудачное чтение датчика: вместо него берётся предыдущее показание.
func (s *TelemetryService) Record(ctx context.Context, moisture, temperature, humidity float64) (*entity.SensorReading, error) {
	if last, err := s.sensors.Latest(ctx); err == nil {
		if moisture < 0 {
			moisture = last.Moisture
		}
		if temperature < 0 {
			temperature = last.Temperature
		}
		if humidity < 0 {
			humidity = last.Humidity
		}
	}

	reading := &entity.SensorReading{
		CreatedAt:   time.Now(),
		Moisture:    moisture,
		Temperature: temperature,
		Humidity:    humidity,
	}
	if err := s.sensors.Add(ctx, reading); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrPersistence, err)
	}

	if reading.Moisture >= 0 && reading.Moisture < LowMoistureThreshold {
		s.notifier.SendText(fmt.Sprintf("⚠️ Низкая влажность почвы: %.0f%%\nРастению может не хватать воды.", reading.Moisture))
	}
	return reading, nil
}

// History возвращает последние показания.
func (s *TelemetryService) History(ctx context.Context, limit int) ([]entity.SensorReading, error) {
	return s.sensors.Recent(ctx, limit)
}

// Latest возвращает последнее показание датчиков.
func (s *TelemetryService) Latest(ctx context.Context) (*entity.SensorReading, error) {
	return s.sensors.Latest(ctx)
}

// SwitchPump включает/выключает помпу и пишет команду в журнал действий.
func (s *TelemetryService) SwitchPump(ctx context.Context, action string) error {
	if action != "on" && action != "off" {
		return fmt.Errorf("unknown relay action %q", action)
	}
	if err := s.device.Relay(ctx, action); err != nil {
		return err
	}

	entry := &entity.ActionLog{CreatedAt: time.Now(), ActionType: "relay_control", Data: "pump_" + action}
	if err := s.actions.Add(ctx, entry); err != nil {
		// Команда уже выполнена, журнал — лучшая попытка.
		log.Printf("Error logging relay action: %v", err)
	}

	if action == "on" {
		s.notifier.SendText("💧 Помпа включена")
	} else {
		s.notifier.SendText("🛑 Помпа выключена")
	}
	return nil
}

// RecordWeather пишет погодный запрос в историю. Лучшая попытка:
// ответ пользователю не зависит от записи.
func (s *TelemetryService) RecordWeather(ctx context.Context, report *entity.WeatherReport) {
	if s.weather == nil {
		return
	}
	if err := s.weather.Add(ctx, report); err != nil {
		log.Printf("Error logging weather report: %v", err)
	}
}

// Actions возвращает журнал команд.
func (s *TelemetryService) Actions(ctx context.Context, limit int) ([]entity.ActionLog, error) {
	return s.actions.Recent(ctx, limit)
}
