package port

import (
	"context"

	"agrisight/internal/domain/entity"
)

// ScanRepository хранилище записей о сканах. Репозиторий только пишет то,
// что ему велели: решения о смене статуса принимает оркестратор.
type ScanRepository interface {
	Create(ctx context.Context, rec *entity.ScanRecord) error
	Update(ctx context.Context, rec *entity.ScanRecord) error
	Get(ctx context.Context, id uint) (*entity.ScanRecord, error)
	List(ctx context.Context, limit int) ([]entity.ScanRecord, error)
	Delete(ctx context.Context, id uint) error
}

// SensorRepository история показаний датчиков.
type SensorRepository interface {
	Add(ctx context.Context, r *entity.SensorReading) error
	Recent(ctx context.Context, limit int) ([]entity.SensorReading, error)
	Latest(ctx context.Context) (*entity.SensorReading, error)
}

// ActionRepository журнал команд устройству.
type ActionRepository interface {
	Add(ctx context.Context, a *entity.ActionLog) error
	Recent(ctx context.Context, limit int) ([]entity.ActionLog, error)
}

// ChatRepository история диалогов с ИИ-агрономом.
type ChatRepository interface {
	Add(ctx context.Context, m *entity.ChatMessage) error
	ByScan(ctx context.Context, scanID uint) ([]entity.ChatMessage, error)
	DeleteByScan(ctx context.Context, scanID uint) error
}

// WeatherRepository история погодных запросов.
type WeatherRepository interface {
	Add(ctx context.Context, w *entity.WeatherReport) error
}
