package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

// GormSensorRepository история показаний датчиков в Postgres.
type GormSensorRepository struct {
	db *gorm.DB
}

func NewGormSensorRepository(db *gorm.DB) *GormSensorRepository {
	return &GormSensorRepository{db: db}
}

func (r *GormSensorRepository) Add(ctx context.Context, reading *entity.SensorReading) error {
	return r.db.WithContext(ctx).Create(reading).Error
}

func (r *GormSensorRepository) Recent(ctx context.Context, limit int) ([]entity.SensorReading, error) {
	var readings []entity.SensorReading
	q := r.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *GormSensorRepository) Latest(ctx context.Context) (*entity.SensorReading, error) {
	var reading entity.SensorReading
	if err := r.db.WithContext(ctx).Order("created_at desc").First(&reading).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &reading, nil
}

// GormActionRepository журнал команд в Postgres.
type GormActionRepository struct {
	db *gorm.DB
}

func NewGormActionRepository(db *gorm.DB) *GormActionRepository {
	return &GormActionRepository{db: db}
}

func (r *GormActionRepository) Add(ctx context.Context, a *entity.ActionLog) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *GormActionRepository) Recent(ctx context.Context, limit int) ([]entity.ActionLog, error) {
	var actions []entity.ActionLog
	q := r.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

// GormChatRepository история диалогов в Postgres.
type GormChatRepository struct {
	db *gorm.DB
}

func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

func (r *GormChatRepository) Add(ctx context.Context, m *entity.ChatMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *GormChatRepository) ByScan(ctx context.Context, scanID uint) ([]entity.ChatMessage, error) {
	var msgs []entity.ChatMessage
	err := r.db.WithContext(ctx).
		Where("scan_id = ?", scanID).
		Order("created_at asc").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *GormChatRepository) DeleteByScan(ctx context.Context, scanID uint) error {
	return r.db.WithContext(ctx).Where("scan_id = ?", scanID).Delete(&entity.ChatMessage{}).Error
}

// GormWeatherRepository история погодных запросов в Postgres.
type GormWeatherRepository struct {
	db *gorm.DB
}

func NewGormWeatherRepository(db *gorm.DB) *GormWeatherRepository {
	return &GormWeatherRepository{db: db}
}

func (r *GormWeatherRepository) Add(ctx context.Context, w *entity.WeatherReport) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// Проверка реализации интерфейсов
var (
	_ port.SensorRepository  = (*GormSensorRepository)(nil)
	_ port.ActionRepository  = (*GormActionRepository)(nil)
	_ port.ChatRepository    = (*GormChatRepository)(nil)
	_ port.WeatherRepository = (*GormWeatherRepository)(nil)
)
