package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"agrisight/internal/domain/entity"
)

// OpenDB подключается к Postgres и накатывает схему.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&entity.ScanRecord{},
		&entity.SensorReading{},
		&entity.ActionLog{},
		&entity.ChatMessage{},
		&entity.WeatherReport{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}
