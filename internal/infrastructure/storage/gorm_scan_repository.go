package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

// GormScanRepository хранилище записей о сканах в Postgres.
type GormScanRepository struct {
	db *gorm.DB
}

func NewGormScanRepository(db *gorm.DB) *GormScanRepository {
	return &GormScanRepository{db: db}
}

func (r *GormScanRepository) Create(ctx context.Context, rec *entity.ScanRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *GormScanRepository) Update(ctx context.Context, rec *entity.ScanRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *GormScanRepository) Get(ctx context.Context, id uint) (*entity.ScanRecord, error) {
	var rec entity.ScanRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *GormScanRepository) List(ctx context.Context, limit int) ([]entity.ScanRecord, error) {
	var recs []entity.ScanRecord
	q := r.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *GormScanRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.ScanRecord{}, id).Error
}

// Проверка реализации интерфейса
var _ port.ScanRepository = (*GormScanRepository)(nil)
