package storage

import (
	"context"
	"sync"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

// MemoryScanRepository in-memory хранилище записей о сканах.
// Хранит копии, поэтому параллельные обновления разных записей не пересекаются.
type MemoryScanRepository struct {
	mu     sync.RWMutex
	nextID uint
	scans  map[uint]entity.ScanRecord
}

// NewMemoryScanRepository создаёт новое in-memory хранилище
func NewMemoryScanRepository() *MemoryScanRepository {
	return &MemoryScanRepository{scans: make(map[uint]entity.ScanRecord)}
}

// Create сохраняет новую запись и присваивает ей ID.
func (r *MemoryScanRepository) Create(ctx context.Context, rec *entity.ScanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rec.ID = r.nextID
	r.scans[rec.ID] = *rec
	return nil
}

// Update перезаписывает существующую запись.
func (r *MemoryScanRepository) Update(ctx context.Context, rec *entity.ScanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scans[rec.ID]; !exists {
		return entity.ErrNotFound
	}
	r.scans[rec.ID] = *rec
	return nil
}

// Get возвращает копию записи по ID.
func (r *MemoryScanRepository) Get(ctx context.Context, id uint) (*entity.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.scans[id]
	if !exists {
		return nil, entity.ErrNotFound
	}
	return &rec, nil
}

// List возвращает записи, новые первыми.
func (r *MemoryScanRepository) List(ctx context.Context, limit int) ([]entity.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.ScanRecord, 0, len(r.scans))
	for id := r.nextID; id >= 1; id-- {
		if rec, exists := r.scans[id]; exists {
			out = append(out, rec)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// Delete удаляет запись.
func (r *MemoryScanRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.scans, id)
	return nil
}

// Проверка реализации интерфейса
var _ port.ScanRepository = (*MemoryScanRepository)(nil)
