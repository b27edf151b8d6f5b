package storage

import (
	"context"
	"sync"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

// MemorySensorRepository in-memory история показаний датчиков.
type MemorySensorRepository struct {
	mu       sync.RWMutex
	nextID   uint
	readings []entity.SensorReading
}

func NewMemorySensorRepository() *MemorySensorRepository {
	return &MemorySensorRepository{}
}

func (r *MemorySensorRepository) Add(ctx context.Context, reading *entity.SensorReading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	reading.ID = r.nextID
	r.readings = append(r.readings, *reading)
	return nil
}

func (r *MemorySensorRepository) Recent(ctx context.Context, limit int) ([]entity.SensorReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.SensorReading, 0, len(r.readings))
	for i := len(r.readings) - 1; i >= 0; i-- {
		out = append(out, r.readings[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *MemorySensorRepository) Latest(ctx context.Context) (*entity.SensorReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.readings) == 0 {
		return nil, entity.ErrNotFound
	}
	last := r.readings[len(r.readings)-1]
	return &last, nil
}

// MemoryActionRepository in-memory журнал команд.
type MemoryActionRepository struct {
	mu      sync.RWMutex
	nextID  uint
	actions []entity.ActionLog
}

func NewMemoryActionRepository() *MemoryActionRepository {
	return &MemoryActionRepository{}
}

func (r *MemoryActionRepository) Add(ctx context.Context, a *entity.ActionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	a.ID = r.nextID
	r.actions = append(r.actions, *a)
	return nil
}

func (r *MemoryActionRepository) Recent(ctx context.Context, limit int) ([]entity.ActionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.ActionLog, 0, len(r.actions))
	for i := len(r.actions) - 1; i >= 0; i-- {
		out = append(out, r.actions[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// MemoryChatRepository in-memory история диалогов.
type MemoryChatRepository struct {
	mu     sync.RWMutex
	nextID uint
	msgs   []entity.ChatMessage
}

func NewMemoryChatRepository() *MemoryChatRepository {
	return &MemoryChatRepository{}
}

func (r *MemoryChatRepository) Add(ctx context.Context, m *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	m.ID = r.nextID
	r.msgs = append(r.msgs, *m)
	return nil
}

func (r *MemoryChatRepository) ByScan(ctx context.Context, scanID uint) ([]entity.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entity.ChatMessage
	for _, m := range r.msgs {
		if m.ScanID == scanID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemoryChatRepository) DeleteByScan(ctx context.Context, scanID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.msgs[:0]
	for _, m := range r.msgs {
		if m.ScanID != scanID {
			kept = append(kept, m)
		}
	}
	r.msgs = kept
	return nil
}

// MemoryWeatherRepository in-memory история погодных запросов.
type MemoryWeatherRepository struct {
	mu      sync.Mutex
	nextID  uint
	reports []entity.WeatherReport
}

func NewMemoryWeatherRepository() *MemoryWeatherRepository {
	return &MemoryWeatherRepository{}
}

func (r *MemoryWeatherRepository) Add(ctx context.Context, w *entity.WeatherReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	w.ID = r.nextID
	r.reports = append(r.reports, *w)
	return nil
}

// Проверка реализации интерфейсов
var (
	_ port.SensorRepository  = (*MemorySensorRepository)(nil)
	_ port.ActionRepository  = (*MemoryActionRepository)(nil)
	_ port.ChatRepository    = (*MemoryChatRepository)(nil)
	_ port.WeatherRepository = (*MemoryWeatherRepository)(nil)
)
