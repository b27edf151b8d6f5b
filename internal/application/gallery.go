package app

import (
	"context"
	"log"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

// GalleryService список сканов и выдача/удаление артефактов.
type GalleryService struct {
	store port.ImageStore
	scans port.ScanRepository
	chats port.ChatRepository
}

func NewGalleryService(store port.ImageStore, scans port.ScanRepository, chats port.ChatRepository) *GalleryService {
	return &GalleryService{store: store, scans: scans, chats: chats}
}

// List возвращает записи сканов, новые первыми.
func (s *GalleryService) List(ctx context.Context, limit int) ([]entity.ScanRecord, error) {
	return s.scans.List(ctx, limit)
}

// Delete удаляет запись скана вместе с артефактом и историей чата.
func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	rec, err := s.scans.Get(ctx, id)
	if err != nil {
		return err
	}

	// Чистим все три артефакта конвейера: исходный, _clean и _enhanced.
	// Часть из них могла не появиться (загрузка без анализа) или быть
	// удалена раньше, запись чистим в любом случае.
	for _, name := range entity.ArtifactNames(rec.ImagePath) {
		if err := s.store.Delete(ctx, name); err != nil {
			log.Printf("Error deleting artifact %s: %v", name, err)
		}
	}
	if err := s.chats.DeleteByScan(ctx, id); err != nil {
		log.Printf("Error deleting chats for scan %d: %v", id, err)
	}
	return s.scans.Delete(ctx, id)
}

// Download отдаёт байты артефакта по имени.
func (s *GalleryService) Download(ctx context.Context, name string) ([]byte, error) {
	return s.store.Get(ctx, name)
}
