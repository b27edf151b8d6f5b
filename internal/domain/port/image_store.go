package port

import "context"

// ImageStore хранилище артефактов изображений по имени файла.
// Конвейер только дописывает: один объект никогда не перезаписывается.
type ImageStore interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}
