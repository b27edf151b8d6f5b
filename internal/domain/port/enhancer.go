package port

import "context"

// ImageEnhancer интерфейс двухэтапного улучшения снимка.
type ImageEnhancer interface {
	// Enhance выполняет очистку и суперразрешение, возвращает оба артефакта.
	// Чистая функция над байтами: запись артефактов — забота вызывающего.
	Enhance(ctx context.Context, raw []byte) (clean []byte, enhanced []byte, err error)
}
