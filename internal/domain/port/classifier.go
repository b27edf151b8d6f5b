package port

import (
	"context"

	"agrisight/internal/domain/entity"
)

// ImageClassifier интерфейс классификатора безопасности контента.
// Для одного и того же входа возвращает одно и то же распределение.
type ImageClassifier interface {
	Classify(ctx context.Context, imageData []byte) (entity.RouterVerdict, error)
}
