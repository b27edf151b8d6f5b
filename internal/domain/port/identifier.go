package port

import (
	"context"

	"agrisight/internal/domain/entity"
)

// DiseaseIdentifier интерфейс внешнего сервиса определения болезней.
// Вызов может блокироваться на весь бюджет опроса.
type DiseaseIdentifier interface {
	Identify(ctx context.Context, imageData []byte, cropType string) (entity.IdentificationResult, error)
}
