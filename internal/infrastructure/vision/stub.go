//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"agrisight/internal/domain/entity"
)

// Enabled сообщает, собран ли бинарник с OpenCV.
const Enabled = false

var errNoGoCV = errors.New("gocv build tag is not enabled")

// GoCVEnhancer заглушка без OpenCV: сервис поднимается, но конвейер
// обработки снимков недоступен.
type GoCVEnhancer struct{}

// NewGoCVEnhancer создаёт заглушку (без OpenCV).
func NewGoCVEnhancer(modelPath string, scale int) (*GoCVEnhancer, error) {
	_ = modelPath
	_ = scale
	return &GoCVEnhancer{}, nil
}

// Close ничего не делает в сборке без тега gocv.
func (e *GoCVEnhancer) Close() error { return nil }

// Enhance возвращает ошибку, если сборка без тега gocv.
func (e *GoCVEnhancer) Enhance(ctx context.Context, raw []byte) ([]byte, []byte, error) {
	_ = ctx
	_ = raw
	return nil, nil, errNoGoCV
}

// GoCVClassifier заглушка без OpenCV.
type GoCVClassifier struct{}

// NewGoCVClassifier создаёт заглушку (без OpenCV).
func NewGoCVClassifier(modelPath, classesPath string) (*GoCVClassifier, error) {
	_ = modelPath
	_ = classesPath
	return &GoCVClassifier{}, nil
}

// Close ничего не делает в сборке без тега gocv.
func (c *GoCVClassifier) Close() error { return nil }

// Classify возвращает ошибку, если сборка без тега gocv.
func (c *GoCVClassifier) Classify(ctx context.Context, imageData []byte) (entity.RouterVerdict, error) {
	_ = ctx
	_ = imageData
	return entity.RouterVerdict{}, errNoGoCV
}
