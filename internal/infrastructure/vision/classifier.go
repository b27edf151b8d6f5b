//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	"gocv.io/x/gocv"

	"agrisight/internal/domain/entity"
)

// Сторона квадрата, к которой приводится кадр перед классификацией.
const classifierInputSide = 480

// GoCVClassifier DNN-классификатор безопасности контента: human / plant /
// unhealthy_plant / crop и прочие метки из файла классов.
type GoCVClassifier struct {
	net    gocv.Net
	labels []string
}

// NewGoCVClassifier загружает модель и список меток.
func NewGoCVClassifier(modelPath, classesPath string) (*GoCVClassifier, error) {
	data, err := os.ReadFile(classesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: classes file %s", entity.ErrModelUnavailable, classesPath)
	}

	var labels []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			labels = append(labels, line)
		}
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: empty classes file %s", entity.ErrModelUnavailable, classesPath)
	}

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("%w: router model %s", entity.ErrModelUnavailable, modelPath)
	}

	return &GoCVClassifier{net: net, labels: labels}, nil
}

// Close освобождает модель.
func (c *GoCVClassifier) Close() error {
	return c.net.Close()
}

// Classify возвращает распределение уверенности по меткам.
func (c *GoCVClassifier) Classify(ctx context.Context, imageData []byte) (entity.RouterVerdict, error) {
	_ = ctx
	mat, err := decodeToMat(imageData)
	if err != nil {
		return entity.RouterVerdict{}, err
	}
	defer mat.Close()

	resized := centerCrop(mat, classifierInputSide)
	defer resized.Close()

	// Модель обучена на RGB, OpenCV отдаёт BGR.
	blob := gocv.BlobFromImage(resized, 1.0/255.0, image.Pt(classifierInputSide, classifierInputSide),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	c.net.SetInput(blob, "")
	out := c.net.Forward("")
	defer out.Close()

	probs := out.Reshape(1, 1)
	defer probs.Close()

	scores := make(map[string]float64, len(c.labels))
	for i := 0; i < len(c.labels) && i < probs.Cols(); i++ {
		scores[c.labels[i]] = float64(probs.GetFloatAt(0, i))
	}

	return entity.RouterVerdict{Scores: scores}, nil
}

// centerCrop вырезает центральный квадрат и приводит его к стороне side.
func centerCrop(mat gocv.Mat, side int) gocv.Mat {
	w, h := mat.Cols(), mat.Rows()
	crop := w
	if h < w {
		crop = h
	}
	x := (w - crop) / 2
	y := (h - crop) / 2

	region := mat.Region(image.Rect(x, y, x+crop, y+crop))
	defer region.Close()

	resized := gocv.NewMat()
	gocv.Resize(region, &resized, image.Pt(side, side), 0, 0, gocv.InterpolationArea)
	return resized
}
