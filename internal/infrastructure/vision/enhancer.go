//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"

	"agrisight/internal/domain/entity"
)

// Enabled сообщает, собран ли бинарник с OpenCV.
const Enabled = true

// Параметры очистки. Подбирались под снимки листьев с ESP32-CAM,
// меняются только при сборке.
const (
	denoiseLuma     = 5
	denoiseChroma   = 5
	denoiseTemplate = 7
	denoiseSearch   = 21
	jpegQuality     = 90
)

// GoCVEnhancer двухэтапное улучшение снимка: баланс белого, шумоподавление
// и резкость, затем суперразрешение ESPCN. Модель загружается один раз
// при создании и переиспользуется всеми запросами.
type GoCVEnhancer struct {
	sr    gocv.Net
	scale int
}

// NewGoCVEnhancer загружает модель суперразрешения из файла.
func NewGoCVEnhancer(modelPath string, scale int) (*GoCVEnhancer, error) {
	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("%w: super-resolution model %s", entity.ErrModelUnavailable, modelPath)
	}
	return &GoCVEnhancer{sr: net, scale: scale}, nil
}

// Close освобождает модель.
func (e *GoCVEnhancer) Close() error {
	return e.sr.Close()
}

// Enhance возвращает оба артефакта: после очистки и после суперразрешения.
func (e *GoCVEnhancer) Enhance(ctx context.Context, raw []byte) ([]byte, []byte, error) {
	_ = ctx
	mat, err := decodeToMat(raw)
	if err != nil {
		return nil, nil, err
	}
	defer mat.Close()

	cleanMat := e.cleanup(mat)
	defer cleanMat.Close()

	clean, err := encodeJPEG(cleanMat)
	if err != nil {
		return nil, nil, fmt.Errorf("encode clean artifact: %w", err)
	}

	upMat, err := e.upsample(cleanMat)
	if err != nil {
		return nil, nil, err
	}
	defer upMat.Close()

	enhanced, err := encodeJPEG(upMat)
	if err != nil {
		return nil, nil, fmt.Errorf("encode enhanced artifact: %w", err)
	}

	return clean, enhanced, nil
}

// cleanup выравнивает баланс белого, подавляет шум и усиливает резкость.
func (e *GoCVEnhancer) cleanup(src gocv.Mat) gocv.Mat {
	// Убираем систематический зелёный оттенок камеры.
	wb := contrib.NewSimpleWB()
	defer wb.Close()
	balanced := gocv.NewMat()
	wb.BalanceWhite(src, &balanced)

	denoised := gocv.NewMat()
	gocv.FastNlMeansDenoisingColoredWithParams(balanced, &denoised,
		denoiseLuma, denoiseChroma, denoiseTemplate, denoiseSearch)
	balanced.Close()

	kernel := sharpenKernel()
	defer kernel.Close()
	sharpened := gocv.NewMat()
	gocv.Filter2D(denoised, &sharpened, denoised.Type(), kernel, image.Pt(-1, -1), 0, gocv.BorderDefault)
	denoised.Close()

	return sharpened
}

// upsample прогоняет яркостный канал через ESPCN, цветовые каналы
// растягивает бикубически и собирает изображение обратно.
func (e *GoCVEnhancer) upsample(src gocv.Mat) (gocv.Mat, error) {
	ycrcb := gocv.NewMat()
	defer ycrcb.Close()
	gocv.CvtColor(src, &ycrcb, gocv.ColorBGRToYCrCb)

	channels := gocv.Split(ycrcb)
	for i := range channels {
		defer channels[i].Close()
	}

	blob := gocv.BlobFromImage(channels[0], 1.0/255.0, image.Pt(src.Cols(), src.Rows()),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	e.sr.SetInput(blob, "")
	out := e.sr.Forward("")
	defer out.Close()

	yUpF := gocv.GetBlobChannel(out, 0, 0)
	defer yUpF.Close()

	yUp := gocv.NewMat()
	yUpF.ConvertToWithParams(&yUp, gocv.MatTypeCV8U, 255, 0)

	target := image.Pt(src.Cols()*e.scale, src.Rows()*e.scale)
	crUp := gocv.NewMat()
	cbUp := gocv.NewMat()
	gocv.Resize(channels[1], &crUp, target, 0, 0, gocv.InterpolationCubic)
	gocv.Resize(channels[2], &cbUp, target, 0, 0, gocv.InterpolationCubic)

	merged := gocv.NewMat()
	gocv.Merge([]gocv.Mat{yUp, crUp, cbUp}, &merged)
	yUp.Close()
	crUp.Close()
	cbUp.Close()

	result := gocv.NewMat()
	gocv.CvtColor(merged, &result, gocv.ColorYCrCbToBGR)
	merged.Close()

	return result, nil
}

// sharpenKernel ядро нерезкого маскирования: центр 5, соседи по кресту -1.
func sharpenKernel() gocv.Mat {
	k := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	k.SetFloatAt(0, 1, -1)
	k.SetFloatAt(1, 0, -1)
	k.SetFloatAt(1, 1, 5)
	k.SetFloatAt(1, 2, -1)
	k.SetFloatAt(2, 1, -1)
	return k
}
