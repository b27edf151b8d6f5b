package entity

import (
	"path/filepath"
	"strings"
	"time"
)

// ScanStatus статус обработки снимка
type ScanStatus string

const (
	ScanPending    ScanStatus = "pending"    // запись создана, анализ ещё идёт
	ScanRejected   ScanStatus = "rejected"   // отклонено фильтром безопасности
	ScanIdentified ScanStatus = "identified" // анализ завершён, есть результат
	ScanFailed     ScanStatus = "failed"     // ошибка на одном из этапов
)

// DefaultCropType культура по умолчанию, если пользователь её не указал.
const DefaultCropType = "general"

// ScanRecord — одна попытка обработать загруженный снимок листа.
// Статус меняется строго один раз: из pending в одно из терминальных состояний.
type ScanRecord struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	ImagePath    string     `json:"image_path"`
	Status       ScanStatus `gorm:"default:'pending'" json:"status"`
	DiseaseLabel string     `json:"disease"`
	Confidence   float64    `gorm:"default:0" json:"confidence"`
	Description  string     `gorm:"default:'Analysis pending'" json:"description"`
	CropType     string     `gorm:"default:'general'" json:"crop_type"`
}

// NewScanRecord создаёт запись в начальном состоянии.
func NewScanRecord(imagePath, cropType string) *ScanRecord {
	if cropType == "" {
		cropType = DefaultCropType
	}
	return &ScanRecord{
		CreatedAt:   time.Now(),
		ImagePath:   imagePath,
		Status:      ScanPending,
		Description: "Analysis pending",
		CropType:    cropType,
	}
}

// Terminal сообщает, достигла ли запись финального состояния.
func (s *ScanRecord) Terminal() bool {
	return s.Status != ScanPending
}

// CleanName имя артефакта после шага очистки: суффикс _clean перед расширением.
func CleanName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_clean" + ext
}

// EnhancedName имя финального артефакта: _clean заменяется на _enhanced.
func EnhancedName(cleanName string) string {
	return strings.Replace(cleanName, "_clean", "_enhanced", 1)
}

// ArtifactNames все артефакты конвейера для записи с данным путём:
// исходный снимок и производные _clean/_enhanced. Путь может указывать
// на любой из трёх.
func ArtifactNames(path string) []string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	base = strings.TrimSuffix(base, "_enhanced")
	base = strings.TrimSuffix(base, "_clean")

	raw := base + ext
	clean := CleanName(raw)
	return []string{raw, clean, EnhancedName(clean)}
}
