package entity

// SentinelDisease результат-заглушка, когда сервис не дал ответа за отведённое время.
const SentinelDisease = "No disease detected"

// IdentificationResult — нормализованный ответ сервиса определения болезней.
// Все поля всегда заполнены: при неполных данных подставляются значения
// по умолчанию, а не nil.
type IdentificationResult struct {
	Disease     string
	Confidence  float64
	Description string
	CropName    string
	// Conclusive=false означает, что результат — заглушка после исчерпания
	// бюджета опроса, а не реальный ответ модели.
	Conclusive bool
}

// NotIdentified возвращает результат-заглушку для культуры cropType.
func NotIdentified(cropType string) IdentificationResult {
	if cropType == "" {
		cropType = DefaultCropType
	}
	return IdentificationResult{
		Disease:     SentinelDisease,
		Confidence:  0,
		Description: "No disease detected or analysis not ready.",
		CropName:    cropType,
		Conclusive:  false,
	}
}
