package vision

import "agrisight/internal/domain/port"

// Проверка реализации интерфейсов в обеих сборках.
var (
	_ port.ImageEnhancer   = (*GoCVEnhancer)(nil)
	_ port.ImageClassifier = (*GoCVClassifier)(nil)
)
