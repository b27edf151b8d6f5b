package entity

// Метки классификатора безопасности, от которых зависит решение фильтра.
const (
	LabelHuman          = "human"
	LabelPlant          = "plant"
	LabelUnhealthyPlant = "unhealthy_plant"
	LabelCrop           = "crop"
)

// RouterVerdict — распределение уверенности классификатора по меткам.
// Значения лежат в [0,1] и трактуются как независимые, сумма не нормируется.
type RouterVerdict struct {
	Scores map[string]float64
}

// Score возвращает уверенность по метке, 0 если метки нет.
func (v RouterVerdict) Score(label string) float64 {
	return v.Scores[label]
}

// PlantLike максимальная уверенность среди "растительных" меток.
func (v RouterVerdict) PlantLike() float64 {
	best := v.Score(LabelPlant)
	if s := v.Score(LabelUnhealthyPlant); s > best {
		best = s
	}
	if s := v.Score(LabelCrop); s > best {
		best = s
	}
	return best
}
