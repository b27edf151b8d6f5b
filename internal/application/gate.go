package app

import "agrisight/internal/domain/entity"

// Пороги фильтра. Порог для человека ниже порога для растения:
// пропустить фото человека — проблема приватности, пропустить не-растение —
// всего лишь лишний платный вызов внешнего API.
const (
	HumanThreshold = 0.40
	PlantThreshold = 0.65
)

// Причины отказа, которые видит пользователь.
const (
	ReasonHuman   = "human detected"
	ReasonNoPlant = "no plant detected"
)

// GateDecision решение фильтра безопасности по вердикту классификатора.
type GateDecision struct {
	Accepted bool
	Reason   string // заполнено только при отказе
}

// Gate применяет политику допуска к распределению классификатора.
// Проверка на человека срабатывает первой и не зависит от остальных меток.
func Gate(v entity.RouterVerdict) GateDecision {
	if v.Score(entity.LabelHuman) > HumanThreshold {
		return GateDecision{Reason: ReasonHuman}
	}
	if v.PlantLike() < PlantThreshold {
		return GateDecision{Reason: ReasonNoPlant}
	}
	return GateDecision{Accepted: true}
}
