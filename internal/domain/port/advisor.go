package port

import "context"

// Advisor ИИ-агроном: отвечает на вопросы с учётом культуры и диагноза.
type Advisor interface {
	Advise(ctx context.Context, question, diseaseName, cropType string) (string, error)
}
