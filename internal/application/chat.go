package app

import (
	"context"
	"time"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

// ChatService вопросы ИИ-агроному с привязкой к скану.
type ChatService struct {
	advisor port.Advisor
	chats   port.ChatRepository
	scans   port.ScanRepository
}

func NewChatService(advisor port.Advisor, chats port.ChatRepository, scans port.ScanRepository) *ChatService {
	return &ChatService{advisor: advisor, chats: chats, scans: scans}
}

// Ask отправляет вопрос агроному. Если указан scanID, в контекст вопроса
// попадают культура и диагноз из записи скана.
func (s *ChatService) Ask(ctx context.Context, scanID uint, question string) (string, error) {
	if s.advisor == nil {
		return "", entity.ErrConfiguration
	}

	disease := ""
	crop := entity.DefaultCropType
	if scanID != 0 {
		if rec, err := s.scans.Get(ctx, scanID); err == nil {
			disease = rec.DiseaseLabel
			crop = rec.CropType
		}
	}

	answer, err := s.advisor.Advise(ctx, question, disease, crop)
	if err != nil {
		return "", err
	}

	msg := &entity.ChatMessage{
		CreatedAt:   time.Now(),
		ScanID:      scanID,
		UserMessage: question,
		AIResponse:  answer,
	}
	if err := s.chats.Add(ctx, msg); err != nil {
		// Ответ уже получен, история — лучшая попытка.
		return answer, nil
	}
	return answer, nil
}

// History возвращает диалог по скану.
func (s *ChatService) History(ctx context.Context, scanID uint) ([]entity.ChatMessage, error) {
	return s.chats.ByScan(ctx, scanID)
}
