package entity

import "time"

// ChatMessage вопрос пользователя и ответ агронома-ИИ, привязанные к скану.
type ChatMessage struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"timestamp"`
	ScanID      uint      `gorm:"index" json:"scan_id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
}
