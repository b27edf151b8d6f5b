package telegram

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"agrisight/internal/domain/port"
)

// Notifier уведомления владельцу теплицы в Telegram. Контракт — лучшая
// попытка: методы не возвращают ошибок, сбой доставки только логируется.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier создаёт отправителя уведомлений в один чат.
func NewNotifier(api *tgbotapi.BotAPI, chatID int64) *Notifier {
	return &Notifier{api: api, chatID: chatID}
}

// SendText отправляет текстовое сообщение.
func (n *Notifier) SendText(text string) {
	if n.api == nil || n.chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		log.Printf("[Telegram] sendMessage failed: %v", err)
	}
}

// SendPhoto отправляет фото с подписью.
func (n *Notifier) SendPhoto(imageData []byte, caption string) {
	if n.api == nil || n.chatID == 0 {
		return
	}
	photo := tgbotapi.NewPhoto(n.chatID, tgbotapi.FileBytes{Name: "scan.jpg", Bytes: imageData})
	photo.Caption = caption
	if _, err := n.api.Send(photo); err != nil {
		log.Printf("[Telegram] sendPhoto failed: %v", err)
	}
}

// Проверка реализации интерфейса
var _ port.Notifier = (*Notifier)(nil)
