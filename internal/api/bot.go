package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	app "agrisight/internal/application"
	"agrisight/internal/container"
	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я AgriSight — помощник по мониторингу теплицы.

📸 Отправьте фото листа растения, и я определю болезнь.

📋 Команды:
/status — состояние теплицы
/moisture — влажность почвы
/temp — температура воздуха
/humidity — влажность воздуха
/pump_on — включить помпу
/pump_off — выключить помпу
/scan — сделать снимок камерой
/ask — вопрос агроному
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото листа растения
2️⃣ Укажите культуру (или нажмите /skip)
3️⃣ Получите диагноз и рекомендации

💡 Рекомендации:
• Снимайте лист крупным планом
• Избегайте бликов и теней
• Фото должно быть чётким

📋 Команды:
/status — датчики и состояние устройства
/pump_on /pump_off — управление поливом
/scan — удалённый снимок камерой ESP32
/ask <вопрос> — чат с ИИ-агрономом`

	msgAwaitingCrop    = "🌱 Какая это культура? Напишите название (например, «томат») или /skip."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgSendPhoto       = "📸 Отправьте фото листа растения для анализа."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgNoReadings      = "📭 Показаний датчиков пока нет."
	msgScanRequested   = "📷 Запросил снимок у камеры. Результат придёт после обработки."
	msgDeviceOffline   = "🔌 Устройство не отвечает."
	msgAskUsage        = "💬 Напишите вопрос после команды: /ask чем обработать фитофтору?"
	msgNoScans         = "📭 Сначала отправьте фото растения — агроному нужен контекст."
)

// Bot представляет Telegram-бота
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64 // авторизованный чат; 0 — отвечать всем

	users     *app.UserService
	intake    *app.IntakeService
	telemetry *app.TelemetryService
	chat      *app.ChatService
	gallery   *app.GalleryService
	device    port.DeviceController

	mu      sync.Mutex
	pending map[int64][]byte // userID -> фото, ждущее указания культуры
}

// NewBot создаёт нового бота поверх уже авторизованного клиента.
// Клиент создаётся в main и делится с нотификатором.
func NewBot(api *tgbotapi.BotAPI, chatID int64, c *container.Container) (*Bot, error) {
	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:       api,
		chatID:    chatID,
		users:     c.UserService,
		intake:    c.IntakeService,
		telemetry: c.TelemetryService,
		chat:      c.ChatService,
		gallery:   c.GalleryService,
		device:    c.Device,
		pending:   make(map[int64][]byte),
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if b.chatID != 0 && msg.Chat.ID != b.chatID {
		log.Printf("Ignoring message from unauthorized chat %d", msg.Chat.ID)
		return
	}

	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	// Текст после фото — название культуры
	if user.State == entity.StateAwaitingCrop {
		b.finishIntake(ctx, msg, strings.TrimSpace(msg.Text))
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		b.users.Reset(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "status":
		b.sendStatus(ctx, msg.Chat.ID)

	case "moisture":
		b.sendReading(ctx, msg.Chat.ID, func(r *entity.SensorReading) string {
			return fmt.Sprintf("💧 Влажность почвы: %.1f%%", r.Moisture)
		})

	case "temp":
		b.sendReading(ctx, msg.Chat.ID, func(r *entity.SensorReading) string {
			return fmt.Sprintf("🌡 Температура воздуха: %.1f°C", r.Temperature)
		})

	case "humidity":
		b.sendReading(ctx, msg.Chat.ID, func(r *entity.SensorReading) string {
			return fmt.Sprintf("💨 Влажность воздуха: %.1f%%", r.Humidity)
		})

	case "pump_on":
		b.switchPump(ctx, msg.Chat.ID, "on")

	case "pump_off":
		b.switchPump(ctx, msg.Chat.ID, "off")

	case "scan":
		if err := b.device.Capture(ctx); err != nil {
			log.Printf("Capture request failed: %v", err)
			b.sendMessage(msg.Chat.ID, msgDeviceOffline)
			return
		}
		b.sendMessage(msg.Chat.ID, msgScanRequested)

	case "ask":
		b.handleAsk(ctx, msg)

	case "skip":
		// Завершает диалог выбора культуры значением по умолчанию
		if user.State == entity.StateAwaitingCrop {
			b.finishIntake(ctx, msg, "")
			return
		}
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.mu.Lock()
	b.pending[user.ID] = imageData
	b.mu.Unlock()

	if _, err := b.users.AwaitCrop(ctx, user.ID, user.ChatID); err != nil {
		log.Printf("Error saving user state: %v", err)
	}

	b.sendMessage(msg.Chat.ID, msgAwaitingCrop)
}

// finishIntake запускает конвейер анализа после выбора культуры.
func (b *Bot) finishIntake(ctx context.Context, msg *tgbotapi.Message, cropType string) {
	b.mu.Lock()
	imageData, ok := b.pending[msg.From.ID]
	delete(b.pending, msg.From.ID)
	b.mu.Unlock()

	b.users.Reset(ctx, msg.From.ID, msg.Chat.ID)

	if !ok {
		b.sendMessage(msg.Chat.ID, msgSendPhoto)
		return
	}

	b.sendMessage(msg.Chat.ID, msgProcessing)

	name := "tg_" + uuid.New().String() + ".jpg"

	// Итог пользователю отправит нотификатор, здесь важен только сбой
	if _, err := b.intake.Submit(ctx, imageData, name, cropType); err != nil {
		log.Printf("Intake failed: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
	}
}

// sendStatus собирает сводку по датчикам и устройству.
func (b *Bot) sendStatus(ctx context.Context, chatID int64) {
	online := "🟢 онлайн"
	if !b.device.Online(ctx) {
		online = "🔴 офлайн"
	}

	reading, err := b.telemetry.Latest(ctx)
	if err != nil {
		b.sendMessage(chatID, fmt.Sprintf("🏡 Состояние теплицы\n\nУстройство: %s\n%s", online, msgNoReadings))
		return
	}

	text := fmt.Sprintf(`🏡 Состояние теплицы

Устройство: %s
💧 Влажность почвы: %.1f%%
🌡 Температура: %.1f°C
💨 Влажность воздуха: %.1f%%

Обновлено: %s`,
		online,
		reading.Moisture, reading.Temperature, reading.Humidity,
		reading.CreatedAt.Format("02.01.2006 15:04"))

	b.sendMessage(chatID, text)
}

// sendReading отвечает последним показанием одного датчика.
// Заодно просит устройство обновить показания: свежие придут
// асинхронно через POST /api/sensor.
func (b *Bot) sendReading(ctx context.Context, chatID int64, format func(*entity.SensorReading) string) {
	if err := b.device.TriggerSensors(ctx); err != nil {
		log.Printf("Sensor trigger failed: %v", err)
	}

	reading, err := b.telemetry.Latest(ctx)
	if err != nil {
		b.sendMessage(chatID, msgNoReadings)
		return
	}
	b.sendMessage(chatID, format(reading))
}

func (b *Bot) switchPump(ctx context.Context, chatID int64, action string) {
	if err := b.telemetry.SwitchPump(ctx, action); err != nil {
		log.Printf("Pump switch failed: %v", err)
		b.sendMessage(chatID, msgDeviceOffline)
	}
}

// handleAsk передаёт вопрос ИИ-агроному в контексте последнего снимка.
func (b *Bot) handleAsk(ctx context.Context, msg *tgbotapi.Message) {
	question := strings.TrimSpace(msg.CommandArguments())
	if question == "" {
		b.sendMessage(msg.Chat.ID, msgAskUsage)
		return
	}

	scans, err := b.gallery.List(ctx, 1)
	if err != nil || len(scans) == 0 {
		b.sendMessage(msg.Chat.ID, msgNoScans)
		return
	}

	answer, err := b.chat.Ask(ctx, scans[0].ID, question)
	if err != nil {
		log.Printf("Advisor request failed: %v", err)
		b.sendMessage(msg.Chat.ID, "⚠️ Агроном сейчас недоступен, попробуйте позже.")
		return
	}

	b.sendMessage(msg.Chat.ID, "👨‍🌾 "+answer)
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
