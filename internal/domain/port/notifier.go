package port

// Notifier уведомления в мессенджер. Вызовы не возвращают ошибок:
// сбой доставки логируется внутри реализации и никогда не влияет на конвейер.
type Notifier interface {
	SendText(text string)
	SendPhoto(imageData []byte, caption string)
}
