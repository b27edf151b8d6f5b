package entity

import (
	"errors"
	"fmt"
)

// Классы ошибок конвейера. Декод, таймаут и ответ сервиса гасятся на границе
// оркестратора и превращаются в статус failed; конфигурация и модели
// проверяются на старте процесса и роняют его сразу.
var (
	ErrDecode           = errors.New("image decode failed")
	ErrModelUnavailable = errors.New("vision model unavailable")
	ErrConfiguration    = errors.New("missing configuration")
	ErrTimeout          = errors.New("request timed out")
	ErrPersistence      = errors.New("record store failure")
	ErrNotFound         = errors.New("record not found")
)

// UpstreamError — ответ сервиса идентификации вне диапазона 2xx.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("identification service returned status %d", e.StatusCode)
}
