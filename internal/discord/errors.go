package discord

import (
	"errors"
	"fmt"
)

// Ошибки клиента Discord.
var (
	// ErrRequest — запрос не дошёл до Discord или ответ не удалось прочитать.
	ErrRequest = errors.New("discord request failed")

	// ErrDelivery — Discord ответил статусом вне диапазона 2xx.
	ErrDelivery = errors.New("discord rejected message")
)

// DeliveryError — Discord отклонил сообщение.
// Содержит полученный статус и (обрезанное) тело ответа.
type DeliveryError struct {
	StatusCode int
	Body       string
}

// Error реализует интерфейс error.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("discord responded HTTP %d: %s", e.StatusCode, e.Body)
}

// Unwrap возвращает базовую ошибку.
func (e *DeliveryError) Unwrap() error {
	return ErrDelivery
}
