package rotator

import (
	"errors"

	"github.com/shaiso/chorewheel/internal/discord"
	"github.com/shaiso/chorewheel/internal/domain"
)

// Ошибки ротатора.
var (
	// ErrStateNotFound — записи состояния ротации нет в хранилище.
	ErrStateNotFound = errors.New("rotation state not found")

	// ErrLoadFailed — хранилище недоступно при чтении состояния.
	ErrLoadFailed = errors.New("load rotation state failed")

	// ErrDeliveryFailed — объявление не отправлено.
	ErrDeliveryFailed = errors.New("announcement delivery failed")

	// ErrPersistFailed — объявление отправлено, но новый current_turn не сохранён.
	ErrPersistFailed = errors.New("persist next turn failed")
)

// Виды ошибок для логов и метрик.
const (
	KindNotFound  = "not_found"
	KindSchema    = "schema"
	KindStore     = "store"
	KindDelivery  = "delivery"
	KindTransport = "transport"
	KindPersist   = "persist"
	KindInternal  = "internal"
)

// Kind классифицирует ошибку запуска. Для nil возвращает пустую строку.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStateNotFound):
		return KindNotFound
	case errors.Is(err, domain.ErrInvalidState):
		return KindSchema
	case errors.Is(err, ErrPersistFailed):
		return KindPersist
	case errors.Is(err, ErrLoadFailed):
		return KindStore
	case errors.Is(err, discord.ErrDelivery):
		return KindDelivery
	case errors.Is(err, ErrDeliveryFailed):
		return KindTransport
	default:
		return KindInternal
	}
}
