package rotator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/chorewheel/internal/domain"
	"github.com/shaiso/chorewheel/internal/repo"
	"github.com/shaiso/chorewheel/internal/telemetry"
)

// SuccessMessage — тело успешного результата.
const SuccessMessage = "Chore message sent successfully!"

// StateStore — хранилище состояния ротации.
//
// Get возвращает repo.ErrNotFound, если записи нет,
// и *domain.SchemaError, если запись некорректна.
type StateStore interface {
	Get(ctx context.Context, key string) (*domain.RotationState, error)
	UpdateTurn(ctx context.Context, key string, turn int) error
}

// Notifier — канал доставки объявления.
type Notifier interface {
	Send(ctx context.Context, content string) error
}

// Config — конфигурация Rotator.
type Config struct {
	Store    StateStore
	Notifier Notifier
	Logger   *slog.Logger
	Key      string // ключ записи (default: domain.DefaultAssignmentID)
}

// Rotator выполняет ротацию дежурств.
type Rotator struct {
	store    StateStore
	notifier Notifier
	logger   *slog.Logger
	key      string
}

// New создаёт новый Rotator.
func New(cfg Config) *Rotator {
	key := cfg.Key
	if key == "" {
		key = domain.DefaultAssignmentID
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Rotator{
		store:    cfg.Store,
		notifier: cfg.Notifier,
		logger:   logger,
		key:      key,
	}
}

// Outcome — итог запуска (или предпросмотра).
type Outcome struct {
	AssignmentID string           `json:"assignment_id"`
	Pairings     []domain.Pairing `json:"pairings"`
	Message      string           `json:"message"`
	PreviousTurn int              `json:"previous_turn"`
	NextTurn     int              `json:"next_turn"`
}

// Result — результат вызова Handle.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// OK возвращает true для успешного результата.
func (r Result) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Handle — точка входа одного запуска.
//
// event — непрозрачный payload триггера, не используется.
// Любая ошибка логируется и превращается в Result со statusCode 500.
func (r *Rotator) Handle(ctx context.Context, event json.RawMessage) Result {
	logger := telemetry.WithInvocationID(r.logger, uuid.New().String())
	logger = telemetry.WithAssignmentID(logger, r.key)
	ctx = telemetry.WithLogger(ctx, logger)

	logger.Debug("invocation started", "payload_bytes", len(event))

	outcome, err := r.Run(ctx)
	if err != nil {
		kind := Kind(err)
		logger.Error("rotation failed", "kind", kind, "error", err)
		telemetry.ObserveInvocation(kind)
		return Result{
			StatusCode: http.StatusInternalServerError,
			Body:       encodeBody("An error occurred: " + err.Error()),
		}
	}

	telemetry.ObserveInvocation("")
	logger.Info("rotation completed",
		"previous_turn", outcome.PreviousTurn,
		"next_turn", outcome.NextTurn,
		"pairings", len(outcome.Pairings),
	)
	return Result{
		StatusCode: http.StatusOK,
		Body:       encodeBody(SuccessMessage),
	}
}

// Run выполняет чтение, распределение, отправку и сохранение.
//
// Ошибки:
//   - ErrStateNotFound — записи нет
//   - *domain.SchemaError — запись некорректна (отправки не было)
//   - ErrDeliveryFailed — отправка не удалась (current_turn не изменён)
//   - ErrPersistFailed — отправка прошла, сохранение нет
func (r *Rotator) Run(ctx context.Context) (*Outcome, error) {
	logger := telemetry.LoggerOr(ctx, r.logger)

	// 1-3. Состояние, распределение, текст
	outcome, err := r.Preview(ctx)
	if err != nil {
		return nil, err
	}

	// 4. Отправка
	start := time.Now()
	err = r.notifier.Send(ctx, outcome.Message)
	telemetry.ObserveDelivery(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	logger.Debug("announcement sent", "duration", time.Since(start))

	// 5. Сохраняем следующий ход только после успешной отправки
	if err := r.store.UpdateTurn(ctx, r.key, outcome.NextTurn); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	telemetry.SetCurrentTurn(outcome.NextTurn)

	return outcome, nil
}

// Preview читает состояние и вычисляет распределение без побочных эффектов.
func (r *Rotator) Preview(ctx context.Context) (*Outcome, error) {
	state, err := r.store.Get(ctx, r.key)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, fmt.Errorf("%w: key %q", ErrStateNotFound, r.key)
		case errors.Is(err, domain.ErrInvalidState):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	pairings := state.Assign()
	return &Outcome{
		AssignmentID: r.key,
		Pairings:     pairings,
		Message:      domain.RenderMessage(pairings),
		PreviousTurn: state.CurrentTurn,
		NextTurn:     state.NextTurn(),
	}, nil
}

// encodeBody кодирует тело результата как JSON-строку.
func encodeBody(msg string) string {
	b, err := json.Marshal(msg)
	if err != nil {
		return `""`
	}
	return string(b)
}
