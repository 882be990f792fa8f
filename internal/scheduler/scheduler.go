package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// FireFunc вызывается в каждое наступившее время расписания.
type FireFunc func(ctx context.Context, due time.Time) error

// Scheduler — цикл запусков по расписанию.
type Scheduler struct {
	plan   *Plan
	fire   FireFunc
	logger *slog.Logger
	now    func() time.Time
	after  func(d time.Duration) <-chan time.Time
}

// Config — конфигурация Scheduler.
type Config struct {
	Plan   *Plan
	Fire   FireFunc
	Logger *slog.Logger

	// Now и After подменяются в тестах (default: time.Now, time.After).
	Now   func() time.Time
	After func(d time.Duration) <-chan time.Time
}

// New создаёт новый Scheduler.
func New(cfg Config) *Scheduler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	after := cfg.After
	if after == nil {
		after = time.After
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		plan:   cfg.Plan,
		fire:   cfg.Fire,
		logger: logger,
		now:    now,
		after:  after,
	}
}

// Run ждёт ближайшего времени по расписанию и вызывает Fire, пока ctx не отменён.
// Возвращает ctx.Err() после отмены.
func (s *Scheduler) Run(ctx context.Context) error {
	due := s.plan.Next(s.now())
	s.logger.Info("scheduler started",
		"schedule", s.plan.String(),
		"timezone", s.plan.Location().String(),
		"next_due_at", due,
	)

	for {
		wait := due.Sub(s.now())
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.after(wait):
		}

		// таймер мог сработать раньше (сдвиг часов) — ждём дальше
		if s.now().Before(due) {
			continue
		}

		s.Tick(ctx, due)

		// пропущенные за время Fire запуски не догоняем
		due = s.plan.Next(s.now())
		s.logger.Debug("next run scheduled", "next_due_at", due)
	}
}

// Tick выполняет один вызов Fire для наступившего времени due.
func (s *Scheduler) Tick(ctx context.Context, due time.Time) {
	start := s.now()
	s.logger.Info("scheduled rotation due", "due_at", due)

	if err := s.fire(ctx, due); err != nil {
		s.logger.Error("scheduled rotation failed",
			"due_at", due,
			"error", err,
		)
		return
	}

	s.logger.Info("scheduled rotation completed",
		"due_at", due,
		"duration", s.now().Sub(start),
	)
}
