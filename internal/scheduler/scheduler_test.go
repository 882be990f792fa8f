package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
	_ "time/tzdata"
)

// fakeClock — часы, которые продвигаются только через After.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestParsePlan_Next(t *testing.T) {
	plan, err := ParsePlan("0 9 * * 1", "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// воскресенье → ближайший понедельник 9:00
	from := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	next := plan.Next(from)
	want := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %s, got %s", want, next)
	}

	// ровно в момент запуска — следующий через неделю
	if got := plan.Next(want); !got.Equal(want.AddDate(0, 0, 7)) {
		t.Errorf("expected a week later, got %s", got)
	}
}

func TestParsePlan_Timezone(t *testing.T) {
	plan, err := ParsePlan("0 9 * * *", "Europe/Moscow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	from := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	next := plan.Next(from)
	// 9:00 MSK = 6:00 UTC
	if next.Hour() != 6 || next.Location() != time.UTC {
		t.Errorf("expected 06:00 UTC, got %s", next)
	}
}

func TestParsePlan_InvalidTimezoneFallsBackToUTC(t *testing.T) {
	plan, err := ParsePlan("0 9 * * *", "Mars/Olympus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Location() != time.UTC {
		t.Errorf("expected UTC, got %s", plan.Location())
	}
}

func TestParsePlan_InvalidExpr(t *testing.T) {
	if _, err := ParsePlan("every monday", "UTC"); err == nil {
		t.Error("expected error")
	}
	if err := ValidateCronExpr("* * *"); err == nil {
		t.Error("expected error for 3-field expression")
	}
	if err := ValidateCronExpr("*/15 * * * *"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestScheduler_FiresOncePerDueTime(t *testing.T) {
	plan, err := ParsePlan("0 9 * * 1", "UTC")
	if err != nil {
		t.Fatal(err)
	}

	clock := &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}

	var fired []time.Time
	after := func(d time.Duration) <-chan time.Time {
		if len(fired) >= 3 {
			return make(chan time.Time) // больше не срабатывает
		}
		return clock.After(d)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sched := New(Config{
		Plan: plan,
		Fire: func(_ context.Context, due time.Time) error {
			fired = append(fired, due)
			if len(fired) == 3 {
				cancel()
			}
			return nil
		},
		Logger: quietLogger(),
		Now:    clock.Now,
		After:  after,
	})

	err = sched.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if len(fired) != 3 {
		t.Fatalf("expected 3 fires, got %d", len(fired))
	}
	first := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	for i, due := range fired {
		want := first.AddDate(0, 0, 7*i)
		if !due.Equal(want) {
			t.Errorf("fire %d: expected %s, got %s", i, want, due)
		}
	}
}

func TestScheduler_FireErrorDoesNotStopLoop(t *testing.T) {
	plan, err := ParsePlan("0 * * * *", "UTC")
	if err != nil {
		t.Fatal(err)
	}

	clock := &fakeClock{now: time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)}
	calls := 0

	ctx, cancel := context.WithCancel(context.Background())
	sched := New(Config{
		Plan: plan,
		Fire: func(context.Context, time.Time) error {
			calls++
			if calls == 2 {
				cancel()
				return nil
			}
			return errors.New("discord unavailable")
		},
		Logger: quietLogger(),
		Now:    clock.Now,
		After: func(d time.Duration) <-chan time.Time {
			if calls >= 2 {
				return make(chan time.Time)
			}
			return clock.After(d)
		},
	})

	sched.Run(ctx)

	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	plan, err := ParsePlan("0 9 * * 1", "UTC")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sched := New(Config{
		Plan:   plan,
		Fire:   func(context.Context, time.Time) error { t.Error("must not fire"); return nil },
		Logger: quietLogger(),
		After:  func(time.Duration) <-chan time.Time { return make(chan time.Time) },
	})

	if err := sched.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
