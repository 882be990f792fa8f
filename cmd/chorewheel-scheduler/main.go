// chorewheel-scheduler — запускает ротацию по cron-расписанию.
//
// Режимы:
//   - RABBITMQ_URL задан: публикует rotation.trigger, ротацию выполняет chorewheel-worker
//   - RABBITMQ_URL пуст: выполняет ротацию в своём процессе
//
// Расписание: CHORE_SCHEDULE (default "0 9 * * 1"), CHORE_TIMEZONE (default UTC).
// Одновременно должна работать одна реплика.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/shaiso/chorewheel/internal/config"
	"github.com/shaiso/chorewheel/internal/mq"
	"github.com/shaiso/chorewheel/internal/rotator"
	"github.com/shaiso/chorewheel/internal/scheduler"
	"github.com/shaiso/chorewheel/internal/telemetry"
)

func main() {
	logger := telemetry.SetupLogger()
	logger.Info("starting chorewheel-scheduler")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched, err := config.LoadScheduleFrom(os.Getenv)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	plan, err := scheduler.ParsePlan(sched.CronExpr, sched.Timezone)
	if err != nil {
		logger.Error("invalid schedule", "error", err)
		os.Exit(1)
	}

	var fire scheduler.FireFunc
	if mqURL := config.RabbitMQURL(os.Getenv); mqURL != "" {
		conn, err := mq.NewConnection(mqURL, logger)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		if err := mq.SetupTopology(ctx, conn); err != nil {
			logger.Error("failed to setup topology", "error", err)
			os.Exit(1)
		}

		fire = publishTrigger(mq.NewPublisher(conn, logger), logger)
		logger.Info("mode: publish triggers to RabbitMQ")
	} else {
		cfg, err := config.LoadRotator()
		if err != nil {
			logger.Error("invalid configuration", "error", err)
			os.Exit(1)
		}

		rot, closeFn, err := rotator.FromConfig(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer closeFn()

		fire = rotateInProcess(rot)
		logger.Info("mode: in-process rotation")
	}

	go func() {
		if err := telemetry.Serve(ctx, config.MetricsAddr(os.Getenv, "8081"), logger); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	s := scheduler.New(scheduler.Config{
		Plan:   plan,
		Fire:   fire,
		Logger: logger,
	})
	s.Run(ctx)

	logger.Info("chorewheel-scheduler stopped")
}

func publishTrigger(pub *mq.Publisher, logger *slog.Logger) scheduler.FireFunc {
	return func(ctx context.Context, due time.Time) error {
		msg, err := pub.PublishTrigger(ctx, mq.TriggerPayload{Source: "scheduler", DueAt: &due})
		if err != nil {
			return err
		}
		logger.Info("trigger published", "message_id", msg.ID)
		return nil
	}
}

func rotateInProcess(rot *rotator.Rotator) scheduler.FireFunc {
	return func(ctx context.Context, _ time.Time) error {
		result := rot.Handle(ctx, nil)
		if !result.OK() {
			return fmt.Errorf("rotation finished with status %d: %s", result.StatusCode, result.Body)
		}
		return nil
	}
}
