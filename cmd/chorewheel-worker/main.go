// chorewheel-worker — выполняет ротацию по сообщениям rotation.trigger.
//
// Worker:
//   - Получает триггеры из очереди rotations.trigger (по одному)
//   - Выполняет ротацию
//   - Подтверждает сообщение при успехе, иначе отправляет его в DLQ
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaiso/chorewheel/internal/config"
	"github.com/shaiso/chorewheel/internal/mq"
	"github.com/shaiso/chorewheel/internal/rotator"
	"github.com/shaiso/chorewheel/internal/telemetry"
)

func main() {
	logger := telemetry.SetupLogger()
	logger.Info("starting chorewheel-worker")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadRotator()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	mqURL, err := config.RequireRabbitMQURL(os.Getenv)
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
	logger.Info("database connected")

	conn, err := mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer conn.Close()
	logger.Info("RabbitMQ connected")

	if err := mq.SetupTopology(ctx, conn); err != nil {
		logger.Error("failed to setup topology", "error", err)
		os.Exit(1)
	}

	consumer := mq.NewConsumer(conn, logger, mq.ConsumerConfig{
		Queue: mq.QueueRotationsTrigger,
		Handler: func(ctx context.Context, msg *mq.Message) error {
			payload, err := mq.ParsePayload[mq.TriggerPayload](msg)
			if err != nil {
				return err
			}
			logger.Info("trigger received", "message_id", msg.ID, "source", payload.Source)

			result := rot.Handle(ctx, msg.Payload)
			if !result.OK() {
				return fmt.Errorf("rotation finished with status %d: %s", result.StatusCode, result.Body)
			}
			return nil
		},
	})

	go func() {
		if err := telemetry.Serve(ctx, config.MetricsAddr(os.Getenv, "8082"), logger); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("consumer stopped", "error", err)
	}

	logger.Info("chorewheel-worker stopped")
}
