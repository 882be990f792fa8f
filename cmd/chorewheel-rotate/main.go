// chorewheel-rotate — один запуск ротации дежурств.
//
// Читает необязательный payload триггера из stdin (если stdin не терминал),
// выполняет ротацию и печатает результат в stdout:
//
//	{"statusCode": 200, "body": "\"Chore message sent successfully!\""}
//
// Код выхода 1, если statusCode не 200 или конфигурация неполна.
package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaiso/chorewheel/internal/config"
	"github.com/shaiso/chorewheel/internal/rotator"
	"github.com/shaiso/chorewheel/internal/telemetry"
)

func main() {
	logger := telemetry.SetupLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// все обязательные переменные проверяются до любых обращений наружу
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

	result := rot.Handle(ctx, readEvent())
	closeFn()

	enc := json.NewEncoder(os.Stdout)
	enc.Encode(result)

	if !result.OK() {
		os.Exit(1)
	}
}

// readEvent читает payload из stdin, если он передан через pipe.
func readEvent() json.RawMessage {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(os.Stdin, 1<<20))
	if err != nil || len(data) == 0 {
		return nil
	}
	return data
}
