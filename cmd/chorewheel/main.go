// chorewheel CLI — операторская утилита для состояния ротации.
//
// Использование:
//
//	chorewheel [--json] [--key KEY] <command> [flags]
//
// Команды:
//
//	state     Создание и просмотр состояния
//	preview   Распределение следующего запуска без отправки
//	trigger   Запрос ротации через RabbitMQ
//
// Переменные окружения читаются также из .env в текущем каталоге.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/shaiso/chorewheel/internal/cli"
	"github.com/shaiso/chorewheel/internal/config"
	"github.com/shaiso/chorewheel/internal/mq"
	"github.com/shaiso/chorewheel/internal/repo"
	"github.com/shaiso/chorewheel/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	// .env необязателен
	_ = godotenv.Load()

	logger := telemetry.SetupLogger()

	deps := cli.Deps{
		OpenStore: func(ctx context.Context) (cli.Store, func(), error) {
			cfg, err := config.LoadStoreFrom(os.Getenv)
			if err != nil {
				return nil, nil, err
			}
			pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return nil, nil, err
			}
			if err := repo.EnsureSchema(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, err
			}
			return repo.NewRotationRepo(pool), pool.Close, nil
		},
		OpenTriggerer: func(ctx context.Context) (cli.Triggerer, func(), error) {
			url, err := config.RequireRabbitMQURL(os.Getenv)
			if err != nil {
				return nil, nil, err
			}
			conn, err := mq.NewConnection(url, logger)
			if err != nil {
				return nil, nil, err
			}
			if err := mq.SetupTopology(ctx, conn); err != nil {
				conn.Close()
				return nil, nil, err
			}
			return mq.NewPublisher(conn, logger), func() { conn.Close() }, nil
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCmd(deps, version).ExecuteContext(ctx); err != nil {
		cli.NewOutput(false).Error(err.Error())
		os.Exit(1)
	}
}
