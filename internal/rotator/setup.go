package rotator

import (
	"context"
	"log/slog"

	"github.com/shaiso/chorewheel/internal/config"
	"github.com/shaiso/chorewheel/internal/discord"
	"github.com/shaiso/chorewheel/internal/repo"
)

// FromConfig подключается к хранилищу и собирает Rotator с Discord-клиентом.
// Возвращённая функция закрывает пул соединений.
func FromConfig(ctx context.Context, cfg *config.Rotator, logger *slog.Logger) (*Rotator, func(), error) {
	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	rot := New(Config{
		Store: repo.NewRotationRepo(pool),
		Notifier: discord.New(discord.Config{
			BaseURL:   cfg.DiscordAPIURL,
			Token:     cfg.DiscordToken,
			ChannelID: cfg.DiscordChannelID,
			Timeout:   cfg.DiscordTimeout,
		}),
		Logger: logger,
	})
	return rot, pool.Close, nil
}
