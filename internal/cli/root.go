package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shaiso/chorewheel/internal/domain"
	"github.com/shaiso/chorewheel/internal/mq"
	"github.com/shaiso/chorewheel/internal/rotator"
)

// Store — хранилище состояния, доступное CLI.
type Store interface {
	rotator.StateStore
	Put(ctx context.Context, key string, state *domain.RotationState) error
}

// Triggerer публикует триггер ротации.
type Triggerer interface {
	PublishTrigger(ctx context.Context, payload mq.TriggerPayload) (*mq.Message, error)
}

// StoreOpener открывает хранилище. Возвращённая функция освобождает ресурсы.
type StoreOpener func(ctx context.Context) (Store, func(), error)

// TriggerOpener подключается к брокеру. Возвращённая функция закрывает соединение.
type TriggerOpener func(ctx context.Context) (Triggerer, func(), error)

// Deps — внешние зависимости команд.
type Deps struct {
	OpenStore     StoreOpener
	OpenTriggerer TriggerOpener
}

type options struct {
	jsonOutput bool
	key        string
}

// NewRootCmd собирает корневую команду chorewheel.
func NewRootCmd(deps Deps, version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "chorewheel",
		Short:         "chorewheel CLI — weekly chore rotation",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&opts.key, "key", domain.DefaultAssignmentID, "Rotation state key")

	outputFn := func(cmd *cobra.Command) *Output {
		return NewOutputTo(opts.jsonOutput, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	rootCmd.AddCommand(
		NewStateCmd(deps.OpenStore, outputFn, opts),
		NewPreviewCmd(deps.OpenStore, outputFn, opts),
		NewTriggerCmd(deps.OpenTriggerer, outputFn),
	)
	return rootCmd
}
