package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/chorewheel/internal/mq"
)

// NewTriggerCmd создаёт команду "trigger".
// Публикует rotation.trigger; ротацию выполняет chorewheel-worker.
func NewTriggerCmd(triggerFn TriggerOpener, outputFn func(*cobra.Command) *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Request a rotation run via RabbitMQ",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pub, closeFn, err := triggerFn(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			msg, err := pub.PublishTrigger(ctx, mq.TriggerPayload{Source: "cli"})
			if err != nil {
				return fmt.Errorf("publish trigger: %w", err)
			}

			out := outputFn(cmd)
			if out.IsJSON() {
				out.JSON(msg)
				return nil
			}
			out.Success(fmt.Sprintf("Trigger %s published", msg.ID))
			return nil
		},
	}
}
