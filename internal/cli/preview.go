package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/chorewheel/internal/rotator"
)

// NewPreviewCmd создаёт команду "preview".
// Показывает распределение следующего запуска, ничего не отправляя и не сохраняя.
func NewPreviewCmd(storeFn StoreOpener, outputFn func(*cobra.Command) *Output, opts *options) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview next announcement",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeFn, err := storeFn(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			r := rotator.New(rotator.Config{Store: store, Key: opts.key})
			outcome, err := r.Preview(ctx)
			if err != nil {
				return err
			}

			out := outputFn(cmd)
			if raw {
				out.Text(outcome.Message)
				return nil
			}

			headers := []string{"PERSON", "CHORE"}
			rows := make([][]string, 0, len(outcome.Pairings))
			for _, p := range outcome.Pairings {
				rows = append(rows, []string{p.Person, p.Chore})
			}

			out.Print(headers, rows, outcome)
			if !out.IsJSON() {
				out.Success(fmt.Sprintf("Turn %d -> %d", outcome.PreviousTurn, outcome.NextTurn))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "message", false, "Print the announcement text as it would be sent")

	return cmd
}
