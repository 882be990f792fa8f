package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/chorewheel/internal/domain"
	"github.com/shaiso/chorewheel/internal/repo"
)

// NewStateCmd создаёт команду "state" с подкомандами.
func NewStateCmd(storeFn StoreOpener, outputFn func(*cobra.Command) *Output, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Manage rotation state",
	}

	cmd.AddCommand(
		newStateInitCmd(storeFn, outputFn, opts),
		newStateShowCmd(storeFn, outputFn, opts),
	)

	return cmd
}

func newStateInitCmd(storeFn StoreOpener, outputFn func(*cobra.Command) *Output, opts *options) *cobra.Command {
	var (
		file   string
		people []string
		chores []string
		turn   int
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create or replace rotation state",
		Example: `  chorewheel state init --people Alice,Bob,Carol --chores Dishes,Trash
  chorewheel state init -f roster.yaml --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := &domain.RotationState{}
			if file != "" {
				loaded, err := LoadRoster(file)
				if err != nil {
					return err
				}
				state = loaded
			}

			// флаги перекрывают значения из файла
			if cmd.Flags().Changed("people") {
				state.People = trimAll(people)
			}
			if cmd.Flags().Changed("chores") {
				state.Chores = trimAll(chores)
			}
			if cmd.Flags().Changed("turn") {
				state.CurrentTurn = turn
			}

			if err := state.ValidateStored(); err != nil {
				return err
			}

			ctx := cmd.Context()
			store, closeFn, err := storeFn(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			_, err = store.Get(ctx, opts.key)
			switch {
			case err == nil, errors.Is(err, domain.ErrInvalidState):
				if !force {
					return fmt.Errorf("state %q already exists (use --force to replace it)", opts.key)
				}
			case errors.Is(err, repo.ErrNotFound):
			default:
				return fmt.Errorf("read state: %w", err)
			}

			if err := store.Put(ctx, opts.key, state); err != nil {
				return fmt.Errorf("save state: %w", err)
			}

			out := outputFn(cmd)
			if out.IsJSON() {
				out.JSON(state)
				return nil
			}
			out.Success(fmt.Sprintf("State %q saved: %d people, %d chores, turn %d",
				opts.key, len(state.People), len(state.Chores), state.CurrentTurn))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to YAML roster")
	cmd.Flags().StringSliceVar(&people, "people", nil, "Comma-separated people in rotation order")
	cmd.Flags().StringSliceVar(&chores, "chores", nil, "Comma-separated chores")
	cmd.Flags().IntVar(&turn, "turn", 0, "Current turn")
	cmd.Flags().BoolVar(&force, "force", false, "Replace existing state")

	return cmd
}

func newStateShowCmd(storeFn StoreOpener, outputFn func(*cobra.Command) *Output, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show rotation state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeFn, err := storeFn(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			state, err := store.Get(ctx, opts.key)
			if err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return fmt.Errorf("state %q not found (run \"chorewheel state init\")", opts.key)
				}
				return err
			}

			headers := []string{"FIELD", "VALUE"}
			rows := [][]string{
				{"key", opts.key},
				{"people", strings.Join(state.People, ", ")},
				{"chores", strings.Join(state.Chores, ", ")},
				{"current_turn", strconv.Itoa(state.CurrentTurn)},
			}

			outputFn(cmd).Print(headers, rows, state)
			return nil
		},
	}
}

func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, strings.TrimSpace(v))
	}
	return result
}
