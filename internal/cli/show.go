package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasktree/internal/render"
)

func newShowCmd(a *app) *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			st, err := backend.Load()
			if err != nil {
				return sysError(fmt.Errorf("load snapshot: %w", err))
			}

			if a.jsonMode {
				return render.JSON(cmd.OutOrStdout(), st)
			}
			opts := render.DefaultOptions()
			opts.ShowIDs = showIDs
			fmt.Fprint(cmd.OutOrStdout(), render.Board(st, opts))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showIDs, "ids", false, "include category and task ids")
	return cmd
}
