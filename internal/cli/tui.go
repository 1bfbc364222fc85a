package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasktree/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit the board interactively",
		Long: "Open a full-screen board. With --persist the final state is saved\n" +
			"when the board closes.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore(flags)
			if err != nil {
				return err
			}
			if backend != nil {
				defer backend.Detach()
			}

			st, err := tui.Run(cmd.Context(), store, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return sysError(err)
			}
			if backend == nil {
				return nil
			}
			if err := backend.Save(st); err != nil {
				return sysError(fmt.Errorf("save snapshot: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d categories, %d tasks\n", st.Len(), st.TaskCount())
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
