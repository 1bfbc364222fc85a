package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasktree/internal/session"
	"github.com/mesh-intelligence/tasktree/internal/sqlite"
	"github.com/mesh-intelligence/tasktree/pkg/board"
)

// storeFlags selects whether a command binds the snapshot backend.
type storeFlags struct {
	persist bool
	load    bool
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.persist, "persist", false, "attach the snapshot backend so the state can be saved")
	cmd.Flags().BoolVar(&f.load, "load", false, "start from the saved snapshot (implies --persist)")
}

// openStore builds the session store. With persistence on it also returns
// the attached backend, which the caller must Detach.
func (a *app) openStore(f storeFlags) (*board.Store, *sqlite.Backend, error) {
	opts := []board.Option{board.WithLogger(a.logger)}
	if !f.persist && !f.load {
		return board.NewStore(opts...), nil, nil
	}

	backend, err := a.attachBackend()
	if err != nil {
		return nil, nil, err
	}
	if f.load {
		st, err := backend.Load()
		if err != nil {
			_ = backend.Detach()
			return nil, nil, sysError(fmt.Errorf("load snapshot: %w", err))
		}
		a.logger.WithField("categories", st.Len()).WithField("tasks", st.TaskCount()).Info("snapshot loaded")
		opts = append(opts, board.WithInitialState(st))
	}
	return board.NewStore(opts...), backend, nil
}

func newSessionCmd(a *app) *cobra.Command {
	var (
		flags    storeFlags
		noPrompt bool
	)

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Edit the board with line commands",
		Long: "Read commands from standard input and re-render the board after each\n" +
			"change. Type help inside the session for the command list.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := a.openStore(flags)
			if err != nil {
				return err
			}

			opts := []session.Option{
				session.WithJSON(a.jsonMode),
				session.WithLogger(a.logger),
			}
			if backend != nil {
				defer backend.Detach()
				opts = append(opts, session.WithSnapshotter(backend))
			}
			if noPrompt {
				opts = append(opts, session.WithPrompt(""))
			}

			s := session.New(store, cmd.OutOrStdout(), opts...)
			if err := s.Run(cmd.Context(), cmd.InOrStdin()); err != nil {
				return sysError(err)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "do not print a prompt before each command")
	return cmd
}
