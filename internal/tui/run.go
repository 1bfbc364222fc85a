package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/tasktree/pkg/board"
	"github.com/mesh-intelligence/tasktree/pkg/types"
)

// Run starts the interactive board on in and out and blocks until the user
// quits or ctx is done. It returns the final snapshot.
func Run(ctx context.Context, store *board.Store, in io.Reader, out io.Writer) (types.State, error) {
	p := tea.NewProgram(New(store),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	// Dispatches made outside the program, such as a load after start, must
	// still reach the view. Send from a goroutine: listeners run inside
	// Update for the program's own dispatches and the event loop is busy.
	unsubscribe := store.Subscribe(func(types.State) {
		go p.Send(changedMsg{})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return store.State(), fmt.Errorf("run board: %w", err)
	}
	return store.State(), nil
}
