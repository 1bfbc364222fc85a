package types

import "errors"

// Snapshotter saves and restores a State between sessions. The in-memory
// session never requires one; the CLI attaches a Snapshotter only when the
// user asks to load or save.
type Snapshotter interface {
	// Attach connects to the backend described by config, creating
	// config.DataDir if needed. Returns ErrAlreadyAttached if called twice.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Save replaces the stored snapshot with state.
	Save(state State) error

	// Load returns the stored snapshot, or an empty State if nothing has been
	// saved yet.
	Load() (State, error)
}

// Snapshotter lifecycle and data errors.
var (
	ErrDetached        = errors.New("snapshot backend is detached")
	ErrAlreadyAttached = errors.New("snapshot backend is already attached")
	ErrInvalidID       = errors.New("invalid entity ID")
	ErrOrphanTask      = errors.New("task references unknown category")
)
