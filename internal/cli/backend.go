package cli

import (
	"fmt"

	"github.com/mesh-intelligence/tasktree/internal/sqlite"
	"github.com/mesh-intelligence/tasktree/pkg/types"
)

// attachBackend resolves the data directory and attaches a snapshot backend
// there. The caller must Detach it.
func (a *app) attachBackend() (*sqlite.Backend, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	backend := sqlite.NewBackend()
	backend.SetLogger(a.logger)
	err = backend.Attach(types.Config{
		Backend: a.settings.Backend,
		DataDir: dataDir,
	})
	if err != nil {
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	return backend, nil
}
