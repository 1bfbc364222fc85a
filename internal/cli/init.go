package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasktree/internal/config"
	"github.com/mesh-intelligence/tasktree/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize tasktree storage",
		Long: "Create the configuration and data directories, then initialize the snapshot backend.\n" +
			"A data directory given with --data-dir or TASKTREE_DATA_DIR is recorded in config.yaml.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := a.resolveDataDir()
			if err != nil {
				return sysError(fmt.Errorf("resolve data dir: %w", err))
			}
			if err := a.recordDataDir(dataDir); err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tasktree initialized\nconfig: %s\ndata:   %s\n", config.Path(a.configDir), dataDir)
			return nil
		},
	}
}

// recordDataDir writes config.yaml if it is missing. An explicit data
// directory (flag, or env with no data_dir in the file) is stored so later
// runs without the override find the same snapshot.
func (a *app) recordDataDir(dataDir string) error {
	explicit := a.dataDir != "" || (a.settings.DataDir == "" && os.Getenv(paths.EnvDataDir) != "")
	record := ""
	if explicit {
		record = dataDir
	}

	if _, err := os.Stat(config.Path(a.configDir)); os.IsNotExist(err) {
		return config.WriteDefault(a.configDir, record)
	}
	if record == "" || record == a.settings.DataDir {
		return nil
	}

	// Reload so a --log-level override is not persisted.
	onDisk, err := config.Load(a.configDir)
	if err != nil {
		return err
	}
	onDisk.DataDir = record
	a.settings.DataDir = record
	return config.Write(a.configDir, onDisk)
}
