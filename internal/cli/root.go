// Package cli implements the tasktree command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasktree/internal/config"
	"github.com/mesh-intelligence/tasktree/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as an environment failure (exit code 2).
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error returned by the root command to an exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// app holds global flag values and the state resolved before a subcommand
// runs.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string

	settings config.Settings
	logger   *log.Logger
}

// NewRootCmd creates the top-level "tasktree" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tasktree",
		Short: "Categories of tasks held in a nested state tree",
		Long: "tasktree keeps an ordered list of categories, each owning an ordered list\n" +
			"of tasks, and advances it one action at a time.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/.tasktree-db)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config.yaml)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newSessionCmd(a))
	root.AddCommand(newTUICmd(a))
	root.AddCommand(newShowCmd(a))

	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tasktree:", err)
		os.Exit(exitCode(err))
	}
}

// setup resolves the config directory, loads config.yaml and builds the
// logger. The version command needs none of it.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = newLogger(cmd.ErrOrStderr(), log.WarnLevel)
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	settings, err := config.Load(configDir)
	if err != nil {
		return sysError(fmt.Errorf("load config: %w", err))
	}
	if a.logLevel != "" {
		settings.LogLevel = a.logLevel
	}
	a.settings = settings

	level, err := settings.Level()
	if err != nil {
		return err
	}
	a.logger.SetLevel(level)
	a.logger.WithField("config_dir", configDir).Debug("configuration loaded")
	return nil
}

// resolveDataDir applies flag > config.yaml > env > default precedence.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.dataDir, a.settings.DataDir)
}

func newLogger(out io.Writer, level log.Level) *log.Logger {
	l := log.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return l
}
