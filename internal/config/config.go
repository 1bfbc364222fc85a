// Package config loads tasktree settings from config.yaml using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tasktree/pkg/types"
)

const (
	fileName = "config"
	fileType = "yaml"
	fileExt  = "config.yaml"

	KeyBackend  = "backend"
	KeyDataDir  = "data_dir"
	KeyLogLevel = "log_level"

	DefaultLogLevel = "warn"
)

// Settings is the decoded content of config.yaml.
type Settings struct {
	Backend  string `yaml:"backend" mapstructure:"backend"`
	DataDir  string `yaml:"data_dir,omitempty" mapstructure:"data_dir"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// Path returns the config.yaml path inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, fileExt)
}

// Load reads config.yaml from configDir. A missing file is not an error;
// keys absent from the file, or every key when there is no file, take their
// defaults. Load never writes; init does.
func Load(configDir string) (Settings, error) {
	v := viper.New()
	v.SetDefault(KeyBackend, types.BackendSQLite)
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// WriteDefault creates configDir and writes a default config.yaml there
// unless one already exists. dataDir is recorded when non-empty.
func WriteDefault(configDir, dataDir string) error {
	_, err := os.Stat(Path(configDir))
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return Write(configDir, Settings{
		Backend:  types.BackendSQLite,
		DataDir:  dataDir,
		LogLevel: DefaultLogLevel,
	})
}

// Write creates configDir and replaces config.yaml with s.
func Write(configDir string, s Settings) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(Path(configDir), append([]byte("# tasktree configuration\n"), data...), 0o644)
}

// Level parses s.LogLevel, falling back to the default level when empty.
func (s Settings) Level() (log.Level, error) {
	name := s.LogLevel
	if name == "" {
		name = DefaultLogLevel
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.WarnLevel, fmt.Errorf("log_level %q: %w", name, err)
	}
	return lvl, nil
}
