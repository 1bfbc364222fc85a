package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tasktree/pkg/types"
)

func TestLoadWithoutConfigFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, types.BackendSQLite, s.Backend)
	assert.Equal(t, DefaultLogLevel, s.LogLevel)
	assert.Empty(t, s.DataDir)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "Load must not create the config dir")
}

func TestWriteDefaultRecordsDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	require.NoError(t, WriteDefault(dir, "/srv/tasks"))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Settings{Backend: types.BackendSQLite, DataDir: "/srv/tasks", LogLevel: DefaultLogLevel}, s)
}

func TestWriteReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir, ""))
	require.NoError(t, Write(dir, Settings{Backend: types.BackendSQLite, DataDir: "/moved", LogLevel: "debug"}))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/moved", s.DataDir)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadReadsExistingConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want Settings
	}{
		{
			name: "all keys",
			yaml: "backend: sqlite\ndata_dir: /srv/tasks\nlog_level: debug\n",
			want: Settings{Backend: "sqlite", DataDir: "/srv/tasks", LogLevel: "debug"},
		},
		{
			name: "missing keys take defaults",
			yaml: "data_dir: elsewhere\n",
			want: Settings{Backend: "sqlite", DataDir: "elsewhere", LogLevel: DefaultLogLevel},
		},
		{
			name: "empty file",
			yaml: "",
			want: Settings{Backend: "sqlite", LogLevel: DefaultLogLevel},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(Path(dir), []byte(tt.yaml), 0o644))

			got, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("backend: [unclosed\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestWriteDefaultKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir, "/first"))
	require.NoError(t, WriteDefault(dir, "/second"))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/first", s.DataDir)
}

func TestSettingsLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    log.Level
		wantErr bool
	}{
		{name: "empty uses default", level: "", want: log.WarnLevel},
		{name: "debug", level: "debug", want: log.DebugLevel},
		{name: "case insensitive", level: "INFO", want: log.InfoLevel},
		{name: "unknown", level: "chatty", want: log.WarnLevel, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Settings{LogLevel: tt.level}.Level()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
