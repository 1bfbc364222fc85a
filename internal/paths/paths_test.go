package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPlatform swaps the platform lookups for the duration of a test.
func withPlatform(t *testing.T, goos, home, userConfig string) {
	t.Helper()
	saved := platform
	platform.goos = goos
	platform.homeDir = func() (string, error) { return home, nil }
	platform.userConfigDir = func() (string, error) { return userConfig, nil }
	t.Cleanup(func() { platform = saved })
}

func TestDefaultDirsLinux(t *testing.T) {
	withPlatform(t, "linux", "/home/ann", "/unused")

	tests := []struct {
		name string
		env  map[string]string
		fn   func() (string, error)
		want string
	}{
		{
			name: "config uses XDG_CONFIG_HOME",
			env:  map[string]string{"XDG_CONFIG_HOME": "/tmp/xdg-config"},
			fn:   DefaultConfigDir,
			want: "/tmp/xdg-config/tasktree",
		},
		{
			name: "config falls back to ~/.config",
			env:  map[string]string{"XDG_CONFIG_HOME": ""},
			fn:   DefaultConfigDir,
			want: "/home/ann/.config/tasktree",
		},
		{
			name: "data uses XDG_DATA_HOME",
			env:  map[string]string{"XDG_DATA_HOME": "/tmp/xdg-data"},
			fn:   DefaultDataDir,
			want: "/tmp/xdg-data/tasktree",
		},
		{
			name: "data falls back to ~/.local/share",
			env:  map[string]string{"XDG_DATA_HOME": ""},
			fn:   DefaultDataDir,
			want: "/home/ann/.local/share/tasktree",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := tt.fn()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultDirsOtherPlatforms(t *testing.T) {
	withPlatform(t, "darwin", "/Users/ann", "/Users/ann/Library/Application Support")

	cfg, err := DefaultConfigDir()
	require.NoError(t, err)
	data, err := DefaultDataDir()
	require.NoError(t, err)

	assert.Equal(t, "/Users/ann/Library/Application Support/tasktree", cfg)
	assert.Equal(t, cfg, data)
}

func TestDefaultDirsPropagateLookupErrors(t *testing.T) {
	saved := platform
	t.Cleanup(func() { platform = saved })
	platform.goos = "linux"
	platform.homeDir = func() (string, error) { return "", errors.New("no home") }
	t.Setenv("XDG_CONFIG_HOME", "")

	_, err := DefaultConfigDir()
	assert.EqualError(t, err, "no home")
}

func TestResolveConfigDir(t *testing.T) {
	withPlatform(t, "linux", "/home/ann", "/unused")
	t.Setenv("XDG_CONFIG_HOME", "")

	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{name: "flag wins over env", flag: "/explicit/config", envVal: "/env/config", want: "/explicit/config"},
		{name: "env wins when flag empty", envVal: "/env/config", want: "/env/config"},
		{name: "platform default when both empty", want: "/home/ann/.config/tasktree"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{name: "flag wins over all", flag: "/flag/data", configValue: "/config/data", envVal: "/env/data", want: "/flag/data"},
		{name: "config.yaml wins over env", configValue: "/config/data", envVal: "/env/data", want: "/config/data"},
		{name: "env wins when flag and config empty", envVal: "/env/data", want: "/env/data"},
		{name: "CWD default when all empty", want: filepath.Join(cwd, DefaultDataDirName)},
		{name: "relative flag becomes absolute", flag: "rel/data", want: filepath.Join(cwd, "rel", "data")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
