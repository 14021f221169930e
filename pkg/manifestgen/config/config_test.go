package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "files", cfg.Root)
	assert.Equal(t, "api.json", cfg.Output)
	assert.Empty(t, cfg.Exclude)
	assert.False(t, cfg.FollowSymlinks)
	assert.True(t, cfg.Sort)
	assert.Equal(t, DefaultWorkers, cfg.Workers.Hash)
	assert.Zero(t, cfg.Workers.Walk)
	assert.Equal(t, DefaultNameWidth, cfg.Console.NameWidth)
	assert.False(t, cfg.Console.NoWait)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Empty(t, cfg.Logging.Path)
	assert.Equal(t, "10MB", cfg.Logging.Rotation.MaxSize)
	assert.Equal(t, 14, cfg.Logging.Rotation.MaxAge)
	assert.Equal(t, 3, cfg.Logging.Rotation.MaxBackups)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, AppName)
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(`
root: game
output: out/api.json
exclude:
  - "*.log"
  - saves
workers:
  hash: 4
logging:
  level: debug
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "game", cfg.Root)
	assert.Equal(t, "out/api.json", cfg.Output)
	assert.Equal(t, []string{"*.log", "saves"}, cfg.Exclude)
	assert.Equal(t, 4, cfg.Workers.Hash)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Sort, "unset keys keep their defaults")
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sort: false\nfollow_symlinks: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Sort)
	assert.True(t, cfg.FollowSymlinks)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, AppName)
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("root: [unclosed"), 0o644))

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MANIFESTGEN_ROOT", "assets")
	t.Setenv("MANIFESTGEN_WORKERS_HASH", "3")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "assets", cfg.Root)
	assert.Equal(t, 3, cfg.Workers.Hash)
}

func TestUnmarshal_ExpandsLogPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	v := viper.New()
	SetDefaults(v)
	v.Set("logging.path", "~/logs/run.log")

	cfg, err := Unmarshal(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "run.log"), cfg.Logging.Path)
}

func TestConfigDir(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)

		got, err := ConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, AppName), got)
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)
		t.Setenv("USERPROFILE", home)

		got, err := ConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", AppName), got)
	})
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/var/log/x.log", "/var/log/x.log"},
		{"relative/x.log", "relative/x.log"},
		{"~/x.log", filepath.Join(home, "x.log")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultLogPath(t *testing.T) {
	path := DefaultLogPath()
	assert.Equal(t, AppName+".log", filepath.Base(path))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(path)))
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := WriteDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, AppName, "config.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "root: files")
	assert.Contains(t, string(data), "output: api.json")

	// The written file loads back to the defaults.
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "files", cfg.Root)
	assert.Equal(t, DefaultWorkers, cfg.Workers.Hash)
	assert.Equal(t, "10MB", cfg.Logging.Rotation.MaxSize)

	// A second call leaves user edits alone.
	require.NoError(t, os.WriteFile(path, []byte("root: mine\n"), 0o644))
	again, err := WriteDefault()
	require.NoError(t, err)
	assert.Equal(t, path, again)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "root: mine\n", string(data))
}
