package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load("")
	req.NoError(err)
	req.Equal("messageboard", cfg.App.Name)
	req.Equal("0.0.0.0:5002", cfg.HTTPAddr())
	req.False(cfg.UsesMongo())
	req.False(cfg.Redis.Enabled)
	req.Equal("/profile.jpeg", cfg.About.Image)
	req.Contains(cfg.About.Bio, "MERN stack")
}

func TestLoadFileThenEnv(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[app]
port = 9000
client_origin = "http://board.example"

[db]
connection_string = "mongodb://localhost:27017"
database = "board"

[redis]
enabled = true
`
	req.NoError(os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("DB_DATABASE", "board_env")
	t.Setenv("REDIS_ENABLED", "not-a-bool")

	cfg, err := Load(path)
	req.NoError(err)
	req.Equal(9000, cfg.App.Port)
	req.Equal("http://board.example", cfg.App.ClientOrigin)
	req.True(cfg.UsesMongo())
	req.Equal("board_env", cfg.DB.Database)
	req.True(cfg.Redis.Enabled)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[app\nport = "), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
