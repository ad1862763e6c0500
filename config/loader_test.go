package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[server]
url = "https://music.example.com"
username = "alice"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://music.example.com", cfg.Server.URL)
	assert.Equal(t, "alice", cfg.Server.Username)
	assert.Equal(t, 3, cfg.Server.LoginAttempts)
	assert.Equal(t, "navistream", cfg.Client.ID)
	assert.Equal(t, 500, cfg.Client.PageSize)
	assert.Equal(t, "mpv", cfg.Player.Backend)
	assert.Equal(t, 30*time.Second, cfg.Player.GetHTTPTimeout())
	assert.Equal(t, 320, cfg.Player.MaxBitRate)
	assert.Equal(t, 3*time.Second, cfg.UI.NoticeTTL())
	assert.Equal(t, "utf-8", cfg.UI.Encoding)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[server]
url = "http://localhost:4533"
login_attempts = 5

[player]
backend = "beep"
max_bitrate = 128

[ui]
encoding = "latin1"
notice_seconds = 1

[device]
id_file = "/tmp/device"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Server.LoginAttempts)
	assert.Equal(t, "beep", cfg.Player.Backend)
	assert.Equal(t, 128, cfg.Player.MaxBitRate)
	assert.Equal(t, "latin1", cfg.UI.Encoding)
	assert.Equal(t, time.Second, cfg.UI.NoticeTTL())
	assert.Equal(t, "/tmp/device", cfg.Device.IDFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
url = "http://localhost:4533"
password = "from-file"
`)
	t.Setenv("NAVISTREAM_SERVER_PASSWORD", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Server.Password)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing url", `[server]
username = "alice"`},
		{"bad backend", `[server]
url = "http://x"
[player]
backend = "vlc"`},
		{"zero attempts", `[server]
url = "http://x"
login_attempts = 0`},
		{"malformed", `[server`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
