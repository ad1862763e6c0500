package config

import (
	"time"

	"github.com/pkg/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Client ClientConfig `mapstructure:"client"`
	Player PlayerConfig `mapstructure:"player"`
	UI     UIConfig     `mapstructure:"ui"`
	Device DeviceConfig `mapstructure:"device"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig contains Navidrome server connection settings
type ServerConfig struct {
	URL           string `mapstructure:"url"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	LoginAttempts int    `mapstructure:"login_attempts"`
}

// ClientConfig contains Subsonic API client settings
type ClientConfig struct {
	ID         string `mapstructure:"id"`
	APIVersion string `mapstructure:"api_version"`
	PageSize   int    `mapstructure:"page_size"` // songs per catalog page
}

// PlayerConfig contains playback and HTTP client settings
type PlayerConfig struct {
	Backend     string `mapstructure:"backend"`
	HTTPTimeout int    `mapstructure:"http_timeout"` // in seconds
	MaxBitRate  int    `mapstructure:"max_bitrate"`  // kbps
}

// UIConfig contains status line settings
type UIConfig struct {
	NoticeSeconds int    `mapstructure:"notice_seconds"`
	TitleWidth    int    `mapstructure:"title_width"`
	Encoding      string `mapstructure:"encoding"`
}

type DeviceConfig struct {
	IDFile string `mapstructure:"id_file"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// GetHTTPTimeout returns the HTTP timeout as a time.Duration
func (p *PlayerConfig) GetHTTPTimeout() time.Duration {
	return time.Duration(p.HTTPTimeout) * time.Second
}

// NoticeTTL returns how long transient notices stay visible.
func (u *UIConfig) NoticeTTL() time.Duration {
	return time.Duration(u.NoticeSeconds) * time.Second
}

// Validate checks values that viper cannot enforce.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return errors.New("missing required config: server.url")
	}
	if c.Server.LoginAttempts < 1 {
		return errors.Errorf("server.login_attempts must be at least 1, got %d", c.Server.LoginAttempts)
	}
	if c.Client.PageSize < 1 {
		return errors.Errorf("client.page_size must be at least 1, got %d", c.Client.PageSize)
	}
	switch c.Player.Backend {
	case "mpv", "beep":
	default:
		return errors.Errorf("unknown player.backend %q", c.Player.Backend)
	}
	return nil
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			LoginAttempts: 3,
		},
		Client: ClientConfig{
			ID:         "navistream",
			APIVersion: "1.16.1",
			PageSize:   500,
		},
		Player: PlayerConfig{
			Backend:     "mpv",
			HTTPTimeout: 30,
			MaxBitRate:  320,
		},
		UI: UIConfig{
			NoticeSeconds: 3,
			TitleWidth:    80,
			Encoding:      "utf-8",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
