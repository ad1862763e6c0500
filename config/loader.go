package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const appName = "navistream"

// Load reads config.toml from the first of $XDG_CONFIG_HOME/navistream,
// $HOME/.config/navistream, $HOME/.config and the working directory. A
// non-empty path is read instead. NAVISTREAM_* environment variables
// override file values, e.g. NAVISTREAM_SERVER_PASSWORD.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))
		v.AddConfigPath("$HOME/.config/" + appName)
		v.AddConfigPath("$HOME/.config/")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so that environment overrides apply
// even when the file omits the key.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("server.url", defaults.Server.URL)
	v.SetDefault("server.username", defaults.Server.Username)
	v.SetDefault("server.password", defaults.Server.Password)
	v.SetDefault("server.login_attempts", defaults.Server.LoginAttempts)
	v.SetDefault("client.id", defaults.Client.ID)
	v.SetDefault("client.api_version", defaults.Client.APIVersion)
	v.SetDefault("client.page_size", defaults.Client.PageSize)
	v.SetDefault("player.backend", defaults.Player.Backend)
	v.SetDefault("player.http_timeout", defaults.Player.HTTPTimeout)
	v.SetDefault("player.max_bitrate", defaults.Player.MaxBitRate)
	v.SetDefault("ui.notice_seconds", defaults.UI.NoticeSeconds)
	v.SetDefault("ui.title_width", defaults.UI.TitleWidth)
	v.SetDefault("ui.encoding", defaults.UI.Encoding)
	v.SetDefault("device.id_file", defaults.Device.IDFile)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.level", defaults.Log.Level)
}
