package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. VIMYDIG_LOGLEVEL.
const EnvPrefix = "VIMYDIG"

// Config holds the bot's process settings.
type Config struct {
	LogLevel     string `mapstructure:"logLevel"`
	Seed         uint64 `mapstructure:"seed"` // 0 picks a time-based seed
	StrategyFile string `mapstructure:"strategyFile"`
	RecordFile   string `mapstructure:"recordFile"`
	ReplayFile   string `mapstructure:"replayFile"`
	Render       bool   `mapstructure:"render"`
	Annotate     bool   `mapstructure:"annotate"`
}

// Load reads settings from defaults, then the optional config file at path,
// then VIMYDIG_* environment variables. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("logLevel", "info")
	v.SetDefault("seed", 0)
	v.SetDefault("strategyFile", "")
	v.SetDefault("recordFile", "")
	v.SetDefault("replayFile", "")
	v.SetDefault("render", false)
	v.SetDefault("annotate", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Level maps LogLevel onto a slog level. Unknown names fall back to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
