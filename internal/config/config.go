// Package config loads kanaz settings from an optional YAML file, a .env
// file and KANAZ_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds application configuration.
type Config struct {
	DB    DB    `mapstructure:"db"`
	Log   Log   `mapstructure:"log"`
	UI    UI    `mapstructure:"ui"`
	Quiz  Quiz  `mapstructure:"quiz"`
	Audio Audio `mapstructure:"audio"`
}

// DB selects the history database. Empty means the default SQLite path.
type DB struct {
	DSN string `mapstructure:"dsn"`
}

// Log configures the file logger. The TUI owns the terminal, so logs go
// to a file.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// UI holds presentation settings.
type UI struct {
	Theme string `mapstructure:"theme"` // "light" or "dark"
}

// Quiz holds quiz defaults.
type Quiz struct {
	Count     int    `mapstructure:"count"`
	Direction string `mapstructure:"direction"` // "glyph", "reading" or "mixed"
}

// Audio configures pronunciation playback.
type Audio struct {
	Enabled     bool   `mapstructure:"enabled"`
	Command     string `mapstructure:"command"`
	AssetsDir   string `mapstructure:"assets_dir"`
	CacheDir    string `mapstructure:"cache_dir"`
	Placeholder string `mapstructure:"placeholder"`
	TTSKey      string `mapstructure:"tts_key"`
	Language    string `mapstructure:"language"`
}

// CommandArgs splits Command into argv.
func (a Audio) CommandArgs() []string {
	return strings.Fields(a.Command)
}

// Load reads configuration. path names an explicit config file; when
// empty, config.yaml is looked up in the kanaz config directory and its
// absence is not an error.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	v.SetDefault("db.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(stateHome(), "kanaz", "kanaz.log"))
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("quiz.count", 10)
	v.SetDefault("quiz.direction", "glyph")
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.command", "ffplay -nodisp -autoexit -loglevel quiet")
	v.SetDefault("audio.assets_dir", "")
	v.SetDefault("audio.cache_dir", filepath.Join(cacheHome(), "kanaz", "tts"))
	v.SetDefault("audio.placeholder", "")
	v.SetDefault("audio.tts_key", "")
	v.SetDefault("audio.language", "ja-JP")

	v.SetEnvPrefix("KANAZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Extra environment names for the same keys.
	_ = v.BindEnv("db.dsn", "KANAZ_DB", "KANAZ_DB_DSN")
	_ = v.BindEnv("audio.tts_key", "KANAZ_AUDIO_TTS_KEY", "GOOGLE_TTS_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Quiz.Count < 1 || c.Quiz.Count > 100 {
		return fmt.Errorf("quiz.count must be between 1 and 100, got %d", c.Quiz.Count)
	}
	switch c.Quiz.Direction {
	case "glyph", "reading", "mixed":
	default:
		return fmt.Errorf("quiz.direction must be glyph, reading or mixed, got %q", c.Quiz.Direction)
	}
	switch c.UI.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("ui.theme must be light or dark, got %q", c.UI.Theme)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Audio.Enabled && len(c.Audio.CommandArgs()) == 0 {
		return errors.New("audio.command is empty")
	}
	return nil
}

// Dir is the kanaz config directory.
func Dir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "kanaz")
	}
	if d, err := os.UserConfigDir(); err == nil {
		return filepath.Join(d, "kanaz")
	}
	return ".kanaz"
}

// loadDotEnv loads .env from the working directory, then from the config
// directory. Variables already set are kept.
func loadDotEnv() error {
	for _, p := range []string{".env", filepath.Join(Dir(), ".env")} {
		err := godotenv.Load(p)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

func stateHome() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return d
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state")
	}
	return os.TempDir()
}

func cacheHome() string {
	if d, err := os.UserCacheDir(); err == nil {
		return d
	}
	return os.TempDir()
}
