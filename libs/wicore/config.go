package wicore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
)

const (
	EnvLogLevel     = "WEBIMAGES_LOG_LEVEL"
	EnvLogFormat    = "WEBIMAGES_LOG_FORMAT"
	EnvJPEGQuality  = "WEBIMAGES_JPEG_QUALITY"
	EnvPaletteSeed  = "WEBIMAGES_PALETTE_SEED"
	defaultQuality  = 95
	defaultLogLevel = "info"
)

// Config holds the process-wide settings of the library.
type Config struct {
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=json text"`
	JPEGQuality int    `validate:"min=1,max=100"`
	// PaletteSeed fixes the label palette of unseeded visualisations. Nil
	// means a fresh time-based seed per call.
	PaletteSeed *uint64
}

var (
	validate = validator.New()
	current  atomic.Pointer[Config]
)

func init() {
	cfg := DefaultConfig()
	current.Store(&cfg)
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		LogLevel:    defaultLogLevel,
		LogFormat:   "json",
		JPEGQuality: defaultQuality,
	}
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c Config) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadConfig reads the configuration from the environment. Values that fail
// to parse or validate are replaced by their defaults and reported at warn
// level.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvJPEGQuality); ok {
		q, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			Warn("ignoring unparsable setting", "name", EnvJPEGQuality, "value", v, "error", err)
		} else {
			cfg.JPEGQuality = q
		}
	}
	if v, ok := os.LookupEnv(EnvPaletteSeed); ok && strings.TrimSpace(v) != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			Warn("ignoring unparsable setting", "name", EnvPaletteSeed, "value", v, "error", err)
		} else {
			cfg.PaletteSeed = &seed
		}
	}

	var verrs validator.ValidationErrors
	if err := validate.Struct(cfg); errors.As(err, &verrs) {
		def := DefaultConfig()
		for _, fe := range verrs {
			Warn("invalid setting, using default", "field", fe.Field(), "value", fe.Value(), "rule", fe.Tag())
			switch fe.Field() {
			case "LogLevel":
				cfg.LogLevel = def.LogLevel
			case "LogFormat":
				cfg.LogFormat = def.LogFormat
			case "JPEGQuality":
				cfg.JPEGQuality = def.JPEGQuality
			}
		}
	}
	return cfg
}

// Configure installs cfg as the active configuration and rebuilds the logger.
// It is safe to call while other operations are running.
func Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Store(newLogger(cfg))
	current.Store(&cfg)
	return nil
}

// CurrentConfig returns a copy of the active configuration.
func CurrentConfig() Config {
	return *current.Load()
}
