package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

// EnvPrefix marks the environment variables read by Load.
const EnvPrefix = "LSYS_"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// ErrInvalidConfig is returned for values that decode but make no sense.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings shared by every lsys command.
// Each field maps to LSYS_<TAG> in upper case, e.g. LSYS_REDIS_ADDR.
type Config struct {
	Store         string        `mapstructure:"store"`
	Dir           string        `mapstructure:"dir"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisPrefix   string        `mapstructure:"redis_prefix"`
	RedisTTL      time.Duration `mapstructure:"redis_ttl"`
	MaxDepth      int           `mapstructure:"max_depth"`
	Debug         bool          `mapstructure:"debug"`
	Port          int           `mapstructure:"port"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Store:       StoreFile,
		Dir:         ".lsys/grammars",
		RedisAddr:   "localhost:6379",
		RedisPrefix: "lindenmayer:grammar:",
		MaxDepth:    256,
		Port:        8080,
	}
}

// Load reads the given .env files (".env" when none are given) into the
// process environment without overriding variables already set, then
// decodes the LSYS_* variables over Default(). Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.Environ())
}

// FromEnv decodes "KEY=value" pairs. Keys without EnvPrefix are skipped,
// values are weakly typed ("1" and "true" both enable Debug).
func FromEnv(environ []string) (Config, error) {
	raw := make(map[string]any)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		raw[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the cross-field rules.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("%w: unknown store %q (want memory, file or redis)", ErrInvalidConfig, c.Store)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must not be negative", ErrInvalidConfig)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	return nil
}
