package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrParsingConfig = errors.New("config: parse environment")
	ErrInvalidConfig = errors.New("config: invalid value")
)

type Config struct {
	Host         string   `env:"HOST" envDefault:"127.0.0.1"`
	Port         int      `env:"PORT" envDefault:"8082"`
	AllowOrigins []string `env:"ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`
	// пустой LOG_FILE: только консоль
	LogFile     string `env:"LOG_FILE" envDefault:"logs/numunit-service.log"`
	MaxUploadMB int    `env:"MAX_UPLOAD_MB" envDefault:"32"`

	DefaultCulture  string        `env:"DEFAULT_CULTURE" envDefault:"en-us"`
	Cultures        []string      `env:"CULTURES" envDefault:"en-us,es-es,pt-br,fr-fr" envSeparator:","`
	EnglishFallback bool          `env:"ENGLISH_FALLBACK" envDefault:"true"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	MaxTextLength   int           `env:"MAX_TEXT_LENGTH" envDefault:"100000"`
	MatchTimeout    time.Duration `env:"MATCH_TIMEOUT" envDefault:"2s"`
}

// Load reads .env files (missing ones are ignored, real env vars win) and then
// the environment.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
	if len(files) == 0 {
		_ = godotenv.Load()
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	cfg.Cultures = cleanList(cfg.Cultures)
	cfg.AllowOrigins = cleanList(cfg.AllowOrigins)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// MustLoad is Load for main; it panics on error.
func MustLoad(files ...string) Config {
	cfg, err := Load(files...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: PORT=%d", ErrInvalidConfig, c.Port))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("%w: MAX_UPLOAD_MB=%d", ErrInvalidConfig, c.MaxUploadMB))
	}
	if c.MaxTextLength <= 0 {
		errs = append(errs, fmt.Errorf("%w: MAX_TEXT_LENGTH=%d", ErrInvalidConfig, c.MaxTextLength))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: REQUEST_TIMEOUT=%s", ErrInvalidConfig, c.RequestTimeout))
	}
	if len(c.Cultures) == 0 {
		errs = append(errs, fmt.Errorf("%w: CULTURES is empty", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// MaxUploadBytes is the request body limit.
func (c Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }
