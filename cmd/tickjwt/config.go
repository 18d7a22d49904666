package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/tickjwt/pkg/config"
	"github.com/dmitrymomot/tickjwt/pkg/jwt"
	"github.com/dmitrymomot/tickjwt/pkg/logger"
	"github.com/dmitrymomot/tickjwt/pkg/rsakey"
)

// Config is read from the environment, the default .env file and any
// --env-file given. Command line flags override it.
type Config struct {
	AppEnv          string        `env:"APP_ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"warn"`
	Algorithm       string        `env:"TICKJWT_ALGORITHM" envDefault:"RS256"`
	PublicKeyFile   string        `env:"TICKJWT_PUBLIC_KEY_FILE"`
	PreparedKeyFile string        `env:"TICKJWT_PREPARED_KEY_FILE"`
	SigningInput    string        `env:"TICKJWT_SIGNING_INPUT" envDefault:"compact"`
	TickInterval    time.Duration `env:"TICKJWT_TICK_INTERVAL" envDefault:"16ms"`
	BitsPerTick     int           `env:"TICKJWT_BITS_PER_TICK" envDefault:"4"`
	Timeout         time.Duration `env:"TICKJWT_TIMEOUT" envDefault:"10s"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if len(envFiles) > 0 {
		if err := config.LoadEnv(envFiles...); err != nil {
			return cfg, err
		}
		// The environment changed, so any cached value is stale.
		if err := config.Reload(&cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) logger() *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(c.AppEnv, "tickjwt"),
		logger.WithLevelName(c.LogLevel),
	}
	if verbose {
		opts = append(opts, logger.WithLevel(slog.LevelDebug))
	}
	return logger.New(opts...)
}

func (c Config) decoderOptions() ([]jwt.Option, error) {
	alg, err := jwt.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return nil, err
	}
	mode, err := jwt.ParseSigningInputMode(c.SigningInput)
	if err != nil {
		return nil, err
	}
	return []jwt.Option{jwt.WithAlgorithm(alg), jwt.WithSigningInput(mode)}, nil
}

// publicKey loads the configured key. A prepared key file takes precedence
// over a PEM file. It returns nil when neither is set.
func (c Config) publicKey() (*rsakey.PreparedKey, error) {
	switch {
	case c.PreparedKeyFile != "":
		key, err := rsakey.LoadMaterialFile(c.PreparedKeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading prepared key: %w", err)
		}
		return key, nil
	case c.PublicKeyFile != "":
		pub, err := rsakey.LoadPublicKeyFile(c.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading public key: %w", err)
		}
		return rsakey.Prepare(pub)
	default:
		return nil, nil
	}
}
