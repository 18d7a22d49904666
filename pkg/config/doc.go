// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` for .env files and
// `github.com/caarlos0/env/v11` for struct parsing. Each configuration type
// is parsed once per process and cached by type.
//
// # Usage
//
//	type Config struct {
//	    PublicKeyFile string        `env:"TICKJWT_PUBLIC_KEY_FILE"`
//	    TickInterval  time.Duration `env:"TICKJWT_TICK_INTERVAL" envDefault:"16ms"`
//	}
//
//	if err := config.LoadEnv("./deploy/.env"); err != nil {
//	    return err
//	}
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Sentinel errors can be compared with errors.Is:
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrInvalidConfigType: the target is not a struct.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrNilPointer: nil pointer passed to Load or Reload.
//
// # Reloading
//
// Reload re-parses a single type after the environment changes, for example
// after LoadEnv has applied extra .env files.
package config
