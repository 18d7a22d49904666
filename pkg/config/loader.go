package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// cache holds one parsed value per configuration type.
	cache sync.Map

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into v according to its `env` tags.
// The default .env file in the working directory is read once, if present.
// Each configuration type is parsed once; later calls copy the cached value.
//
// Example:
//
//	type Config struct {
//		Algorithm   string        `env:"TICKJWT_ALGORITHM" envDefault:"RS256"`
//		BitsPerTick int           `env:"TICKJWT_BITS_PER_TICK" envDefault:"4"`
//		Timeout     time.Duration `env:"TICKJWT_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		// A missing .env file is fine.
		_ = godotenv.Load()
	})

	key := typeKey[T]()
	if cached, ok := cache.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	if err := parse(v); err != nil {
		return err
	}

	// Concurrent first loads may race; the first stored value wins.
	actual, _ := cache.LoadOrStore(key, *v)
	*v = actual.(T)
	return nil
}

// Reload parses v again, ignoring and replacing any cached value.
func Reload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := parse(v); err != nil {
		return err
	}
	cache.Store(typeKey[T](), *v)
	return nil
}

// LoadEnv reads the given .env files into the process environment. Later
// files override earlier ones and both override variables already set.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

func parse[T any](v *T) error {
	if reflect.TypeFor[T]().Kind() != reflect.Struct {
		return ErrInvalidConfigType
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
