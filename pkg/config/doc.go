// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// the default `.env` file is loaded once (if present), then each Go struct
// annotated with `env` tags is parsed from the environment and cached by its
// type name so it is only parsed once for the lifetime of the process.
//
// Every component of the service declares its own config struct and receives
// the loaded value at construction time; nothing reads environment variables
// at request time.
//
//	type JWTConfig struct {
//	    Secret         string `env:"AUTH_JWT_SECRET" envDefault:"change-me"`
//	    ExpiresMinutes int    `env:"AUTH_JWT_EXPIRES_MINUTES" envDefault:"60"`
//	}
//
//	var cfg JWTConfig
//	config.MustLoad(&cfg)
//
// Sentinel errors (`ErrParsingConfig`, `ErrConfigNotLoaded`, `ErrNilPointer`)
// can be compared with `errors.Is`.
package config
