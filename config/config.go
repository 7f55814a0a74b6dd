package config

import (
	"errors"

	"github.com/SaiNageswarS/go-rest-boot/dotenv"
	"github.com/caarlos0/env/v11"
	"github.com/go-ini/ini"
)

// Note: go-rest-boot holds clear distinction between config and secrets.
// Config is for application configuration that can be stored in version control.
// Secrets are sensitive information like the JWT signing key that should not be
// stored in version control. Secrets are exclusively read from environment variables.
type BootConfig struct {
	HTTPPort string `ini:"http_port" env:"HTTP-PORT"`
	Domain   string `ini:"domain" env:"DOMAIN"`

	// ssl
	SslCacheDir string `ini:"ssl_cache_dir" env:"SSL-CACHE-DIR"`

	// jwt
	AccessSecret string `env:"ACCESS-SECRET"`
}

// LoadConfig loads config into the target struct from the given path - an INI file.
// It first loads the INI file and then overrides the values with environment
// variables. Load secrets into environment variables (e.g. via dotenv) before
// calling this.
func LoadConfig[T any](path string, target *T) error {
	if target == nil {
		return errors.New("target cannot be nil")
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return err
	}

	// Step 1: Load from INI
	if err := cfg.MapTo(target); err != nil {
		return err
	}

	// Step 2: Override from ENV
	if err := dotenv.LoadEnv(); err != nil {
		return err
	}

	if err := env.Parse(target); err != nil {
		return err
	}

	return nil
}
