// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TomasB/ipcheck/internal/data"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting of the service. It is mapped by viper from
// upper-cased environment variables of the same name.
type Config struct {
	Port               string        `mapstructure:"port"`
	GRPCPort           string        `mapstructure:"grpc_port"`
	LogLevel           string        `mapstructure:"log_level"`
	LogFormat          string        `mapstructure:"log_format"`
	ProviderURL        string        `mapstructure:"ipinfo_url"`
	Token              string        `mapstructure:"ipinfo_token"`
	TokenFile          string        `mapstructure:"ipinfo_token_file"`
	DNSServer          string        `mapstructure:"dns_server"`
	LookupTimeout      time.Duration `mapstructure:"lookup_timeout"`
	DNSTimeout         time.Duration `mapstructure:"dns_timeout"`
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
}

// GRPCDisabled is the GRPC_PORT value that turns the gRPC listener off.
const GRPCDisabled = "off"

var errInvalidConfig = errors.New("invalid configuration")

func defaultViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("grpc_port", "9090")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("ipinfo_url", data.DefaultProviderURL)
	v.SetDefault("ipinfo_token", "")
	v.SetDefault("ipinfo_token_file", "")
	v.SetDefault("dns_server", "")
	v.SetDefault("lookup_timeout", 5*time.Second)
	v.SetDefault("dns_timeout", 3*time.Second)
	v.SetDefault("session_idle_timeout", 30*time.Minute)

	v.AutomaticEnv()
	return v
}

// Load reads the optional env files (".env" when none are given), then the
// environment, and validates the result. It fails with data.ErrMissingCredential
// when no access token can be found.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := defaultViper().Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errInvalidConfig, err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("%w: LOOKUP_TIMEOUT must be positive", errInvalidConfig)
	}
	if c.DNSTimeout <= 0 {
		return fmt.Errorf("%w: DNS_TIMEOUT must be positive", errInvalidConfig)
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("%w: SESSION_IDLE_TIMEOUT must be positive", errInvalidConfig)
	}

	if c.TokenFile != "" {
		token, err := readToken(c.TokenFile)
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("%w: %s is empty", data.ErrMissingCredential, c.TokenFile)
		}
		return nil
	}
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%w: set IPINFO_TOKEN or IPINFO_TOKEN_FILE", data.ErrMissingCredential)
	}
	return nil
}

// GRPCEnabled reports whether the gRPC listener should be started.
func (c Config) GRPCEnabled() bool {
	return c.GRPCPort != "" && c.GRPCPort != GRPCDisabled
}

func readToken(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
