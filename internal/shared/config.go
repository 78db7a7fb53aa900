package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

//go:embed config.example.toml
var exampleConf []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// envPrefix is the prefix for environment overrides, e.g. LYRX_BASE_URL.
const envPrefix = "lyrx"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Service ServiceConfig `toml:"service" json:"service"`
	Display DisplayConfig `toml:"display" json:"display"`
	Server  ServerConfig  `toml:"server" json:"server"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// ServiceConfig describes the remote lyrics service.
type ServiceConfig struct {
	BaseURL        string `toml:"base_url" json:"base_url" validate:"required,http_url"`
	TimeoutSeconds int    `toml:"timeout_seconds" json:"timeout_seconds" validate:"gt=0"`
	UserAgent      string `toml:"user_agent" json:"user_agent"`
}

// Timeout returns the per-request timeout as a [time.Duration].
func (s ServiceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// DisplayConfig contains presentation toggles shared by every front end.
type DisplayConfig struct {
	ShowResultCount bool `toml:"show_result_count" json:"show_result_count"`
}

// ServerConfig contains HTTP server settings for the web front end.
type ServerConfig struct {
	Host           string   `toml:"host" json:"host"`
	Port           int      `toml:"port" json:"port" validate:"gt=0,lte=65535"`
	AllowedOrigins []string `toml:"allowed_origins" json:"allowed_origins"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" json:"level" validate:"omitempty,oneof=debug info warn error fatal"`
	File  string `toml:"file" json:"file"`
}

// EnvOverrides are optional environment values applied on top of the file config.
//
// Zero values mean "not set".
type EnvOverrides struct {
	BaseURL         string `envconfig:"BASE_URL"`
	TimeoutSeconds  int    `envconfig:"TIMEOUT_SECONDS"`
	ShowResultCount string `envconfig:"SHOW_RESULT_COUNT"`
	ServerHost      string `envconfig:"SERVER_HOST"`
	ServerPort      int    `envconfig:"SERVER_PORT"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Resolve loads the config file at path when it exists, falling back to defaults,
// then applies .env and LYRX_* environment overrides and validates the result.
func Resolve(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}

	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overlays LYRX_* environment variables on the config.
func (c *Config) ApplyEnv() error {
	var env EnvOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if env.BaseURL != "" {
		c.Service.BaseURL = env.BaseURL
	}
	if env.TimeoutSeconds != 0 {
		c.Service.TimeoutSeconds = env.TimeoutSeconds
	}
	if env.ShowResultCount != "" {
		show, err := strconv.ParseBool(env.ShowResultCount)
		if err != nil {
			return fmt.Errorf("%w: LYRX_SHOW_RESULT_COUNT=%q", ErrInvalidConfig, env.ShowResultCount)
		}
		c.Display.ShowResultCount = show
	}
	if env.ServerHost != "" {
		c.Server.Host = env.ServerHost
	}
	if env.ServerPort != 0 {
		c.Server.Port = env.ServerPort
	}
	if env.LogLevel != "" {
		c.Log.Level = env.LogLevel
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s must satisfy %q, got %v", ErrInvalidConfig, fe.Namespace(), fe.ActualTag(), fe.Value())
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
