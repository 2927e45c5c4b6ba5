package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrDatabaseUserCollision is returned when the configured database name equals the database username,
// which points the bot at the user's default database instead of the quiz database.
var ErrDatabaseUserCollision = errors.New("database name must differ from database username")

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
	Sampler    SamplerConfig    `mapstructure:"sampler"`
}

type ServerConfig struct {
	Port       int           `mapstructure:"port" validate:"min=1,max=65535"`
	CORS       CORSConfig    `mapstructure:"cors"`
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"min=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql postgres sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"min=0,max=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	SSLMode         string            `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	Path            string            `mapstructure:"path"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"min=0"`
}

// IsNetworked reports whether the driver connects to a database server rather than a local file.
func (c DatabaseConfig) IsNetworked() bool {
	return c.Driver != DriverSQLite
}

type EvaluationConfig struct {
	Provider         string        `mapstructure:"provider" validate:"oneof=openai anthropic gemini openrouter"`
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	BaseURL          string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout          time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxTokens        int           `mapstructure:"max_tokens" validate:"min=1"`
	Temperature      float64       `mapstructure:"temperature" validate:"min=0,max=2"`
	MaxCritiqueRunes int           `mapstructure:"max_critique_runes" validate:"min=1"`
}

// Enabled reports whether a credential is configured for the evaluation provider.
func (c EvaluationConfig) Enabled() bool {
	return c.APIKey != ""
}

// defaultPorts is the server port of each networked driver when database.port is unset.
var defaultPorts = map[string]int{
	DriverMySQL:    3306,
	DriverPostgres: 5432,
}

// defaultModels is the model of each provider when evaluation.model is unset.
var defaultModels = map[string]string{
	"openai":     "gpt-3.5-turbo",
	"anthropic":  "claude-haiku",
	"gemini":     "gemini-flash",
	"openrouter": "openai/gpt-3.5-turbo",
}

// providerKeyEnvs is the provider-specific credential read when LLM_API_KEY is unset.
var providerKeyEnvs = map[string]string{
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"gemini":     "GEMINI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

func (c *DatabaseConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPorts[c.Driver]
	}
}

func (c *EvaluationConfig) applyDefaults() {
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.APIKey == "" {
		if name, ok := providerKeyEnvs[c.Provider]; ok {
			c.APIKey = os.Getenv(name)
		}
	}
}

type SamplerConfig struct {
	MaxAttempts uint `mapstructure:"max_attempts" validate:"min=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
	envFile    string
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/quizbot")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
		envFile:    ".env",
	}, nil
}

// WithEnvFile overrides the dotenv file read before environment variables are bound.
func (loader *ConfigLoader) WithEnvFile(path string) *ConfigLoader {
	loader.envFile = path
	return loader
}

// Load is a shortcut for NewConfigLoader(configFile) followed by Load.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	if loader.envFile != "" {
		// Existing environment variables take precedence over the file.
		if err := godotenv.Load(loader.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", loader.envFile, err)
		}
	}

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.session_ttl", 24*time.Hour)
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.database", "quizbot")
	v.SetDefault("database.username", "quizbot_user")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "quizbot.db")
	v.SetDefault("evaluation.provider", "openai")
	v.SetDefault("evaluation.timeout", 90*time.Second)
	v.SetDefault("evaluation.max_tokens", 200)
	v.SetDefault("evaluation.temperature", 0.7)
	v.SetDefault("evaluation.max_critique_runes", 1000)
	v.SetDefault("sampler.max_attempts", 3)

	bindings := []struct {
		key  string
		envs []string
	}{
		{"database.driver", []string{"DB_DRIVER"}},
		{"database.host", []string{"DB_HOST", "POSTGRES_HOST"}},
		{"database.port", []string{"DB_PORT", "POSTGRES_PORT"}},
		{"database.database", []string{"DB_NAME", "POSTGRES_DB"}},
		{"database.username", []string{"DB_USER", "POSTGRES_USER"}},
		{"database.password", []string{"DB_PASSWORD", "POSTGRES_PASSWORD"}},
		// Credentials are read from the environment only
		{"evaluation.api_key", []string{"LLM_API_KEY"}},
		{"evaluation.provider", []string{"LLM_PROVIDER"}},
		{"evaluation.model", []string{"LLM_MODEL"}},
	}
	for _, b := range bindings {
		args := append([]string{b.key}, b.envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", strings.Join(b.envs, "/"), err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	cfg.Database.applyDefaults()
	cfg.Evaluation.applyDefaults()

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	if err := cfg.Database.checkIdentity(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c DatabaseConfig) checkIdentity() error {
	if !c.IsNetworked() {
		if c.Path == "" {
			return errors.New("invalid configuration: database.path is required for the sqlite driver")
		}
		return nil
	}
	if c.Database == "" {
		return errors.New("invalid configuration: database.database is required")
	}
	if c.Database == c.Username {
		return fmt.Errorf("%w: database=%s, username=%s", ErrDatabaseUserCollision, c.Database, c.Username)
	}
	return nil
}
