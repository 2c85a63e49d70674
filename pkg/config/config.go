package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL    = "https://api.openai.com/v1/chat/completions"
	DefaultModel     = "gpt-3.5-turbo"
	DefaultAPIKeyEnv = "OPENAI_API_KEY"
	DefaultTimeURL   = "https://worldtimeapi.org/api/timezone/Europe/Rome"
)

// Config represents the application configuration
type Config struct {
	OpenAI     OpenAIConfig     `json:"openai" yaml:"openai" toml:"openai"`
	Retry      RetryConfig      `json:"retry" yaml:"retry" toml:"retry"`
	TimeLookup TimeLookupConfig `json:"time_lookup" yaml:"time_lookup" toml:"time_lookup"`
	Session    SessionConfig    `json:"session" yaml:"session" toml:"session"`
	LogLevel   string           `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat  string           `json:"log_format" yaml:"log_format" toml:"log_format"`
	LogFile    string           `json:"log_file" yaml:"log_file" toml:"log_file"`
	Color      string           `json:"color" yaml:"color" toml:"color"` // "auto", "always", "never"
}

// OpenAIConfig holds the chat completion endpoint configuration
type OpenAIConfig struct {
	APIURL            string `json:"api_url" yaml:"api_url" toml:"api_url"`
	Model             string `json:"model" yaml:"model" toml:"model"`
	APIKeyEnv         string `json:"api_key_env" yaml:"api_key_env" toml:"api_key_env"`
	APITimeoutSeconds int    `json:"api_timeout_seconds" yaml:"api_timeout_seconds" toml:"api_timeout_seconds"`
	CABundle          string `json:"ca_bundle" yaml:"ca_bundle" toml:"ca_bundle"`
	IncludeHistory    bool   `json:"include_history" yaml:"include_history" toml:"include_history"`
}

// RetryConfig bounds the retry loop around each chat request
type RetryConfig struct {
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`
	DelayMillis int `json:"delay_ms" yaml:"delay_ms" toml:"delay_ms"`
}

// TimeLookupConfig configures the "time in Italy" command
type TimeLookupConfig struct {
	URL string `json:"url" yaml:"url" toml:"url"`
}

// SessionConfig holds the initial session state and input limits
type SessionConfig struct {
	BotName          string `json:"bot_name" yaml:"bot_name" toml:"bot_name"`
	UserName         string `json:"user_name" yaml:"user_name" toml:"user_name"`
	Decorate         bool   `json:"decorate" yaml:"decorate" toml:"decorate"`
	MaxInputLength   int    `json:"max_input_length" yaml:"max_input_length" toml:"max_input_length"`
	InputHistoryFile string `json:"input_history_file" yaml:"input_history_file" toml:"input_history_file"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		OpenAI: OpenAIConfig{
			APIURL:            DefaultAPIURL,
			Model:             DefaultModel,
			APIKeyEnv:         DefaultAPIKeyEnv,
			APITimeoutSeconds: 30,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			DelayMillis: 1000,
		},
		TimeLookup: TimeLookupConfig{
			URL: DefaultTimeURL,
		},
		Session: SessionConfig{
			BotName:        "SparkleBot",
			UserName:       "User",
			Decorate:       true,
			MaxInputLength: 1000,
		},
		LogLevel:  "info",
		LogFormat: "json",
		Color:     "auto",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Environment variables override file values.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		cfg := Default()
		if err := Save(configPath, cfg); err != nil {
			return Config{}, fmt.Errorf("failed to create default config: %w", err)
		}
		return applyEnvironmentOverrides(cfg), nil
	}

	// Decode over the defaults so keys missing from older files keep their default.
	cfg := Default()
	if err := decode(configPath, data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return applyEnvironmentOverrides(cfg), nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := encode(configPath, cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func format(configPath string) string {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

func decode(configPath string, data []byte, cfg *Config) error {
	switch format(configPath) {
	case "yaml":
		return yaml.Unmarshal(data, cfg)
	case "toml":
		return toml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func encode(configPath string, cfg Config) ([]byte, error) {
	switch format(configPath) {
	case "yaml":
		return yaml.Marshal(cfg)
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return json.MarshalIndent(cfg, "", "  ")
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config
func applyEnvironmentOverrides(cfg Config) Config {
	if logLevel := os.Getenv("SPARKLEBOT_LOG_LEVEL"); logLevel != "" {
		logLevel = strings.ToLower(logLevel)
		if isValidLogLevel(logLevel) {
			cfg.LogLevel = logLevel
		}
	}

	if model := os.Getenv("SPARKLEBOT_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}

	if apiURL := os.Getenv("SPARKLEBOT_API_URL"); apiURL != "" {
		cfg.OpenAI.APIURL = apiURL
	}

	if bundle := os.Getenv("SPARKLEBOT_CA_BUNDLE"); bundle != "" {
		cfg.OpenAI.CABundle = bundle
	}

	if timeoutStr := os.Getenv("SPARKLEBOT_API_TIMEOUT"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout > 0 {
			cfg.OpenAI.APITimeoutSeconds = timeout
		}
	}

	if attemptsStr := os.Getenv("SPARKLEBOT_MAX_ATTEMPTS"); attemptsStr != "" {
		if attempts, err := strconv.Atoi(attemptsStr); err == nil && attempts > 0 {
			cfg.Retry.MaxAttempts = attempts
		}
	}

	if delayStr := os.Getenv("SPARKLEBOT_RETRY_DELAY_MS"); delayStr != "" {
		if delay, err := strconv.Atoi(delayStr); err == nil && delay >= 0 {
			cfg.Retry.DelayMillis = delay
		}
	}

	if timeURL := os.Getenv("SPARKLEBOT_TIME_URL"); timeURL != "" {
		cfg.TimeLookup.URL = timeURL
	}

	return cfg
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if err := validateURL("openai.api_url", c.OpenAI.APIURL); err != nil {
		return err
	}

	if strings.TrimSpace(c.OpenAI.Model) == "" {
		return errors.New("openai.model is required")
	}

	if strings.TrimSpace(c.OpenAI.APIKeyEnv) == "" {
		return errors.New("openai.api_key_env is required")
	}

	if c.OpenAI.APITimeoutSeconds <= 0 {
		return fmt.Errorf("api_timeout_seconds must be positive, got: %d", c.OpenAI.APITimeoutSeconds)
	}

	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry.max_attempts must be positive, got: %d", c.Retry.MaxAttempts)
	}

	if c.Retry.DelayMillis < 0 {
		return fmt.Errorf("retry.delay_ms must not be negative, got: %d", c.Retry.DelayMillis)
	}

	if err := validateURL("time_lookup.url", c.TimeLookup.URL); err != nil {
		return err
	}

	if c.Session.MaxInputLength <= 0 {
		return fmt.Errorf("session.max_input_length must be positive, got: %d", c.Session.MaxInputLength)
	}

	if !isValidLogLevel(strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid log_format: %q", c.LogFormat)
	}

	switch strings.ToLower(c.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode: %q", c.Color)
	}

	return nil
}

func validateURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s is not a valid URL: %q", field, raw)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// RetryDelay returns the configured pause between attempts.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Retry.DelayMillis) * time.Millisecond
}

// APITimeout returns the per-request HTTP timeout.
func (c Config) APITimeout() time.Duration {
	return time.Duration(c.OpenAI.APITimeoutSeconds) * time.Second
}

// APIKey reads the credential from the environment variable named in the config.
func (c Config) APIKey() (string, error) {
	envName := c.OpenAI.APIKeyEnv
	if envName == "" {
		envName = DefaultAPIKeyEnv
	}
	key := strings.TrimSpace(os.Getenv(envName))
	if key == "" {
		return "", &MissingCredentialError{EnvVar: envName}
	}
	return key, nil
}

// MissingCredentialError is returned when the API key variable is unset.
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return e.EnvVar + " not set!"
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment. Variables already set are left untouched and missing files are
// skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat env file: %w", err)
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// GetConfigDir returns the directory holding config, logs and input history.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sparklebot"
	}
	return filepath.Join(homeDir, ".sparklebot")
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.json")
}
