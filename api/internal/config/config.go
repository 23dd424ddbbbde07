package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	DefaultLLM string `yaml:"default_llm"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model"`
	OpenAIURL    string `yaml:"openai_base_url"`

	Subjects []string `yaml:"subjects"`

	// collaborator calls per second across all requests; 0 disables the limit
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	RequestTimeout time.Duration `yaml:"request_timeout"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	TelegramToken string `yaml:"telegram_token"`
	WebhookURL    string `yaml:"webhook_url"`
}

func defaults() *Config {
	return &Config{
		Port:           "8000",
		DefaultLLM:     "gemini",
		GeminiModel:    "gemini-2.5-flash",
		OpenAIModel:    "gpt-4o-mini",
		OpenAIURL:      "https://api.openai.com/v1",
		Subjects:       []string{"math", "physics", "chemistry", "cs", "general"},
		RateLimit:      5,
		RateBurst:      5,
		RequestTimeout: 70 * time.Second,
		LogLevel:       "info",
		LogFormat:      "json",
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the YAML file named by TUTOR_CONFIG, if any, and then applies
// environment overrides on top of it.
func Load() (*Config, error) {
	cfg := defaults()
	if path := os.Getenv("TUTOR_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.DefaultLLM = getEnv("DEFAULT_LLM", c.DefaultLLM)

	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = getEnv("GEMINI_MODEL", c.GeminiModel)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIModel = getEnv("OPENAI_MODEL", c.OpenAIModel)
	c.OpenAIURL = getEnv("OPENAI_BASE_URL", c.OpenAIURL)

	if v := os.Getenv("TUTOR_SUBJECTS"); v != "" {
		c.Subjects = splitList(v)
	}
	if v := os.Getenv("LLM_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: LLM_RATE_LIMIT: %w", err)
		}
		c.RateLimit = f
	}
	if v := os.Getenv("LLM_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: LLM_RATE_BURST: %w", err)
		}
		c.RateBurst = n
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", c.TelegramToken)
	c.WebhookURL = getEnv("WEBHOOK_URL", c.WebhookURL)
	return nil
}

// Validate checks that the default engine has a key. The other engine may
// be left unconfigured.
func (c *Config) Validate() error {
	switch strings.ToLower(c.DefaultLLM) {
	case "gemini", "google":
		if c.GeminiAPIKey == "" {
			return errors.New("config: GEMINI_API_KEY is required for the default llm")
		}
	case "gpt", "openai":
		if c.OpenAIAPIKey == "" {
			return errors.New("config: OPENAI_API_KEY is required for the default llm")
		}
	default:
		return fmt.Errorf("config: unknown default llm %q", c.DefaultLLM)
	}
	if len(c.Subjects) == 0 {
		return errors.New("config: no subjects")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: request timeout must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
