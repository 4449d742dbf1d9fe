package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Port            int     `yaml:"port"`
	LogLevel        string  `yaml:"log_level"`
	LLMProvider     string  `yaml:"llm_provider"`
	OpenAIAPIKey    string  `yaml:"openai_api_key"`
	OpenAIBaseURL   string  `yaml:"openai_base_url"`
	Model           string  `yaml:"model"`
	OCRModel        string  `yaml:"ocr_model"`
	AnthropicAPIKey string  `yaml:"anthropic_api_key"`
	AnthropicModel  string  `yaml:"anthropic_model"`
	DatabaseURL     string  `yaml:"database_url"`
	HistoryFile     string  `yaml:"history_file"`
	NatsURL         string  `yaml:"nats_url"`
	NatsToken       string  `yaml:"nats_token"`
	SlackBotToken   string  `yaml:"slack_bot_token"`
	SlackChannel    string  `yaml:"slack_channel"`
	APIToken        string  `yaml:"api_token"`
	ReportFont      string  `yaml:"report_font"`
	StageRateLimit  float64 `yaml:"stage_rate_limit"`
	ParallelStages  bool    `yaml:"parallel_stages"`
}

func Default() Config {
	return Config{
		Port:           8760,
		LogLevel:       "info",
		LLMProvider:    ProviderOpenAI,
		Model:          "gpt-4",
		OCRModel:       "gpt-4o",
		AnthropicModel: "claude-sonnet-4-20250514",
		HistoryFile:    "history.json",
	}
}

// Load layers defaults, the YAML file named by LETTERBRICK_CONFIG, a .env
// file in the working directory and the process environment, later layers
// winning. Variables already set in the environment are not replaced by .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("LETTERBRICK_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Port = envInt("LETTERBRICK_PORT", cfg.Port)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.LLMProvider = envStr("LLM_PROVIDER", cfg.LLMProvider)
	cfg.OpenAIAPIKey = envStr("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.OpenAIBaseURL = envStr("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.Model = envStr("LETTERBRICK_MODEL", cfg.Model)
	cfg.OCRModel = envStr("LETTERBRICK_OCR_MODEL", cfg.OCRModel)
	cfg.AnthropicAPIKey = envStr("ANTHROPIC_API_KEY", cfg.AnthropicAPIKey)
	cfg.AnthropicModel = envStr("ANTHROPIC_MODEL", cfg.AnthropicModel)
	cfg.DatabaseURL = envStr("DATABASE_URL", cfg.DatabaseURL)
	cfg.HistoryFile = envStr("HISTORY_FILE", cfg.HistoryFile)
	cfg.NatsURL = envStr("NATS_URL", cfg.NatsURL)
	cfg.NatsToken = envStr("NATS_TOKEN", cfg.NatsToken)
	cfg.SlackBotToken = envStr("SLACK_BOT_TOKEN", cfg.SlackBotToken)
	cfg.SlackChannel = envStr("SLACK_CHANNEL", cfg.SlackChannel)
	cfg.APIToken = envStr("LETTERBRICK_API_TOKEN", cfg.APIToken)
	cfg.ReportFont = envStr("REPORT_FONT", cfg.ReportFont)
	cfg.StageRateLimit = envFloat("STAGE_RATE_LIMIT", cfg.StageRateLimit)
	cfg.ParallelStages = envBool("PARALLEL_STAGES", cfg.ParallelStages)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at start-up.
func (c Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLMProvider)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.StageRateLimit < 0 {
		return fmt.Errorf("stage rate limit must not be negative")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
