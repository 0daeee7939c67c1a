package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/povarna/generative-ai-agents/fix-agent/internal/config"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/diagnosis"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/llm/anthropic"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/llm/gpt"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/stream"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/stream/redis"
	"github.com/rs/zerolog"
)

type Config struct {
	Provider         string
	AnthropicKey     string
	AnthropicModelID string
	AWSRegion        string
	ClaudeModelID    string
	OpenAIKey        string
	OpenAIModelID    string
	Port             string
	Timeout          time.Duration
	LogLevel         string
	RedisAddr        string
	RedisPassword    string
	RequestStream    string
	ReplyStream      string
	ConsumerName     string
}

type Dependencies struct {
	Service *diagnosis.Service
	Logger  *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		Provider:         getEnv("LLM_PROVIDER", "anthropic"),
		AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModelID: getEnv("ANTHROPIC_MODEL_ID", anthropic.DefaultModelID),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:    getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIModelID:    getEnv("OPENAI_MODEL_ID", gpt.DefaultModelID),
		Port:             getEnv("FIX_AGENT_API_PORT", "8000"),
		Timeout:          getEnvDuration("DIAGNOSIS_TIMEOUT", 60*time.Second),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RequestStream:    getEnv("DIAGNOSE_REQUEST_STREAM", redis.DefaultRequestStream),
		ReplyStream:      getEnv("DIAGNOSE_REPLY_STREAM", redis.DefaultReplyStream),
		ConsumerName:     getEnv("HOSTNAME", hostname()),
	}
}

// Wire builds the diagnosis service. A missing provider credential does not
// fail wiring: the service is built unconfigured and reports it per request.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	diagnosisConfig, err := config.LoadDiagnosisConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load diagnosis config: %w", err)
	}

	if setting := missingCredential(cfg); setting != "" {
		configErr := &diagnosis.ConfigurationError{Setting: setting}
		logger.Error().
			Err(configErr).
			Str("provider", cfg.Provider).
			Msg("LLM provider is not configured, diagnose requests will fail")

		return &Dependencies{
			Service: diagnosis.NewUnconfiguredService(configErr, logger),
			Logger:  logger,
		}, nil
	}

	llmClient, err := createLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	svc, err := diagnosis.NewService(llmClient, diagnosisConfig.Diagnosis, cfg.Timeout, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("provider", cfg.Provider).
		Dur("timeout", cfg.Timeout).
		Msg("Diagnosis service ready")

	return &Dependencies{
		Service: svc,
		Logger:  logger,
	}, nil
}

// StreamConfig returns the worker settings for the Redis stream consumer.
func (c *Config) StreamConfig() *stream.StreamConfig {
	return &stream.StreamConfig{
		Provider: "redis",
		RedisConfig: redis.NewRedisStreamConfig(
			c.RedisAddr,
			c.RedisPassword,
			c.RequestStream,
			c.ReplyStream,
			c.ConsumerName,
		),
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	// bare numbers are seconds
	if seconds, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return time.Duration(seconds * float64(time.Second))
	}

	return defaultValue
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	return name
}

func missingCredential(cfg *Config) string {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return "ANTHROPIC_API_KEY"
		}
	case "bedrock":
		if cfg.ClaudeModelID == "" {
			return "CLAUDE_MODEL_ID"
		}
	case "openai":
		if cfg.OpenAIKey == "" {
			return "OPENAI_API_KEY"
		}
	}
	return ""
}

func createLLMClient(ctx context.Context, cfg *Config) (llm.LLMClient, error) {
	switch cfg.Provider {
	case "anthropic":
		return anthropic.NewClient(cfg.AnthropicKey, cfg.AnthropicModelID)
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}
