package diagnosis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/povarna/generative-ai-agents/fix-agent/internal/config"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
	"github.com/rs/zerolog"
)

// Service runs one diagnosis per call. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	llmClient llm.LLMClient
	parser    *Parser
	cfg       config.DiagnosisConfig
	timeout   time.Duration
	configErr error
	logger    *zerolog.Logger
}

func NewService(
	llmClient llm.LLMClient,
	cfg config.DiagnosisConfig,
	timeout time.Duration,
	logger *zerolog.Logger,
) (*Service, error) {
	if llmClient == nil {
		return nil, fmt.Errorf("llm client is required")
	}

	parser, err := NewParser(cfg.ExcerptLength, cfg.DefaultCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to build diagnosis parser: %w", err)
	}

	return &Service{
		llmClient: llmClient,
		parser:    parser,
		cfg:       cfg,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// NewUnconfiguredService returns a Service that answers every call with
// configErr. The process keeps serving health checks.
func NewUnconfiguredService(configErr *ConfigurationError, logger *zerolog.Logger) *Service {
	if configErr == nil {
		configErr = &ConfigurationError{Setting: "LLM provider"}
	}
	return &Service{
		configErr: configErr,
		logger:    logger,
	}
}

// CheckConfigured returns the startup configuration error, if any.
func (s *Service) CheckConfigured() error {
	return s.configErr
}

func (s *Service) Diagnose(ctx context.Context, req models.DiagnosisRequest) (*models.DiagnosisResult, error) {
	if s.configErr != nil {
		return nil, s.configErr
	}

	if req.HasConflictingImages() {
		s.logger.Warn().Msg("request has both inline image and image_url, using inline image")
	}

	request := BuildPrompt(s.cfg, req)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	now := time.Now()
	resp, err := s.llmClient.InvokeModel(ctx, request)
	if err != nil {
		classified := s.classify(err)
		s.logger.Error().
			Err(err).
			Dur("duration", time.Since(now)).
			Msg("LLM call failed")
		return nil, classified
	}

	result, err := s.parser.Parse(resp.Content)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("stop_reason", resp.StopReason).
			Int("content_length", len(resp.Content)).
			Msg("failed to parse LLM response")
		return nil, err
	}

	s.checkVocabulary(result)

	s.logger.Info().
		Str("title", result.Title).
		Str("difficulty", string(result.Difficulty)).
		Str("category", string(result.Category)).
		Str("model", resp.Model).
		Dur("duration", time.Since(now)).
		Msg("diagnosis completed")

	return result, nil
}

func (s *Service) classify(err error) error {
	var invalid *llm.ErrInvalidResponse
	var rateLimit *llm.ErrRateLimit
	var unavailable *llm.ErrProviderUnavailable

	switch {
	case errors.As(err, &invalid):
		return &UpstreamFormatError{Kind: FormatKindEmpty, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &UpstreamServiceError{Err: fmt.Errorf("request timed out after %s: %w", s.timeout, err)}
	case errors.As(err, &rateLimit), errors.As(err, &unavailable), errors.Is(err, context.Canceled):
		return &UpstreamServiceError{Err: err}
	default:
		return &InternalError{Err: err}
	}
}

// Values outside the vocabularies are kept; the model is only asked to use them.
func (s *Service) checkVocabulary(result *models.DiagnosisResult) {
	if len(s.cfg.Difficulties) > 0 && !slices.Contains(s.cfg.Difficulties, string(result.Difficulty)) {
		s.logger.Warn().
			Str("difficulty", string(result.Difficulty)).
			Msg("difficulty outside known vocabulary")
	}
	if len(s.cfg.Categories) > 0 && !slices.Contains(s.cfg.Categories, string(result.Category)) {
		s.logger.Warn().
			Str("category", string(result.Category)).
			Msg("category outside known vocabulary")
	}
}
