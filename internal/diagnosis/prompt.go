package diagnosis

import (
	"github.com/povarna/generative-ai-agents/fix-agent/internal/config"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
)

// BuildPrompt turns a request into the single user turn sent upstream.
func BuildPrompt(cfg config.DiagnosisConfig, req models.DiagnosisRequest) llm.LLMRequest {
	request := llm.LLMRequest{
		System:      cfg.SystemPrompt,
		Prompt:      cfg.UserPromptPrefix + req.Description,
		MaxTokens:   cfg.Model.MaxTokens,
		Temperature: cfg.Model.Temperature,
	}

	if img := req.Image(); img != nil {
		switch img.Kind {
		case models.ImageKindInline:
			request.Image = &llm.Image{MediaType: img.MediaType, Data: img.Data}
		case models.ImageKindURL:
			request.Image = &llm.Image{URL: img.URL}
		}
	}

	return request
}
