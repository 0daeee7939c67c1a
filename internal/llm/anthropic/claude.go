package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/llm"
)

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	params := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(c.ModelID),
		MaxTokens: int64(request.MaxTokens),
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(buildContent(request)...),
		},
	}

	if request.System != "" {
		params.System = []anthropicsdk.TextBlockParam{
			{Text: request.System},
		}
	}

	if request.Temperature > 0 {
		params.Temperature = anthropicsdk.Float(request.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}

	content, err := firstText(msg)
	if err != nil {
		return nil, err
	}

	return &llm.LLMResponse{
		Content:    content,
		StopReason: string(msg.StopReason),
		Model:      string(msg.Model),
	}, nil
}

// buildContent puts an inline image block before the text block. A URL
// image is appended to the text instead.
func buildContent(request llm.LLMRequest) []anthropicsdk.ContentBlockParamUnion {
	img := request.Image
	if !img.IsInline() {
		prompt := request.Prompt
		if img != nil {
			prompt = llm.WithImageURLFallback(prompt, img.URL)
		}
		return []anthropicsdk.ContentBlockParamUnion{anthropicsdk.NewTextBlock(prompt)}
	}

	return []anthropicsdk.ContentBlockParamUnion{
		anthropicsdk.NewImageBlockBase64(img.MediaType, img.Data),
		anthropicsdk.NewTextBlock(request.Prompt),
	}
}

func firstText(msg *anthropicsdk.Message) (string, error) {
	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &llm.ErrInvalidResponse{
		Err: fmt.Errorf("no text content in Anthropic response"),
	}
}

func mapError(err error) error {
	var apiErr *anthropicsdk.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return &llm.ErrRateLimit{Err: err}
	}
	return &llm.ErrProviderUnavailable{Err: err}
}
