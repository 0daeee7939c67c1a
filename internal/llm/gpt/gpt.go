package gpt

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/llm"
)

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if request.System != "" {
		messages = append(messages, openai.SystemMessage(request.System))
	}
	messages = append(messages, userMessage(request))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(request.MaxTokens)),
		Model:               openai.ChatModel(c.ModelID),
	}
	if request.Temperature > 0 {
		params.Temperature = openai.Float(request.Temperature)
	}

	output, err := c.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, mapError(fmt.Errorf("unable to invoke gpt model. Error: %w", err))
	}

	if len(output.Choices) == 0 {
		return nil, &llm.ErrInvalidResponse{Err: fmt.Errorf("no choices in response")}
	}

	response := output.Choices[0]
	return &llm.LLMResponse{
		Content:    response.Message.Content,
		StopReason: string(response.FinishReason),
		Model:      output.Model,
	}, nil
}

// Inline images are sent as data URLs. A URL image is appended to the text.
func userMessage(request llm.LLMRequest) openai.ChatCompletionMessageParamUnion {
	img := request.Image
	if !img.IsInline() {
		prompt := request.Prompt
		if img != nil {
			prompt = llm.WithImageURLFallback(prompt, img.URL)
		}
		return openai.UserMessage(prompt)
	}

	url := fmt.Sprintf("data:%s;base64,%s", img.MediaType, img.Data)

	return openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: url}),
		openai.TextContentPart(request.Prompt),
	})
}

func mapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return &llm.ErrRateLimit{Err: err}
	}
	return &llm.ErrProviderUnavailable{Err: err}
}
