package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/llm"
)

type claudeMessageRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Temperature      float64         `json:"temperature,omitempty"`
	System           string          `json:"system,omitempty"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type claudeMessageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Model      string `json:"model"`
}

var anthropicVersion = "bedrock-2023-05-31"

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	payload := claudeMessageRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        request.MaxTokens,
		Temperature:      request.Temperature,
		System:           request.System,
		Messages: []claudeMessage{
			{
				Role:    "user",
				Content: buildContent(request),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("Unable to serialize claude request. Error: %w", err)
	}

	output, err := c.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.ModelID,
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("Unable to invoke claude model. Error: %w", err))
	}

	var response claudeMessageResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, &llm.ErrInvalidResponse{Err: fmt.Errorf("Failed to unmarshal bedrock response. Error: %w", err)}
	}

	for _, block := range response.Content {
		if block.Type == "text" {
			model := response.Model
			if model == "" {
				model = c.ModelID
			}
			return &llm.LLMResponse{
				Content:    block.Text,
				StopReason: response.StopReason,
				Model:      model,
			}, nil
		}
	}

	return nil, &llm.ErrInvalidResponse{Err: fmt.Errorf("no text content in Bedrock response")}
}

// Bedrock only accepts base64 image sources, a URL goes into the text.
func buildContent(request llm.LLMRequest) []contentBlock {
	blocks := make([]contentBlock, 0, 2)
	prompt := request.Prompt

	if img := request.Image; img != nil {
		if img.IsInline() {
			blocks = append(blocks, contentBlock{
				Type: "image",
				Source: &imageSource{
					Type:      "base64",
					MediaType: img.MediaType,
					Data:      img.Data,
				},
			})
		} else {
			prompt = llm.WithImageURLFallback(prompt, img.URL)
		}
	}

	return append(blocks, contentBlock{Type: "text", Text: prompt})
}

func mapError(err error) error {
	var throttling *types.ThrottlingException
	if errors.As(err, &throttling) {
		return &llm.ErrRateLimit{Err: err}
	}
	return &llm.ErrProviderUnavailable{Err: err}
}
