package anthropic

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultModelID = "claude-sonnet-4-5-20250929"

type Client struct {
	client  *anthropicsdk.Client
	ModelID string
}

// NewClient builds a client that makes exactly one attempt per call.
func NewClient(apiKey string, modelID string, opts ...option.RequestOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if modelID == "" {
		modelID = DefaultModelID
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	client := anthropicsdk.NewClient(opts...)

	return &Client{
		client:  &client,
		ModelID: modelID,
	}, nil
}
