package llm

import "strings"

type LLMRequest struct {
	System      string
	Prompt      string
	Image       *Image
	MaxTokens   int
	Temperature float64
}

// Image is attached to the user turn. Either Data and MediaType or URL is set.
type Image struct {
	MediaType string
	Data      string
	URL       string
}

func (i *Image) IsInline() bool {
	return i != nil && i.Data != ""
}

type LLMResponse struct {
	// Content is the first text segment of the reply
	Content    string
	StopReason string
	Model      string
}

// WithImageURLFallback appends the image URL to the prompt text for
// providers that cannot attach a remote image.
func WithImageURLFallback(prompt string, url string) string {
	if url == "" {
		return prompt
	}

	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\nImage URL: ")
	b.WriteString(url)
	return b.String()
}
