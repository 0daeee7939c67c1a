package stream

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewStreamConsumer_ConfigErrors(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name      string
		cfg       *StreamConfig
		expectErr string
	}{
		{"missing redis config", &StreamConfig{}, "redis config required"},
		{"unknown provider", &StreamConfig{Provider: "kafka"}, "unsupported stream provider: kafka"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStreamConsumer(context.Background(), tt.cfg, nil, &logger)
			if err == nil || !strings.Contains(err.Error(), tt.expectErr) {
				t.Errorf("expected error containing %q, got %v", tt.expectErr, err)
			}
		})
	}
}
