package redis

import (
	"context"
	"testing"
	"time"
)

func TestPingBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
	}

	for _, tt := range tests {
		if got := pingBackoff(tt.attempt); got != tt.want {
			t.Errorf("attempt %d: expected %s, got %s", tt.attempt, tt.want, got)
		}
	}
}

func TestConnectRedis_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nothing listens on port 1, and the cancelled context ends the wait between attempts.
	_, err := ConnectRedis(ctx, ConnectOptions{Addr: "127.0.0.1:1", Attempts: 3})
	if err == nil {
		t.Fatal("expected error")
	}
}
