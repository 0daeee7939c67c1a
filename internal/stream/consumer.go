package stream

import "context"

// StreamConsumer reads diagnosis requests from a broker and publishes replies.
type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}
