package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AwaitReply blocks until a reply for requestID shows up on replyStream or
// ctx is done. Replies are written after their request, so the scan starts
// at the request ID.
func AwaitReply(ctx context.Context, client *redis.Client, replyStream string, requestID string) (Reply, error) {
	lastID := requestID

	for {
		if ctx.Err() != nil {
			return Reply{}, ctx.Err()
		}

		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{replyStream, lastID},
			Count:   10,
			Block:   2 * time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return Reply{}, fmt.Errorf("failed to read replies: %w", err)
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				lastID = msg.ID
				if msg.Values["request_id"] != requestID {
					continue
				}
				return DecodeReply(msg.Values)
			}
		}
	}
}
