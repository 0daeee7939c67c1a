package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Diagnoser interface {
	Diagnose(ctx context.Context, req models.DiagnosisRequest) (*models.DiagnosisResult, error)
}

// StreamClient is the subset of *redis.Client the consumer uses.
type StreamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

type Consumer struct {
	client       StreamClient
	cfg          RedisStreamConfig
	diagnoser    Diagnoser
	logger       *zerolog.Logger
	blockTimeout time.Duration
}

func NewConsumer(client StreamClient, cfg *RedisStreamConfig, svc Diagnoser, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		cfg:          *cfg,
		diagnoser:    svc,
		logger:       logger,
		blockTimeout: 2 * time.Second,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.RequestStream, c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.cfg.RequestStream).
		Str("reply_stream", c.cfg.ReplyStream).
		Str("group", c.cfg.Group).
		Str("consumer", c.cfg.ConsumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.ConsumerName,
			Streams:  []string{c.cfg.RequestStream, ">"},
			Count:    1,
			Block:    c.blockTimeout,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	req, err := decodeRequest(msg.Values)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.reply(ctx, badRequestReply(msg.ID, err))
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	result, err := c.diagnoser.Diagnose(ctx, req)
	reply := NewReply(msg.ID, result, err)

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("id", msg.ID).
			Int("status", reply.Status).
			Msg("Diagnosis failed")
	} else {
		c.logger.Info().
			Str("id", msg.ID).
			Str("title", result.Title).
			Str("category", string(result.Category)).
			Msg("Diagnosis complete")
	}

	c.reply(ctx, reply)
	c.ack(ctx, msg.ID)
}

func (c *Consumer) reply(ctx context.Context, reply Reply) {
	values, err := reply.Values()
	if err != nil {
		c.logger.Error().Err(err).Str("id", reply.RequestID).Msg("Failed to encode reply")
		return
	}

	err = c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.ReplyStream,
		MaxLen: c.cfg.ReplyMaxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		c.logger.Error().Err(err).Str("id", reply.RequestID).Msg("Failed to publish reply")
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.cfg.RequestStream, c.cfg.Group, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
