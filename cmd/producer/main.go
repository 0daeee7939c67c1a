package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/fix-agent/internal/models"
	red "github.com/povarna/generative-ai-agents/fix-agent/internal/redis"
	streamredis "github.com/povarna/generative-ai-agents/fix-agent/internal/stream/redis"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	data := flag.String("d", "", "Inline JSON DiagnosisRequest")
	stream := flag.String("stream", streamredis.DefaultRequestStream, "Request stream name")
	replyStream := flag.String("reply-stream", streamredis.DefaultReplyStream, "Reply stream name")
	wait := flag.Duration("wait", 0, "Wait up to this long for the reply (0 to publish only)")
	flag.Parse()

	if *data == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>' [-wait 90s]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(*data, *stream, *replyStream, *wait); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(data, stream, replyStream string, wait time.Duration) error {
	_ = godotenv.Load()

	var req models.DiagnosisRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return fmt.Errorf("invalid request JSON: %w", err)
	}

	ctx := context.Background()
	client, err := red.ConnectRedis(ctx, red.ConnectOptions{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		Attempts: 3,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": data},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Msg("Published successfully!")

	if wait <= 0 {
		return nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	reply, err := streamredis.AwaitReply(waitCtx, client, replyStream, id)
	if err != nil {
		return fmt.Errorf("no reply for %s: %w", id, err)
	}

	out, err := json.MarshalIndent(reply, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
