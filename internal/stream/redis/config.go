package redis

const (
	DefaultRequestStream = "diagnose-requests"
	DefaultReplyStream   = "diagnose-replies"
	DefaultGroup         = "fix-agent"
	DefaultReplyMaxLen   = 10000
)

type RedisStreamConfig struct {
	RedisAddr     string
	RedisPassword string
	RequestStream string
	ReplyStream   string
	Group         string
	ConsumerName  string
	// ReplyMaxLen caps the reply stream, trimmed approximately
	ReplyMaxLen int64
}

func NewRedisStreamConfig(redisAddr string, redisPassword string, requestStream string, replyStream string, consumerName string) *RedisStreamConfig {
	cfg := &RedisStreamConfig{
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		RequestStream: requestStream,
		ReplyStream:   replyStream,
		Group:         DefaultGroup,
		ConsumerName:  consumerName,
		ReplyMaxLen:   DefaultReplyMaxLen,
	}
	if cfg.RequestStream == "" {
		cfg.RequestStream = DefaultRequestStream
	}
	if cfg.ReplyStream == "" {
		cfg.ReplyStream = DefaultReplyStream
	}
	if cfg.ConsumerName == "" {
		cfg.ConsumerName = "fix-agent-worker"
	}
	return cfg
}
