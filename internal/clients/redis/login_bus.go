package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/utavu/auth-backend/internal/platform/envutil"
	"github.com/utavu/auth-backend/internal/platform/logger"
)

// LoginEvent mirrors the envelope downstream consumers already expect.
type LoginEvent struct {
	EventType   string         `json:"eventType"`
	Subject     string         `json:"subject"`
	DataVersion string         `json:"dataVersion"`
	Data        LoginEventData `json:"data"`
}

type LoginEventData struct {
	Email string `json:"Email"`
}

type LoginEventBus interface {
	Publish(ctx context.Context, ev LoginEvent) error
	Close() error
}

type loginEventBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewLoginEventBus(log *logger.Logger) (LoginEventBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := envutil.String("REDIS_ADDR", "")
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	channel := envutil.String("REDIS_LOGIN_CHANNEL", "user-login")

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &loginEventBus{
		log:     log.With("service", "RedisLoginEventBus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *loginEventBus) Publish(ctx context.Context, ev LoginEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis login event bus not initialized")
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *loginEventBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
