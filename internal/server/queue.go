package server

import (
	"context"
	"fmt"

	"go-gin-event-registration/config"
	"go-gin-event-registration/internal/queue"

	"github.com/redis/go-redis/v9"
)

// NewNoticeQueue 依 QUEUE_DRIVER 選擇通知隊列；redis 版需要 rdb
func NewNoticeQueue(ctx context.Context, cfg *config.QueueConfig, rdb *redis.Client) (queue.NoticeQueue, error) {
	switch cfg.Driver {
	case "memory":
		return queue.NewNoticeQueue(cfg.BufferSize), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis queue driver requires a redis client")
		}
		return queue.NewRedisStreamNoticeQueue(ctx, rdb, cfg.ConsumerID, nil)
	default:
		return nil, fmt.Errorf("unknown queue driver %q", cfg.Driver)
	}
}
