package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-event-registration/internal/model"
	"go-gin-event-registration/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey          = "registrations:stream"
	ConsumerGroupName  = "notice-workers"
	ConsumerNamePrefix = "worker"

	noticeField = "notice"
	batchSize   = 10
	readBackoff = time.Second
)

// RedisStreamNoticeQueueConfig 可注入的逾時與重試設定；nil 或零值時使用預設。
type RedisStreamNoticeQueueConfig struct {
	StreamKey          string
	ClaimMinIdleTime   time.Duration // PEL 中超過此時間才被 XAUTOCLAIM 領取
	MaxRetryCount      int           // 超過此次數視為毒藥消息並丟棄
	ReadGroupBlockTime time.Duration // XReadGroup 阻塞時間
}

func (c *RedisStreamNoticeQueueConfig) withDefaults() RedisStreamNoticeQueueConfig {
	cfg := RedisStreamNoticeQueueConfig{
		StreamKey:          StreamKey,
		ClaimMinIdleTime:   5 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
	}
	if c == nil {
		return cfg
	}
	if c.StreamKey != "" {
		cfg.StreamKey = c.StreamKey
	}
	if c.ClaimMinIdleTime > 0 {
		cfg.ClaimMinIdleTime = c.ClaimMinIdleTime
	}
	if c.MaxRetryCount > 0 {
		cfg.MaxRetryCount = c.MaxRetryCount
	}
	if c.ReadGroupBlockTime > 0 {
		cfg.ReadGroupBlockTime = c.ReadGroupBlockTime
	}
	return cfg
}

type RedisStreamNoticeQueueImpl struct {
	client   *redis.Client
	group    string
	consumer string
	cfg      RedisStreamNoticeQueueConfig
	log      *zap.Logger
}

// NewRedisStreamNoticeQueue 建立 Redis Stream 版 NoticeQueue，並確保 consumer group 存在。
func NewRedisStreamNoticeQueue(ctx context.Context, client *redis.Client, consumerID string, config *RedisStreamNoticeQueueConfig) (NoticeQueue, error) {
	if consumerID == "" {
		consumerID = uuid.NewString()
	}
	q := &RedisStreamNoticeQueueImpl{
		client:   client,
		group:    ConsumerGroupName,
		consumer: ConsumerNamePrefix + ":" + consumerID,
		cfg:      config.withDefaults(),
		log:      logger.WithComponent("mq"),
	}

	err := client.XGroupCreateMkStream(ctx, q.cfg.StreamKey, q.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}
	return q, nil
}

func (q *RedisStreamNoticeQueueImpl) PublishNotice(ctx context.Context, notice *model.RegistrationNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	if err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.cfg.StreamKey,
		Values: map[string]interface{}{noticeField: string(payload)},
	}).Err(); err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

// SubscribeNotices 讀新訊息 (">") 並定期用 XAUTOCLAIM 領回逾時未 ack 的訊息；
// 兩個迴圈都結束後才關閉 channel。
func (q *RedisStreamNoticeQueueImpl) SubscribeNotices(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	claimDone := make(chan struct{})

	go func() {
		defer close(claimDone)
		q.claimLoop(ctx, out)
	}()
	go func() {
		defer close(out)
		q.readLoop(ctx, out)
		<-claimDone
	}()
	return out, nil
}

func (q *RedisStreamNoticeQueueImpl) readLoop(ctx context.Context, out chan<- Delivery) {
	for ctx.Err() == nil {
		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    q.group,
			Consumer: q.consumer,
			Streams:  []string{q.cfg.StreamKey, ">"},
			Count:    batchSize,
			Block:    q.cfg.ReadGroupBlockTime,
		}).Result()
		switch {
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			q.log.Error("XReadGroup failed", zap.Error(err))
			select {
			case <-time.After(readBackoff):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, stream := range streams {
			if !q.deliver(ctx, out, stream.Messages, false) {
				return
			}
		}
	}
}

func (q *RedisStreamNoticeQueueImpl) claimLoop(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	start := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		claimed, next, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   q.cfg.StreamKey,
			Group:    q.group,
			Consumer: q.consumer,
			MinIdle:  q.cfg.ClaimMinIdleTime,
			Start:    start,
			Count:    batchSize,
		}).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			if ctx.Err() == nil {
				q.log.Error("XAutoClaim failed", zap.Error(err))
			}
			continue
		}
		// 掃到尾端時 next 為 "0-0"，下一輪從頭開始
		start = next
		if start == "" {
			start = "0-0"
		}

		if !q.deliver(ctx, out, claimed, true) {
			return
		}
	}
}

// deliver 把訊息轉成 Delivery 送出；ctx 結束時回傳 false。
// reclaimed 為 true 時先檢查投遞次數，超過上限的毒藥消息直接 ack 丟棄。
func (q *RedisStreamNoticeQueueImpl) deliver(ctx context.Context, out chan<- Delivery, msgs []redis.XMessage, reclaimed bool) bool {
	for _, msg := range msgs {
		if reclaimed && q.exceededRetries(ctx, msg.ID) {
			q.ack(ctx, msg.ID, "poison")
			continue
		}
		notice, err := decodeNotice(msg)
		if err != nil {
			q.log.Warn("dropping malformed message", zap.String("message_id", msg.ID), zap.Error(err))
			q.ack(ctx, msg.ID, "malformed")
			continue
		}
		select {
		case out <- q.newDelivery(ctx, msg.ID, notice):
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func (q *RedisStreamNoticeQueueImpl) exceededRetries(ctx context.Context, messageID string) bool {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: q.cfg.StreamKey,
		Group:  q.group,
		Start:  messageID,
		End:    messageID,
		Count:  1,
	}).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			q.log.Warn("XPendingExt failed", zap.String("message_id", messageID), zap.Error(err))
		}
		return false
	}
	if len(pending) == 0 || int(pending[0].RetryCount) < q.cfg.MaxRetryCount {
		return false
	}
	q.log.Warn("discard poison message",
		zap.String("message_id", messageID),
		zap.Int64("deliveries", pending[0].RetryCount),
		zap.Int("max_retries", q.cfg.MaxRetryCount))
	return true
}

// ack 從 PEL 移除訊息，失敗只記錄
func (q *RedisStreamNoticeQueueImpl) ack(ctx context.Context, messageID, reason string) {
	if err := q.client.XAck(ctx, q.cfg.StreamKey, q.group, messageID).Err(); err != nil {
		q.log.Error("XAck failed",
			zap.String("message_id", messageID),
			zap.String("reason", reason),
			zap.Error(err))
	}
}

func decodeNotice(msg redis.XMessage) (*model.RegistrationNotice, error) {
	raw, ok := msg.Values[noticeField].(string)
	if !ok {
		return nil, fmt.Errorf("missing %q field", noticeField)
	}
	var notice model.RegistrationNotice
	if err := json.Unmarshal([]byte(raw), &notice); err != nil {
		return nil, fmt.Errorf("unmarshal notice: %w", err)
	}
	return &notice, nil
}

func (q *RedisStreamNoticeQueueImpl) newDelivery(ctx context.Context, messageID string, notice *model.RegistrationNotice) Delivery {
	return Delivery{
		Data: notice,
		Ack:  func() { q.ack(ctx, messageID, "processed") },
		Nack: func(requeue bool) {
			if !requeue {
				q.ack(ctx, messageID, "rejected")
				return
			}
			// 留在 PEL，ClaimMinIdleTime 後由 XAUTOCLAIM 領回重試
			q.log.Info("notice nacked, will be reclaimed",
				zap.String("message_id", messageID),
				zap.Duration("claim_min_idle", q.cfg.ClaimMinIdleTime))
		},
	}
}
