package queue_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"go-gin-event-registration/internal/model"
	"go-gin-event-registration/internal/queue"
	"go-gin-event-registration/internal/testutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRdb *redis.Client

func TestMain(m *testing.M) {
	rdb, cleanup, err := testutil.SetupRedisOnly()
	if err != nil {
		log.Printf("Stream tests will be skipped: %v", err)
	} else {
		testRdb = rdb
	}

	code := m.Run()

	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}

// newStreamQueue 每個測試使用獨立的 stream key，測試結束後刪除
func newStreamQueue(t *testing.T, ctx context.Context, claimIdle time.Duration, maxRetry int) (queue.NoticeQueue, string) {
	t.Helper()
	if testRdb == nil {
		t.Skip("test redis is not available")
	}
	key := "test:registrations:" + uuid.NewString()
	t.Cleanup(func() { testRdb.Del(context.Background(), key) })

	q, err := queue.NewRedisStreamNoticeQueue(ctx, testRdb, "test", &queue.RedisStreamNoticeQueueConfig{
		StreamKey:          key,
		ClaimMinIdleTime:   claimIdle,
		MaxRetryCount:      maxRetry,
		ReadGroupBlockTime: 100 * time.Millisecond,
	})
	require.NoError(t, err)
	return q, key
}

func TestRedisStreamNoticeQueue_PublishAndAck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q, key := newStreamQueue(t, ctx, time.Second, 3)

	eventID := uuid.New()
	require.NoError(t, q.PublishNotice(ctx, &model.RegistrationNotice{
		Kind:    model.NoticeKindRegistered,
		EventID: eventID,
		ShortID: "abc123",
		Status:  model.ParticipantStatusPending,
	}))

	deliveries, err := q.SubscribeNotices(ctx)
	require.NoError(t, err)

	d := receive(t, deliveries)
	assert.Equal(t, eventID, d.Data.EventID)
	assert.Equal(t, "abc123", d.Data.ShortID)
	d.Ack()

	pending, err := testRdb.XPending(ctx, key, queue.ConsumerGroupName).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 0, pending.Count)
}

func TestRedisStreamNoticeQueue_NackIsReclaimed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q, _ := newStreamQueue(t, ctx, 200*time.Millisecond, 5)

	require.NoError(t, q.PublishNotice(ctx, &model.RegistrationNotice{ShortID: "retry"}))
	deliveries, err := q.SubscribeNotices(ctx)
	require.NoError(t, err)

	first := receive(t, deliveries)
	first.Nack(true)

	second := receive(t, deliveries)
	assert.Equal(t, "retry", second.Data.ShortID)
	second.Ack()
}

func TestRedisStreamNoticeQueue_ConsumerGroupIdempotent(t *testing.T) {
	ctx := context.Background()
	_, key := newStreamQueue(t, ctx, time.Second, 3)

	_, err := queue.NewRedisStreamNoticeQueue(ctx, testRdb, "again", &queue.RedisStreamNoticeQueueConfig{StreamKey: key})

	assert.NoError(t, err)
}

func TestRedisStreamNoticeQueue_MalformedMessageIsAcked(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q, key := newStreamQueue(t, ctx, time.Second, 3)

	require.NoError(t, testRdb.XAdd(ctx, &redis.XAddArgs{
		Stream: key,
		Values: map[string]interface{}{"unexpected": "value"},
	}).Err())
	require.NoError(t, q.PublishNotice(ctx, &model.RegistrationNotice{ShortID: "valid"}))

	deliveries, err := q.SubscribeNotices(ctx)
	require.NoError(t, err)

	// 格式錯誤的訊息被略過，只收到正常的那則
	d := receive(t, deliveries)
	assert.Equal(t, "valid", d.Data.ShortID)
	d.Ack()

	pending, err := testRdb.XPending(ctx, key, queue.ConsumerGroupName).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 0, pending.Count)
}

func TestRedisStreamNoticeQueue_PoisonMessageIsDiscarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q, key := newStreamQueue(t, ctx, 100*time.Millisecond, 2)

	require.NoError(t, q.PublishNotice(ctx, &model.RegistrationNotice{ShortID: "poison"}))
	deliveries, err := q.SubscribeNotices(ctx)
	require.NoError(t, err)

	first := receive(t, deliveries)
	first.Nack(true)
	pending, err := testRdb.XPending(ctx, key, queue.ConsumerGroupName).Result()
	require.NoError(t, err)
	require.EqualValues(t, 1, pending.Count)

	// 之後每次都 nack，直到超過重試上限被丟棄
	go func() {
		for d := range deliveries {
			d.Nack(true)
		}
	}()

	assert.Eventually(t, func() bool {
		pending, err := testRdb.XPending(ctx, key, queue.ConsumerGroupName).Result()
		return err == nil && pending.Count == 0
	}, 3*time.Second, 50*time.Millisecond)
}
