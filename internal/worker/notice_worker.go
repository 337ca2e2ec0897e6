package worker

import (
	"context"
	"go-gin-event-registration/internal/notifier"
	"go-gin-event-registration/internal/queue"
	"go-gin-event-registration/pkg/logger"

	"go.uber.org/zap"
)

type NoticeWorker interface {
	// 訂閱報名通知隊列並交給 notifier
	Start(ctx context.Context) error
}

type NoticeWorkerImpl struct {
	notifier notifier.Notifier
	queue    queue.NoticeQueue
}

func NewNoticeWorker(notifier notifier.Notifier, queue queue.NoticeQueue) NoticeWorker {
	return &NoticeWorkerImpl{
		notifier: notifier,
		queue:    queue,
	}
}

func (w *NoticeWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeNotices(ctx)
	if err != nil {
		return err
	}

	go func() {
		log := logger.WithComponent("worker")
		for msg := range msgs {
			if err := w.notifier.Notify(ctx, msg.Data); err != nil {
				log.Warn("notify failed, requeue", zap.String("short_id", msg.Data.ShortID), zap.Error(err))
				msg.Nack(true)
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}
