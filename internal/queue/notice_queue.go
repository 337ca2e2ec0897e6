package queue

import (
	"context"
	"errors"
	"go-gin-event-registration/internal/model"
)

// ErrQueueFull 記憶體隊列緩衝已滿
var ErrQueueFull = errors.New("notice queue is full")

type Delivery struct {
	Data *model.RegistrationNotice
	Ack  func()
	Nack func(requeue bool)
}

type NoticeQueue interface {
	// 發送報名通知到隊列
	PublishNotice(ctx context.Context, notice *model.RegistrationNotice) error
	// 訂閱報名通知隊列
	SubscribeNotices(ctx context.Context) (<-chan Delivery, error)
}

type NoticeQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.RegistrationNotice
}

func NewNoticeQueue(bufferSize int) NoticeQueue {
	return &NoticeQueueImpl{
		ch: make(chan *model.RegistrationNotice, bufferSize),
	}
}

// PublishNotice 不阻塞呼叫端：緩衝滿時直接回傳 ErrQueueFull
func (q *NoticeQueueImpl) PublishNotice(ctx context.Context, notice *model.RegistrationNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case q.ch <- notice:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *NoticeQueueImpl) SubscribeNotices(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case notice, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: notice,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							// 不阻塞 worker：滿了就丟棄
							select {
							case q.ch <- notice:
							default:
							}
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
