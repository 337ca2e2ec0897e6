package mocks

import (
	"context"
	"go-gin-event-registration/internal/model"
	"go-gin-event-registration/internal/queue"

	"github.com/stretchr/testify/mock"
)

type NoticeQueueMock struct {
	mock.Mock
}

func NewNoticeQueueMock(t mock.TestingT) *NoticeQueueMock {
	m := &NoticeQueueMock{}
	m.Test(t)
	return m
}

func (m *NoticeQueueMock) PublishNotice(ctx context.Context, notice *model.RegistrationNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *NoticeQueueMock) SubscribeNotices(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
