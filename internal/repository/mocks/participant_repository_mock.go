package mocks

import (
	"context"
	"go-gin-event-registration/internal/model"

	"github.com/stretchr/testify/mock"
)

type ParticipantRepositoryMock struct {
	mock.Mock
}

func NewParticipantRepositoryMock(t mock.TestingT) *ParticipantRepositoryMock {
	m := &ParticipantRepositoryMock{}
	m.Test(t)
	return m
}

func (m *ParticipantRepositoryMock) AddIfAbsent(ctx context.Context, participant *model.Participant) (*model.Participant, bool, error) {
	args := m.Called(ctx, participant)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Participant), args.Bool(1), args.Error(2)
}

func (m *ParticipantRepositoryMock) ListByEventID(ctx context.Context, eventID int) ([]*model.Participant, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participant), args.Error(1)
}

func (m *ParticipantRepositoryMock) FindByShortID(ctx context.Context, shortID string) (*model.Participant, error) {
	args := m.Called(ctx, shortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *ParticipantRepositoryMock) UpdateStatus(ctx context.Context, eventID int, shortID string, status model.ParticipantStatus) (int64, error) {
	args := m.Called(ctx, eventID, shortID, status)
	return args.Get(0).(int64), args.Error(1)
}
