package mocks

import (
	"context"
	"go-gin-event-registration/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RegistrationServiceMock struct {
	mock.Mock
}

func NewRegistrationServiceMock(t mock.TestingT) *RegistrationServiceMock {
	m := &RegistrationServiceMock{}
	m.Test(t)
	return m
}

func (m *RegistrationServiceMock) Register(ctx context.Context, eventID uuid.UUID, req model.RegisterParticipantRequest) (*model.Participant, error) {
	args := m.Called(ctx, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *RegistrationServiceMock) GetStatus(ctx context.Context, shortID string) (*model.RegistrationStatus, error) {
	args := m.Called(ctx, shortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistrationStatus), args.Error(1)
}

func (m *RegistrationServiceMock) UpdateStatus(ctx context.Context, eventID uuid.UUID, userID int, req model.UpdateParticipantStatusRequest) error {
	args := m.Called(ctx, eventID, userID, req)
	return args.Error(0)
}

func (m *RegistrationServiceMock) ListParticipants(ctx context.Context, eventID uuid.UUID, userID int) ([]*model.Participant, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participant), args.Error(1)
}
