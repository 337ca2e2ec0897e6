package mocks

import (
	"context"
	"go-gin-event-registration/internal/model"

	"github.com/stretchr/testify/mock"
)

type UserServiceMock struct {
	mock.Mock
}

func NewUserServiceMock(t mock.TestingT) *UserServiceMock {
	m := &UserServiceMock{}
	m.Test(t)
	return m
}

func (m *UserServiceMock) SignUp(ctx context.Context, req model.SignUpRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *UserServiceMock) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *UserServiceMock) GetByID(ctx context.Context, userID int) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
