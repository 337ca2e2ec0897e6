package service

import (
	"context"
	"errors"
	"strings"

	"go-gin-event-registration/internal/auth"
	"go-gin-event-registration/internal/model"
	"go-gin-event-registration/internal/repository"
	apperrors "go-gin-event-registration/pkg/app_errors"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	// SignUp 建立主辦人帳號並回傳 token
	SignUp(ctx context.Context, req model.SignUpRequest) (string, error)
	Login(ctx context.Context, req model.LoginRequest) (string, error)
	GetByID(ctx context.Context, userID int) (*model.User, error)
}

type UserServiceImpl struct {
	repo   repository.UserRepository
	tokens auth.TokenManager
	cost   int
}

func NewUserService(repo repository.UserRepository, tokens auth.TokenManager) UserService {
	return &UserServiceImpl{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost}
}

func (s *UserServiceImpl) SignUp(ctx context.Context, req model.SignUpRequest) (string, error) {
	// bcrypt 只接受 72 bytes；多位元組字元可能通過 max=72 的字數檢查
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}

	user, err := s.repo.Create(ctx, &model.User{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
	})
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(user.ID)
}

func (s *UserServiceImpl) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

func (s *UserServiceImpl) GetByID(ctx context.Context, userID int) (*model.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
