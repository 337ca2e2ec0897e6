package service

import (
	"context"

	"go-gin-event-registration/internal/model"
	"go-gin-event-registration/internal/repository"
	apperrors "go-gin-event-registration/pkg/app_errors"

	"github.com/google/uuid"
)

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	// ListByOwner 回傳該使用者建立的所有活動
	ListByOwner(ctx context.Context, userID int) ([]*model.Event, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	UpdateByEventID(ctx context.Context, eventID uuid.UUID, userID int, params model.UpdateEventParams) (*model.Event, error)
	DeleteByEventID(ctx context.Context, eventID uuid.UUID, userID int) error
}

type EventServiceImpl struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &EventServiceImpl{repo: repo}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventServiceImpl) ListByOwner(ctx context.Context, userID int) ([]*model.Event, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *EventServiceImpl) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	return s.repo.FindByEventID(ctx, eventID)
}

func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.UserID == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) UpdateByEventID(ctx context.Context, eventID uuid.UUID, userID int, params model.UpdateEventParams) (*model.Event, error) {
	event, err := findOwnedEvent(ctx, s.repo, eventID, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, event.ID, params)
}

func (s *EventServiceImpl) DeleteByEventID(ctx context.Context, eventID uuid.UUID, userID int) error {
	event, err := findOwnedEvent(ctx, s.repo, eventID, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, event.ID)
}

// findOwnedEvent 取得活動並確認呼叫者為主辦人
func findOwnedEvent(ctx context.Context, repo repository.EventRepository, eventID uuid.UUID, userID int) (*model.Event, error) {
	event, err := repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOwnedBy(userID) {
		return nil, apperrors.ErrForbidden
	}
	return event, nil
}
