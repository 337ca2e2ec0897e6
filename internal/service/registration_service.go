package service

import (
	"context"
	"errors"
	"time"

	"go-gin-event-registration/internal/model"
	"go-gin-event-registration/internal/queue"
	"go-gin-event-registration/internal/repository"
	apperrors "go-gin-event-registration/pkg/app_errors"
	"go-gin-event-registration/pkg/logger"
	"go-gin-event-registration/pkg/shortid"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// 報名碼碰撞時重新產生的上限
	maxShortIDAttempts = 5
	publishTimeout     = 3 * time.Second
)

type RegistrationService interface {
	// Register 報名活動；同活動同電話已報名時回傳 ErrAlreadyRegistered 且不寫入
	Register(ctx context.Context, eventID uuid.UUID, req model.RegisterParticipantRequest) (*model.Participant, error)
	// GetStatus 以報名碼查詢，不回傳所屬活動
	GetStatus(ctx context.Context, shortID string) (*model.RegistrationStatus, error)
	UpdateStatus(ctx context.Context, eventID uuid.UUID, userID int, req model.UpdateParticipantStatusRequest) error
	ListParticipants(ctx context.Context, eventID uuid.UUID, userID int) ([]*model.Participant, error)
}

type RegistrationServiceImpl struct {
	eventRepo       repository.EventRepository
	participantRepo repository.ParticipantRepository
	noticeQueue     queue.NoticeQueue
	newShortID      shortid.Generator
	now             func() time.Time
}

func NewRegistrationService(
	eventRepo repository.EventRepository,
	participantRepo repository.ParticipantRepository,
	noticeQueue queue.NoticeQueue,
	newShortID shortid.Generator,
) RegistrationService {
	if newShortID == nil {
		newShortID = shortid.New(shortid.DefaultLength)
	}
	return &RegistrationServiceImpl{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		noticeQueue:     noticeQueue,
		newShortID:      newShortID,
		now:             time.Now,
	}
}

func (s *RegistrationServiceImpl) Register(ctx context.Context, eventID uuid.UUID, req model.RegisterParticipantRequest) (*model.Participant, error) {
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxShortIDAttempts; attempt++ {
		code, err := s.newShortID()
		if err != nil {
			return nil, err
		}

		created, added, err := s.participantRepo.AddIfAbsent(ctx, &model.Participant{
			EventID: event.ID,
			Name:    req.Name,
			Phone:   req.Phone,
			ShortID: code,
			Status:  model.ParticipantStatusPending,
		})
		if errors.Is(err, apperrors.ErrShortIDConflict) {
			logger.WithComponent("service").Warn("short id collision, reissuing",
				zap.String("event_id", eventID.String()), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}
		if !added {
			return nil, apperrors.ErrAlreadyRegistered
		}

		s.publish(ctx, &model.RegistrationNotice{
			Kind:       model.NoticeKindRegistered,
			EventID:    event.EventID,
			EventTitle: event.Title,
			ShortID:    created.ShortID,
			Name:       created.Name,
			Phone:      created.Phone,
			Status:     created.Status,
			OccurredAt: s.now().UTC(),
		})
		return created, nil
	}

	return nil, apperrors.ErrShortIDExhausted
}

func (s *RegistrationServiceImpl) GetStatus(ctx context.Context, shortID string) (*model.RegistrationStatus, error) {
	participant, err := s.participantRepo.FindByShortID(ctx, shortID)
	if err != nil {
		return nil, err
	}
	return participant.RegistrationStatus(), nil
}

func (s *RegistrationServiceImpl) UpdateStatus(ctx context.Context, eventID uuid.UUID, userID int, req model.UpdateParticipantStatusRequest) error {
	event, err := findOwnedEvent(ctx, s.eventRepo, eventID, userID)
	if err != nil {
		return err
	}

	status := model.ParticipantStatus(req.Status)
	affected, err := s.participantRepo.UpdateStatus(ctx, event.ID, req.ShortID, status)
	if err != nil {
		return err
	}
	// 找不到報名碼時仍回覆成功，只留下紀錄
	if affected == 0 {
		logger.WithComponent("service").Warn("status update matched no participant",
			zap.String("event_id", eventID.String()), zap.String("short_id", req.ShortID))
		return nil
	}

	s.publish(ctx, &model.RegistrationNotice{
		Kind:       model.NoticeKindStatusChanged,
		EventID:    event.EventID,
		EventTitle: event.Title,
		ShortID:    req.ShortID,
		Status:     status,
		OccurredAt: s.now().UTC(),
	})
	return nil
}

func (s *RegistrationServiceImpl) ListParticipants(ctx context.Context, eventID uuid.UUID, userID int) ([]*model.Participant, error) {
	event, err := findOwnedEvent(ctx, s.eventRepo, eventID, userID)
	if err != nil {
		return nil, err
	}
	return s.participantRepo.ListByEventID(ctx, event.ID)
}

// publish 發送通知失敗不影響已完成的寫入，只記錄錯誤
func (s *RegistrationServiceImpl) publish(ctx context.Context, notice *model.RegistrationNotice) {
	if s.noticeQueue == nil {
		return
	}
	// 寫入已完成，請求取消或隊列卡住都不能拖住回應
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.noticeQueue.PublishNotice(pubCtx, notice); err != nil {
		logger.WithComponent("service").Error("failed to publish notice",
			zap.String("kind", string(notice.Kind)),
			zap.String("short_id", notice.ShortID),
			zap.Error(err))
	}
}
