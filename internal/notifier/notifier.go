package notifier

import (
	"context"
	"go-gin-event-registration/internal/model"
	"go-gin-event-registration/pkg/logger"

	"go.uber.org/zap"
)

// Notifier delivers a registration notice to the participant or organizer.
type Notifier interface {
	Notify(ctx context.Context, notice *model.RegistrationNotice) error
}

// LogNotifier 只寫結構化日誌，用於尚未接上簡訊服務的環境
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = logger.WithComponent("notifier")
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, notice *model.RegistrationNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.log.Info("registration notice",
		zap.String("kind", string(notice.Kind)),
		zap.String("event_id", notice.EventID.String()),
		zap.String("event_title", notice.EventTitle),
		zap.String("short_id", notice.ShortID),
		zap.String("phone", notice.Phone),
		zap.String("status", string(notice.Status)),
		zap.Time("occurred_at", notice.OccurredAt),
	)
	return nil
}
