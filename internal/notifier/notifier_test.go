package notifier

import (
	"context"
	"testing"

	"go-gin-event-registration/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNotifier_Notify(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))
	eventID := uuid.New()

	err := n.Notify(context.Background(), &model.RegistrationNotice{
		Kind:    model.NoticeKindRegistered,
		EventID: eventID,
		ShortID: "abc",
		Phone:   "555-0001",
		Status:  model.ParticipantStatusPending,
	})

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "registered", fields["kind"])
	assert.Equal(t, eventID.String(), fields["event_id"])
	assert.Equal(t, "abc", fields["short_id"])
}

func TestLogNotifier_CanceledContext(t *testing.T) {
	n := NewLogNotifier(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Notify(ctx, &model.RegistrationNotice{})

	assert.ErrorIs(t, err, context.Canceled)
}
