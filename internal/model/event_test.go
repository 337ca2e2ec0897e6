package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_IsOwnedBy(t *testing.T) {
	event := &Event{UserID: 7}

	assert.True(t, event.IsOwnedBy(7))
	assert.False(t, event.IsOwnedBy(8))
}

func TestEvent_JSONHidesInternalID(t *testing.T) {
	eventID := uuid.New()
	event := Event{
		ID:        42,
		EventID:   eventID,
		Title:     "Meetup",
		DateStart: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, eventID.String(), out["id"])
	assert.Equal(t, "Meetup", out["title"])
	assert.NotContains(t, out, "website")
	assert.NotContains(t, out, "participants")
}

func TestParticipant_RegistrationStatus(t *testing.T) {
	p := &Participant{ID: 1, EventID: 2, Name: "Alice", Phone: "555-0001", ShortID: "abc", Status: ParticipantStatusPending}

	status := p.RegistrationStatus()

	assert.Equal(t, &RegistrationStatus{Name: "Alice", Phone: "555-0001", ShortID: "abc", Status: "pending"}, status)
}
