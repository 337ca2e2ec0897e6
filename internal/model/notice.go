package model

import (
	"time"

	"github.com/google/uuid"
)

type NoticeKind string

const (
	NoticeKindRegistered    NoticeKind = "registered"
	NoticeKindStatusChanged NoticeKind = "status_changed"
)

// RegistrationNotice is published after a participant is admitted or has its status changed.
type RegistrationNotice struct {
	Kind       NoticeKind        `json:"kind"`
	EventID    uuid.UUID         `json:"event_id"`
	EventTitle string            `json:"event_title"`
	ShortID    string            `json:"short_id"`
	Name       string            `json:"name,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Status     ParticipantStatus `json:"status"`
	OccurredAt time.Time         `json:"occurred_at"`
}
