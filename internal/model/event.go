package model

import (
	"time"

	"github.com/google/uuid"
)

// Event 活動模型；ID 為內部主鍵，對外以 EventID 識別
type Event struct {
	ID          int       `json:"-" db:"id"`
	EventID     uuid.UUID `json:"id" db:"event_id"`
	UserID      int       `json:"user" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Type        string    `json:"type" db:"type"`
	Location    string    `json:"location" db:"location"`
	Website     *string   `json:"website,omitempty" db:"website"`
	Image       *string   `json:"image,omitempty" db:"image"`
	DateStart   time.Time `json:"dateStart" db:"date_start"`
	DateEnd     time.Time `json:"dateEnd" db:"date_end"`
	CreatedAt   time.Time `json:"date" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// IsOwnedBy 檢查活動是否屬於該使用者
func (e *Event) IsOwnedBy(userID int) bool {
	return e.UserID == userID
}

// UpdateEventParams replaces every editable field of an event.
type UpdateEventParams struct {
	Title       string
	Description string
	Type        string
	Location    string
	Website     *string
	Image       *string
	DateStart   time.Time
	DateEnd     time.Time
}
