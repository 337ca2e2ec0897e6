package model

import "time"

// ParticipantStatus is free-form; only the initial value is fixed.
type ParticipantStatus string

const ParticipantStatusPending ParticipantStatus = "pending"

type Participant struct {
	ID        int               `json:"-" db:"id"`
	EventID   int               `json:"-" db:"event_id"`
	Name      string            `json:"name" db:"name"`
	Phone     string            `json:"phone" db:"phone"`
	ShortID   string            `json:"shortId" db:"short_id"`
	Status    ParticipantStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"date" db:"created_at"`
	UpdatedAt time.Time         `json:"-" db:"updated_at"`
}

// RegistrationStatus 是以報名碼查詢時回傳的內容，不含所屬活動
type RegistrationStatus struct {
	Name    string            `json:"name"`
	Phone   string            `json:"phone"`
	ShortID string            `json:"shortId"`
	Status  ParticipantStatus `json:"status"`
}

func (p *Participant) RegistrationStatus() *RegistrationStatus {
	return &RegistrationStatus{
		Name:    p.Name,
		Phone:   p.Phone,
		ShortID: p.ShortID,
		Status:  p.Status,
	}
}

// RegisterParticipantRequest 報名請求
type RegisterParticipantRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// RegistrationStatusRequest 以報名碼查詢狀態
type RegistrationStatusRequest struct {
	ShortID string `json:"shortId" binding:"required"`
}

// UpdateParticipantStatusRequest 主辦人更新報名狀態
type UpdateParticipantStatusRequest struct {
	ShortID string `json:"shortId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}
