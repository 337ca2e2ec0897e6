package repository

import (
	"context"
	"errors"
	"time"

	"go-gin-event-registration/internal/model"
	apperrors "go-gin-event-registration/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	shortIDConstraint = "participants_short_id_key"
)

type ParticipantRepository interface {
	// 原子性新增：同一活動已有相同電話時不寫入，回傳 added=false
	AddIfAbsent(ctx context.Context, participant *model.Participant) (*model.Participant, bool, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.Participant, error)
	// 以報名碼做全域查詢，多筆時取最早報名者
	FindByShortID(ctx context.Context, shortID string) (*model.Participant, error)
	UpdateStatus(ctx context.Context, eventID int, shortID string, status model.ParticipantStatus) (int64, error)
}

type ParticipantRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewParticipantRepository(pool *pgxpool.Pool) ParticipantRepository {
	return &ParticipantRepositoryImpl{
		pool: pool,
	}
}

const participantColumns = `id, event_id, name, phone, short_id, status, created_at, updated_at`

func scanParticipant(row pgx.Row) (*model.Participant, error) {
	var p model.Participant
	err := row.Scan(
		&p.ID,
		&p.EventID,
		&p.Name,
		&p.Phone,
		&p.ShortID,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepositoryImpl) AddIfAbsent(ctx context.Context, participant *model.Participant) (*model.Participant, bool, error) {
	// 唯一索引 (event_id, phone) 讓「檢查重複 + 新增」成為單一原子操作
	query := `
		INSERT INTO participants (event_id, name, phone, short_id, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT participants_event_phone_key DO NOTHING
		RETURNING ` + participantColumns

	created, err := scanParticipant(r.pool.QueryRow(ctx, query,
		participant.EventID, participant.Name, participant.Phone, participant.ShortID, participant.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == shortIDConstraint:
				return nil, false, apperrors.ErrShortIDConflict
			case pgErr.Code == pgForeignKeyViolation:
				return nil, false, apperrors.ErrEventNotFound
			}
		}
		return nil, false, err
	}

	return created, true, nil
}

func (r *ParticipantRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE event_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*model.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *ParticipantRepositoryImpl) FindByShortID(ctx context.Context, shortID string) (*model.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE short_id = $1
		ORDER BY id ASC
		LIMIT 1
	`

	p, err := scanParticipant(r.pool.QueryRow(ctx, query, shortID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipantNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ParticipantRepositoryImpl) UpdateStatus(ctx context.Context, eventID int, shortID string, status model.ParticipantStatus) (int64, error) {
	query := `
		UPDATE participants
		SET status = $1, updated_at = $2
		WHERE event_id = $3 AND short_id = $4
	`

	result, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), eventID, shortID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
