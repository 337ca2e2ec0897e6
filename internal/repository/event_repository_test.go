package repository_test

import (
	"context"
	"testing"
	"time"

	"go-gin-event-registration/internal/model"
	"go-gin-event-registration/internal/repository"
	apperrors "go-gin-event-registration/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Create(t *testing.T) {
	pool := getTestDB(t)
	repo := repository.NewEventRepository(pool)
	ctx := context.Background()
	userID := createTestUser(t, pool, "Owner", "owner@test.com")

	website := "https://meetup.example.com"
	start := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	event := &model.Event{
		EventID:     uuid.New(),
		UserID:      userID,
		Title:       "Meetup",
		Description: "Monthly meetup",
		Type:        "conference",
		Location:    "Hall A",
		Website:     &website,
		DateStart:   start,
		DateEnd:     start.Add(time.Hour),
	}

	created, err := repo.Create(ctx, event)

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, event.EventID, created.EventID)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Meetup", created.Title)
	require.NotNil(t, created.Website)
	assert.Equal(t, website, *created.Website)
	assert.Nil(t, created.Image)
	assert.True(t, start.Equal(created.DateStart))
	assert.NotZero(t, created.CreatedAt)
}

func TestEventRepository_List(t *testing.T) {
	t.Run("EmptyList", func(t *testing.T) {
		repo := repository.NewEventRepository(getTestDB(t))

		events, err := repo.List(context.Background())

		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("OrderByCreatedAtDesc", func(t *testing.T) {
		pool := getTestDB(t)
		repo := repository.NewEventRepository(pool)
		userID := createTestUser(t, pool, "Owner", "owner@test.com")

		a := createTestEvent(t, pool, userID, "Event A")
		b := createTestEvent(t, pool, userID, "Event B")
		c := createTestEvent(t, pool, userID, "Event C")

		events, err := repo.List(context.Background())

		require.NoError(t, err)
		require.Len(t, events, 3)
		// 後建立的在前（created_at DESC）
		assert.Equal(t, c.EventID, events[0].EventID)
		assert.Equal(t, b.EventID, events[1].EventID)
		assert.Equal(t, a.EventID, events[2].EventID)
	})
}

func TestEventRepository_ListByUserID(t *testing.T) {
	pool := getTestDB(t)
	repo := repository.NewEventRepository(pool)
	alice := createTestUser(t, pool, "Alice", "alice@test.com")
	bob := createTestUser(t, pool, "Bob", "bob@test.com")

	createTestEvent(t, pool, alice, "Alice 1")
	createTestEvent(t, pool, alice, "Alice 2")
	createTestEvent(t, pool, bob, "Bob 1")

	events, err := repo.ListByUserID(context.Background(), alice)

	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, alice, e.UserID)
	}
}

func TestEventRepository_FindByEventID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		pool := getTestDB(t)
		repo := repository.NewEventRepository(pool)
		created := createTestEvent(t, pool, createTestUser(t, pool, "Owner", "owner@test.com"), "Find Me")

		found, err := repo.FindByEventID(context.Background(), created.EventID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Find Me", found.Title)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := repository.NewEventRepository(getTestDB(t))

		_, err := repo.FindByEventID(context.Background(), uuid.New())

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestEventRepository_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		pool := getTestDB(t)
		repo := repository.NewEventRepository(pool)
		created := createTestEvent(t, pool, createTestUser(t, pool, "Owner", "owner@test.com"), "Old")

		image := "https://img.example.com/1.png"
		start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
		updated, err := repo.Update(context.Background(), created.ID, model.UpdateEventParams{
			Title:       "New",
			Description: "New description",
			Type:        "workshop",
			Location:    "Hall B",
			Image:       &image,
			DateStart:   start,
			DateEnd:     start.Add(3 * time.Hour),
		})

		require.NoError(t, err)
		assert.Equal(t, created.EventID, updated.EventID)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, "workshop", updated.Type)
		require.NotNil(t, updated.Image)
		assert.Equal(t, image, *updated.Image)
		assert.True(t, start.Equal(updated.DateStart))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := repository.NewEventRepository(getTestDB(t))

		_, err := repo.Update(context.Background(), 99999, model.UpdateEventParams{Title: "Any"})

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	t.Run("CascadesParticipants", func(t *testing.T) {
		pool := getTestDB(t)
		repo := repository.NewEventRepository(pool)
		participants := repository.NewParticipantRepository(pool)
		ctx := context.Background()
		event := createTestEvent(t, pool, createTestUser(t, pool, "Owner", "owner@test.com"), "Doomed")
		_, _, err := participants.AddIfAbsent(ctx, newTestParticipant(event.ID, "Alice", "555-0001", "code-1"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, event.ID))

		_, err = repo.FindByEventID(ctx, event.EventID)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		_, err = participants.FindByShortID(ctx, "code-1")
		assert.ErrorIs(t, err, apperrors.ErrParticipantNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := repository.NewEventRepository(getTestDB(t))

		err := repo.Delete(context.Background(), 99999)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}
