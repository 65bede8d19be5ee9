package timeslot

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Acefayad2/CRM-Portal/internal/test_utils"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepositoryTest(t *testing.T) (*RepositoryImpl, context.Context) {
	db := test_utils.SetupTestDB(t)
	return NewRepository(db), context.Background()
}

func insertAgent(t *testing.T, db *sql.DB, uid, name string) int {
	result, err := db.Exec(`INSERT INTO agents (uid, display_name) VALUES (?, ?)`, uid, name)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func storedRequest(status Status, createdAt time.Time) Request {
	return Request{
		ID:            uuid.New().String(),
		RequesterUid:  "requester-uid",
		RequesterName: "Ace",
		TeammateUid:   "teammate-uid",
		TeammateName:  "Jordan",
		Date:          "2026-03-02",
		Start:         calendar.MustTimeOfDay("09:00"),
		End:           calendar.MustTimeOfDay("10:00"),
		Title:         "Prep session",
		Message:       "Quick sync",
		Status:        status,
		CreatedAt:     createdAt,
	}
}

func TestRepositoryImpl_StoreAndGetRequest(t *testing.T) {
	// Setup
	repository, ctx := setupRepositoryTest(t)

	// Given
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	request := storedRequest(StatusPending, createdAt)

	// When
	require.NoError(t, repository.StoreRequest(ctx, request))
	stored, err := repository.GetRequest(ctx, request.ID)

	// Then
	require.NoError(t, err)
	assert.Equal(t, request.ID, stored.ID)
	assert.Equal(t, request.RequesterName, stored.RequesterName)
	assert.Equal(t, request.Date, stored.Date)
	assert.Equal(t, request.Start, stored.Start)
	assert.Equal(t, request.End, stored.End)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Equal(t, createdAt.UnixMilli(), stored.CreatedAt.UnixMilli())
}

func TestRepositoryImpl_GetRequestNotFound(t *testing.T) {
	repository, ctx := setupRepositoryTest(t)

	_, err := repository.GetRequest(ctx, "missing")

	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRepositoryImpl_UpdateStatus(t *testing.T) {
	// Setup
	repository, ctx := setupRepositoryTest(t)
	request := storedRequest(StatusPending, time.Now())
	require.NoError(t, repository.StoreRequest(ctx, request))

	// When
	err := repository.UpdateStatus(ctx, request.ID, StatusAccepted)

	// Then
	require.NoError(t, err)
	stored, err := repository.GetRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, stored.Status)
}

func TestRepositoryImpl_UpdateStatusNotFound(t *testing.T) {
	repository, ctx := setupRepositoryTest(t)

	err := repository.UpdateStatus(ctx, "missing", StatusAccepted)

	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRepositoryImpl_ListReceivedFiltersByStatus(t *testing.T) {
	// Setup
	repository, ctx := setupRepositoryTest(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pending := storedRequest(StatusPending, base)
	accepted := storedRequest(StatusAccepted, base.Add(time.Minute))
	other := storedRequest(StatusPending, base.Add(2*time.Minute))
	other.TeammateUid = "someone-else"
	require.NoError(t, repository.StoreRequest(ctx, pending))
	require.NoError(t, repository.StoreRequest(ctx, accepted))
	require.NoError(t, repository.StoreRequest(ctx, other))

	// When
	all, err := repository.ListReceived(ctx, "teammate-uid", "")
	require.NoError(t, err)
	onlyPending, err := repository.ListReceived(ctx, "teammate-uid", StatusPending)
	require.NoError(t, err)

	// Then: oldest first, other recipients excluded
	require.Len(t, all, 2)
	assert.Equal(t, pending.ID, all[0].ID)
	assert.Equal(t, accepted.ID, all[1].ID)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, pending.ID, onlyPending[0].ID)
}

func TestRepositoryImpl_WithTransactionRollsBackOnError(t *testing.T) {
	// Setup
	repository, ctx := setupRepositoryTest(t)
	request := storedRequest(StatusPending, time.Now())

	// When: the transaction body fails after a store
	err := repository.WithTransaction(ctx, func(repo Repository) error {
		if err := repo.StoreRequest(ctx, request); err != nil {
			return err
		}
		return assert.AnError
	})

	// Then: nothing was persisted
	assert.ErrorIs(t, err, assert.AnError)
	_, err = repository.GetRequest(ctx, request.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRepositoryImpl_StoreDerivedEventInTransaction(t *testing.T) {
	// Setup: the derived event insert joins the same transaction as the status flip
	repository, ctx := setupRepositoryTest(t)
	request := storedRequest(StatusPending, time.Now())
	require.NoError(t, repository.StoreRequest(ctx, request))

	agentId := insertAgent(t, repository.db, "teammate-uid", "Jordan")

	// When
	var eventId int
	err := repository.WithTransaction(ctx, func(repo Repository) error {
		if err := repo.UpdateStatus(ctx, request.ID, StatusAccepted); err != nil {
			return err
		}
		id, err := repo.StoreDerivedEvent(ctx, agentId, calendar.Event{
			Title:   request.Title,
			Date:    request.Date,
			Start:   request.Start,
			End:     request.End,
			Visible: true,
		})
		eventId = id
		return err
	})

	// Then
	require.NoError(t, err)
	busy, err := repository.GetBusyEventsForDate(ctx, agentId, request.Date)
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.NotZero(t, eventId)
	assert.Equal(t, request.Start, busy[0].Start)
	assert.Equal(t, request.End, busy[0].End)
}
