package calendar

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Acefayad2/CRM-Portal/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (*RepositoryImpl, context.Context, int) {
	db := test_utils.SetupTestDB(t)
	repository := NewRepository(db)
	agentId := insertTestAgent(t, db, "agent-uid", "Ace")
	return repository, context.Background(), agentId
}

func insertTestAgent(t *testing.T, db *sql.DB, uid, name string) int {
	result, err := db.Exec(`INSERT INTO agents (uid, display_name) VALUES (?, ?)`, uid, name)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func testEvent(title, date, start, end string) Event {
	return Event{
		Title:       title,
		Date:        date,
		Start:       MustTimeOfDay(start),
		End:         MustTimeOfDay(end),
		Description: "desc",
		Location:    "office",
		Color:       "bg-blue-500",
		Attendees:   []string{"Jordan"},
		Organizer:   "Ace",
		Visible:     true,
	}
}

func TestRepositoryImpl_StoreAndGetEvent(t *testing.T) {
	// Setup
	repository, ctx, agentId := setupTestRepository(t)

	// Given
	event := testEvent("Team sync", "2026-03-02", "09:00", "10:00")

	// When
	eventId, err := repository.StoreEvent(ctx, agentId, event)
	require.NoError(t, err)
	stored, err := repository.GetEvent(ctx, agentId, eventId)

	// Then
	require.NoError(t, err)
	event.ID = eventId
	assert.Equal(t, event, stored)
}

func TestRepositoryImpl_StoreEventWithoutAttendees(t *testing.T) {
	// Setup
	repository, ctx, agentId := setupTestRepository(t)
	event := testEvent("Solo work", "2026-03-02", "09:00", "10:00")
	event.Attendees = nil

	// When
	eventId, err := repository.StoreEvent(ctx, agentId, event)
	require.NoError(t, err)
	stored, err := repository.GetEvent(ctx, agentId, eventId)

	// Then: nil attendees round-trip as an empty list
	require.NoError(t, err)
	assert.Equal(t, []string{}, stored.Attendees)
}

func TestRepositoryImpl_GetEventNotFound(t *testing.T) {
	repository, ctx, agentId := setupTestRepository(t)

	_, err := repository.GetEvent(ctx, agentId, 42)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRepositoryImpl_GetEventsForDate(t *testing.T) {
	// Setup
	repository, ctx, agentId := setupTestRepository(t)

	// Given: events on two dates, stored out of order
	_, err := repository.StoreEvent(ctx, agentId, testEvent("Afternoon", "2026-03-02", "14:00", "15:00"))
	require.NoError(t, err)
	_, err = repository.StoreEvent(ctx, agentId, testEvent("Morning", "2026-03-02", "08:00", "09:00"))
	require.NoError(t, err)
	_, err = repository.StoreEvent(ctx, agentId, testEvent("Other day", "2026-03-03", "08:00", "09:00"))
	require.NoError(t, err)

	// When
	events, err := repository.GetEventsForDate(ctx, agentId, "2026-03-02")

	// Then: only that date, ordered by start time
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Morning", events[0].Title)
	assert.Equal(t, "Afternoon", events[1].Title)
}

func TestRepositoryImpl_GetEventsForDateIsolatedPerAgent(t *testing.T) {
	// Setup
	repository, ctx, agentId := setupTestRepository(t)
	otherId := insertTestAgent(t, repository.db, "other-uid", "Jordan")
	_, err := repository.StoreEvent(ctx, otherId, testEvent("Not mine", "2026-03-02", "08:00", "09:00"))
	require.NoError(t, err)

	// When
	events, err := repository.GetEventsForDate(ctx, agentId, "2026-03-02")

	// Then
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRepositoryImpl_GetEventsForRange(t *testing.T) {
	// Setup
	repository, ctx, agentId := setupTestRepository(t)
	for _, date := range []string{"2026-03-01", "2026-03-02", "2026-03-05"} {
		_, err := repository.StoreEvent(ctx, agentId, testEvent("On "+date, date, "09:00", "10:00"))
		require.NoError(t, err)
	}

	// When
	events, err := repository.GetEventsForRange(ctx, agentId, "2026-03-02", "2026-03-04")

	// Then
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2026-03-02", events[0].Date)
}

func TestRepositoryImpl_UpdateEvent(t *testing.T) {
	// Setup
	repository, ctx, agentId := setupTestRepository(t)
	event := testEvent("Before", "2026-03-02", "09:00", "10:00")
	eventId, err := repository.StoreEvent(ctx, agentId, event)
	require.NoError(t, err)

	// When
	event.ID = eventId
	event.Title = "After"
	event.Start = MustTimeOfDay("10:00")
	event.End = MustTimeOfDay("11:30")
	require.NoError(t, repository.UpdateEvent(ctx, agentId, event))

	// Then
	stored, err := repository.GetEvent(ctx, agentId, eventId)
	require.NoError(t, err)
	assert.Equal(t, event, stored)
}

func TestRepositoryImpl_UpdateEventOfOtherAgent(t *testing.T) {
	// Setup
	repository, ctx, agentId := setupTestRepository(t)
	otherId := insertTestAgent(t, repository.db, "other-uid", "Jordan")
	event := testEvent("Not mine", "2026-03-02", "09:00", "10:00")
	eventId, err := repository.StoreEvent(ctx, otherId, event)
	require.NoError(t, err)

	// When
	event.ID = eventId
	err = repository.UpdateEvent(ctx, agentId, event)

	// Then
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRepositoryImpl_DeleteEvent(t *testing.T) {
	// Setup
	repository, ctx, agentId := setupTestRepository(t)
	eventId, err := repository.StoreEvent(ctx, agentId, testEvent("Gone", "2026-03-02", "09:00", "10:00"))
	require.NoError(t, err)

	// When
	require.NoError(t, repository.DeleteEvent(ctx, agentId, eventId))

	// Then
	_, err = repository.GetEvent(ctx, agentId, eventId)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, repository.DeleteEvent(ctx, agentId, eventId), ErrEventNotFound)
}
