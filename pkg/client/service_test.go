package client

import (
	"context"
	"testing"
	"time"

	"github.com/Acefayad2/CRM-Portal/internal/test_utils"
	"github.com/Acefayad2/CRM-Portal/internal/utils"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClientServiceTest(t *testing.T) (*ServiceImpl, *utils.MockClock, context.Context) {
	db := test_utils.SetupTestDB(t)
	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := NewService(NewRepository(db), clock)
	ctx := agent.WithAgent(context.Background(), agent.Agent{Id: 1, Uid: "agent-uid", DisplayName: "Ace"})
	return service, clock, ctx
}

func TestServiceImpl_CreateClientDefaults(t *testing.T) {
	// Setup
	service, clock, ctx := setupClientServiceTest(t)

	// When
	created, err := service.CreateClient(ctx, Client{FirstName: "Sam", LastName: "Rivera"})

	// Then: new clients start at the top of the pipeline, assigned to the caller
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, StatusNewLead, created.Status)
	assert.Equal(t, StageProspect, created.Stage)
	assert.Equal(t, "Ace", created.AssignedAgent)
	assert.Equal(t, clock.FixedNow, created.CreatedAt)
}

func TestServiceImpl_CreateClientValidation(t *testing.T) {
	service, _, ctx := setupClientServiceTest(t)

	testCases := []struct {
		name   string
		client Client
	}{
		{"Missing first name", Client{LastName: "Rivera"}},
		{"Missing last name", Client{FirstName: "Sam"}},
		{"Unknown status", Client{FirstName: "Sam", LastName: "Rivera", Status: "Ghosted"}},
		{"Unknown stage", Client{FirstName: "Sam", LastName: "Rivera", Stage: "Limbo"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateClient(ctx, tc.client)

			var validationErr *calendar.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestServiceImpl_ListClientsFilters(t *testing.T) {
	// Setup
	service, _, ctx := setupClientServiceTest(t)
	_, err := service.CreateClient(ctx, Client{FirstName: "Sam", LastName: "Rivera", Status: StatusWorking})
	require.NoError(t, err)
	_, err = service.CreateClient(ctx, Client{FirstName: "Lee", LastName: "Chen", Status: StatusNewLead, Stage: StageQualified})
	require.NoError(t, err)

	// When / Then
	all, err := service.ListClients(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	working, err := service.ListClients(ctx, StatusWorking, "")
	require.NoError(t, err)
	require.Len(t, working, 1)
	assert.Equal(t, "Rivera", working[0].LastName)

	qualified, err := service.ListClients(ctx, "", StageQualified)
	require.NoError(t, err)
	require.Len(t, qualified, 1)
	assert.Equal(t, "Chen", qualified[0].LastName)

	_, err = service.ListClients(ctx, "Ghosted", "")
	var validationErr *calendar.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestServiceImpl_MoveToStage(t *testing.T) {
	// Setup
	service, _, ctx := setupClientServiceTest(t)
	created, err := service.CreateClient(ctx, Client{FirstName: "Sam", LastName: "Rivera"})
	require.NoError(t, err)

	// When
	moved, err := service.MoveToStage(ctx, created.ID, StageProposal)

	// Then
	require.NoError(t, err)
	assert.Equal(t, StageProposal, moved.Stage)
	assert.Equal(t, created.ID, moved.ID)
}

func TestServiceImpl_MoveToStageUnknownClient(t *testing.T) {
	service, _, ctx := setupClientServiceTest(t)

	_, err := service.MoveToStage(ctx, 42, StageProposal)

	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestServiceImpl_UpdateClientPreservesCreatedAt(t *testing.T) {
	// Setup
	service, clock, ctx := setupClientServiceTest(t)
	created, err := service.CreateClient(ctx, Client{FirstName: "Sam", LastName: "Rivera"})
	require.NoError(t, err)
	originalCreatedAt := created.CreatedAt
	clock.SetNow(clock.FixedNow.Add(time.Hour))

	// When
	created.Notes = "Met at the expo"
	updated, err := service.UpdateClient(ctx, *created)

	// Then
	require.NoError(t, err)
	assert.Equal(t, originalCreatedAt.UnixMilli(), updated.CreatedAt.UnixMilli())

	stored, err := service.GetClient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Met at the expo", stored.Notes)
}

func TestServiceImpl_DeleteClient(t *testing.T) {
	// Setup
	service, _, ctx := setupClientServiceTest(t)
	created, err := service.CreateClient(ctx, Client{FirstName: "Sam", LastName: "Rivera"})
	require.NoError(t, err)

	// When
	require.NoError(t, service.DeleteClient(ctx, created.ID))

	// Then
	_, err = service.GetClient(ctx, created.ID)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestServiceImpl_LogContactAndHistory(t *testing.T) {
	// Setup
	service, clock, ctx := setupClientServiceTest(t)
	created, err := service.CreateClient(ctx, Client{FirstName: "Sam", LastName: "Rivera"})
	require.NoError(t, err)

	// When
	first, err := service.LogContact(ctx, ContactLog{ClientID: created.ID, Type: ContactCall, Outcome: "left voicemail"})
	require.NoError(t, err)
	clock.SetNow(clock.FixedNow.Add(time.Hour))
	second, err := service.LogContact(ctx, ContactLog{ClientID: created.ID, Type: ContactEmail})
	require.NoError(t, err)

	// Then: agent and timestamp are filled in, history is newest first
	assert.Equal(t, "Ace", first.Agent)
	assert.False(t, first.Timestamp.IsZero())

	history, err := service.ContactHistory(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
}

func TestServiceImpl_LogContactValidation(t *testing.T) {
	// Setup
	service, _, ctx := setupClientServiceTest(t)
	created, err := service.CreateClient(ctx, Client{FirstName: "Sam", LastName: "Rivera"})
	require.NoError(t, err)

	// Unknown contact type
	_, err = service.LogContact(ctx, ContactLog{ClientID: created.ID, Type: "carrier pigeon"})
	var validationErr *calendar.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// Unknown client
	_, err = service.LogContact(ctx, ContactLog{ClientID: 42, Type: ContactCall})
	assert.ErrorIs(t, err, ErrClientNotFound)
}
