package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_CreateAgentAssignsUid(t *testing.T) {
	// Setup
	service := NewAgentService(NewStubRepo())

	// When
	created, err := service.CreateAgent(context.Background(), Agent{DisplayName: "Ace"})

	// Then
	require.NoError(t, err)
	assert.NotEmpty(t, created.Uid)
	assert.NotZero(t, created.Id)
}

func TestServiceImpl_CreateAgentKeepsGivenUid(t *testing.T) {
	service := NewAgentService(NewStubRepo())

	created, err := service.CreateAgent(context.Background(), Agent{Uid: "fixed-uid", DisplayName: "Ace"})

	require.NoError(t, err)
	assert.Equal(t, "fixed-uid", created.Uid)
}

func TestServiceImpl_GetTeammates(t *testing.T) {
	// Setup
	service := NewAgentService(NewStubRepo())
	ctx := context.Background()
	me, err := service.CreateAgent(ctx, Agent{DisplayName: "Ace"})
	require.NoError(t, err)
	other, err := service.CreateAgent(ctx, Agent{DisplayName: "Jordan"})
	require.NoError(t, err)

	// When
	teammates, err := service.GetTeammates(WithAgent(ctx, me))

	// Then: everyone except the caller
	require.NoError(t, err)
	require.Len(t, teammates, 1)
	assert.Equal(t, other.Uid, teammates[0].Uid)
}

func TestServiceImpl_GetTeammatesWithoutAgent(t *testing.T) {
	service := NewAgentService(NewStubRepo())

	_, err := service.GetTeammates(context.Background())

	assert.ErrorIs(t, err, ErrNoAgent)
}

func TestServiceImpl_GetCurrentAgent(t *testing.T) {
	// Setup
	service := NewAgentService(NewStubRepo())
	ctx := context.Background()
	me, err := service.CreateAgent(ctx, Agent{DisplayName: "Ace"})
	require.NoError(t, err)

	// When
	current, err := service.GetCurrentAgent(WithAgent(ctx, me))

	// Then
	require.NoError(t, err)
	assert.Equal(t, me, current)
}

func TestServiceImpl_DeleteAgent(t *testing.T) {
	// Setup
	service := NewAgentService(NewStubRepo())
	ctx := context.Background()
	created, err := service.CreateAgent(ctx, Agent{DisplayName: "Ace"})
	require.NoError(t, err)

	// When
	require.NoError(t, service.DeleteAgent(ctx, created.Uid))

	// Then
	_, err = service.GetAgentByUid(ctx, created.Uid)
	assert.ErrorIs(t, err, ErrAgentNotFound)
	assert.ErrorIs(t, service.DeleteAgent(ctx, created.Uid), ErrAgentNotFound)
}
