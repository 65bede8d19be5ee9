package availability

import (
	"context"
	"testing"

	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) (*Service, *calendar.StubRepository, context.Context, agent.Agent) {
	agentRepo := agent.NewStubRepo()
	agentService := agent.NewAgentService(agentRepo)

	ctx := context.Background()
	current, err := agentService.CreateAgent(ctx, agent.Agent{Uid: "agent-1", DisplayName: "Ace"})
	require.NoError(t, err)
	teammate, err := agentService.CreateAgent(ctx, agent.Agent{Uid: "agent-2", DisplayName: "Jordan"})
	require.NoError(t, err)

	calendarRepo := calendar.NewStubRepository()
	calendarService := calendar.NewService(calendarRepo)
	service := NewService(DefaultCalculator(), agentService, calendarService)

	return service, calendarRepo, agent.WithAgent(ctx, current), teammate
}

func TestService_ForTeammate(t *testing.T) {
	// Setup
	service, calendarRepo, ctx, teammate := setupServiceTest(t)

	// Given: a visible event, a time block, and a private event on the teammate's day
	storeEvent := func(e calendar.Event) {
		_, err := calendarRepo.StoreEvent(ctx, teammate.Id, e)
		require.NoError(t, err)
	}
	storeEvent(busyEvent("08:00", "09:00"))
	storeEvent(timeBlock("13:00", "14:00"))
	storeEvent(privateEvent("10:00", "11:00"))

	// When
	result, err := service.ForTeammate(ctx, teammate.Uid, testDate)

	// Then
	require.NoError(t, err)
	assert.Equal(t, teammate, result.Teammate)
	assert.Equal(t, testDate, result.Date)
	assert.Equal(t, []Slot{
		slot("06:00", "08:00"),
		slot("09:00", "13:00"),
		slot("14:00", "22:00"),
	}, result.FreeSlots)

	require.Len(t, result.BusyTimes, 2)
	assert.Equal(t, "Busy", result.BusyTimes[0].Title)
	assert.Equal(t, "", result.BusyTimes[1].Title)
}

func TestService_ForTeammateUnknownAgent(t *testing.T) {
	// Setup
	service, _, ctx, _ := setupServiceTest(t)

	// When
	_, err := service.ForTeammate(ctx, "no-such-agent", testDate)

	// Then
	assert.ErrorIs(t, err, agent.ErrAgentNotFound)
}

func TestService_ForTeammateInvalidDate(t *testing.T) {
	// Setup
	service, _, ctx, teammate := setupServiceTest(t)

	// When
	_, err := service.ForTeammate(ctx, teammate.Uid, "03/02/2026")

	// Then
	var validationErr *calendar.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
