package script

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

func setupScriptServiceTest(t *testing.T) (*ServiceImpl, *utils.MockClock, context.Context) {
	db := test_utils.SetupTestDB(t)
	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := NewService(NewRepository(db), clock)
	ctx := agent.WithAgent(context.Background(), agent.Agent{Id: 1, Uid: "agent-uid", DisplayName: "Ace"})
	return service, clock, ctx
}

func coldCallScript() Script {
	return Script{
		Title:    "First touch",
		Category: CategoryColdCall,
		Content:  "Hi, this is {agent} with ...",
		Tags:     []string{"opener"},
	}
}

func TestServiceImpl_CreateScript(t *testing.T) {
	// Setup
	service, clock, ctx := setupScriptServiceTest(t)

	// When
	created, err := service.CreateScript(ctx, coldCallScript())

	// Then: author defaults to the caller, usage starts at zero
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Ace", created.Author)
	assert.Equal(t, 0, created.UsageCount)
	assert.Equal(t, clock.FixedNow, created.CreatedAt)
}

func TestServiceImpl_CreateScriptValidation(t *testing.T) {
	service, _, ctx := setupScriptServiceTest(t)

	t.Run("Missing title", func(t *testing.T) {
		s := coldCallScript()
		s.Title = ""
		_, err := service.CreateScript(ctx, s)
		var validationErr *calendar.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("Unknown category", func(t *testing.T) {
		s := coldCallScript()
		s.Category = "Small Talk"
		_, err := service.CreateScript(ctx, s)
		var validationErr *calendar.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestServiceImpl_ListScriptsByCategoryAndPopularity(t *testing.T) {
	// Setup
	service, _, ctx := setupScriptServiceTest(t)
	quiet, err := service.CreateScript(ctx, coldCallScript())
	require.NoError(t, err)
	popular, err := service.CreateScript(ctx, Script{Title: "Second touch", Category: CategoryColdCall})
	require.NoError(t, err)
	_, err = service.CreateScript(ctx, Script{Title: "Close", Category: CategoryClosing})
	require.NoError(t, err)
	_, err = service.RecordUsage(ctx, popular.ID)
	require.NoError(t, err)

	// When
	coldCalls, err := service.ListScripts(ctx, CategoryColdCall)
	require.NoError(t, err)
	all, err := service.ListScripts(ctx, "")
	require.NoError(t, err)

	// Then: most used first, category filter applied
	require.Len(t, coldCalls, 2)
	assert.Equal(t, popular.ID, coldCalls[0].ID)
	assert.Equal(t, quiet.ID, coldCalls[1].ID)
	assert.Len(t, all, 3)

	_, err = service.ListScripts(ctx, "Small Talk")
	var validationErr *calendar.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestServiceImpl_RecordUsage(t *testing.T) {
	// Setup
	service, _, ctx := setupScriptServiceTest(t)
	created, err := service.CreateScript(ctx, coldCallScript())
	require.NoError(t, err)

	// When
	_, err = service.RecordUsage(ctx, created.ID)
	require.NoError(t, err)
	bumped, err := service.RecordUsage(ctx, created.ID)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 2, bumped.UsageCount)
}

func TestServiceImpl_RecordUsageUnknownScript(t *testing.T) {
	service, _, ctx := setupScriptServiceTest(t)

	_, err := service.RecordUsage(ctx, 42)

	assert.ErrorIs(t, err, ErrScriptNotFound)
}

func TestServiceImpl_UpdateScriptKeepsUsage(t *testing.T) {
	// Setup
	service, clock, ctx := setupScriptServiceTest(t)
	created, err := service.CreateScript(ctx, coldCallScript())
	require.NoError(t, err)
	_, err = service.RecordUsage(ctx, created.ID)
	require.NoError(t, err)
	clock.SetNow(clock.FixedNow.Add(time.Hour))

	// When
	created.Content = "Revised opener"
	updated, err := service.UpdateScript(ctx, *created)

	// Then: usage count survives the edit, updatedAt moves
	require.NoError(t, err)
	assert.Equal(t, 1, updated.UsageCount)
	assert.Equal(t, clock.FixedNow, updated.UpdatedAt)

	stored, err := service.GetScript(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Revised opener", stored.Content)
}

func TestServiceImpl_DeleteScript(t *testing.T) {
	// Setup
	service, _, ctx := setupScriptServiceTest(t)
	created, err := service.CreateScript(ctx, coldCallScript())
	require.NoError(t, err)

	// When
	require.NoError(t, service.DeleteScript(ctx, created.ID))

	// Then
	_, err = service.GetScript(ctx, created.ID)
	assert.ErrorIs(t, err, ErrScriptNotFound)
}
