package stats

import (
	"context"
	"testing"
	"time"

	"github.com/Acefayad2/CRM-Portal/internal/test_utils"
	"github.com/Acefayad2/CRM-Portal/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStatsServiceTest(t *testing.T) (*StatsServiceImpl, *client.RepositoryImpl, context.Context) {
	db := test_utils.SetupTestDB(t)
	clientRepo := client.NewRepository(db)
	return NewStatsService(clientRepo), clientRepo, context.Background()
}

func seedClient(t *testing.T, repo *client.RepositoryImpl, ctx context.Context, stage client.Stage) int {
	id, err := repo.StoreClient(ctx, client.Client{
		FirstName: "Sam",
		LastName:  "Rivera",
		Status:    client.StatusWorking,
		Stage:     stage,
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return id
}

func seedContact(t *testing.T, repo *client.RepositoryImpl, ctx context.Context, clientId int, contactType client.ContactType, at time.Time) {
	_, err := repo.StoreContactLog(ctx, client.ContactLog{
		ClientID:  clientId,
		Type:      contactType,
		Timestamp: at,
		Agent:     "Ace",
	})
	require.NoError(t, err)
}

func TestStatsServiceImpl_GetActivity(t *testing.T) {
	// Setup
	service, clientRepo, ctx := setupStatsServiceTest(t)
	clientId := seedClient(t, clientRepo, ctx, client.StageQualified)
	seedClient(t, clientRepo, ctx, client.StageQualified)
	seedClient(t, clientRepo, ctx, client.StageClosedWon)

	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	day3 := time.Date(2026, 3, 4, 15, 0, 0, 0, time.Local)
	seedContact(t, clientRepo, ctx, clientId, client.ContactCall, day1)
	seedContact(t, clientRepo, ctx, clientId, client.ContactCall, day1.Add(time.Hour))
	seedContact(t, clientRepo, ctx, clientId, client.ContactEmail, day1.Add(2*time.Hour))
	seedContact(t, clientRepo, ctx, clientId, client.ContactMeeting, day3)
	// Outside the queried range
	seedContact(t, clientRepo, ctx, clientId, client.ContactText, day1.AddDate(0, 0, -10))

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 3, 4, 23, 59, 59, 0, time.Local)

	// When
	summary, err := service.GetActivity(ctx, from, to)

	// Then: one entry per day, including the quiet day in between
	require.NoError(t, err)
	require.Len(t, summary.Days, 3)
	assert.Equal(t, 2, summary.Days[0].Calls)
	assert.Equal(t, 1, summary.Days[0].Emails)
	assert.Equal(t, 3, summary.Days[0].Total)
	assert.Equal(t, 0, summary.Days[1].Total)
	assert.Equal(t, 1, summary.Days[2].Meetings)

	assert.Equal(t, 2, summary.TotalCalls)
	assert.Equal(t, 1, summary.TotalEmails)
	assert.Equal(t, 1, summary.TotalMeetings)
	assert.Equal(t, 0, summary.TotalTexts)
	assert.Equal(t, 4, summary.TotalContacts)

	// Pipeline snapshot covers every stage in order
	require.Len(t, summary.Pipeline, len(client.Stages))
	counts := make(map[client.Stage]int)
	for _, entry := range summary.Pipeline {
		counts[entry.Stage] = entry.Count
	}
	assert.Equal(t, 2, counts[client.StageQualified])
	assert.Equal(t, 1, counts[client.StageClosedWon])
	assert.Equal(t, 0, counts[client.StageProspect])
}

func TestStatsServiceImpl_GetActivityEmpty(t *testing.T) {
	// Setup
	service, _, ctx := setupStatsServiceTest(t)
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 1)

	// When
	summary, err := service.GetActivity(ctx, from, to)

	// Then
	require.NoError(t, err)
	assert.Len(t, summary.Days, 2)
	assert.Equal(t, 0, summary.TotalContacts)
}
