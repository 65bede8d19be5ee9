package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/Acefayad2/CRM-Portal/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvStatsRendererImpl_RenderStats(t *testing.T) {
	// Given
	renderer := NewCsvStatsRenderer()
	summary := ActivitySummary{
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Days: []DailyActivity{
			{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Calls: 2, Emails: 1, Total: 3},
			{Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), Meetings: 1, Total: 1},
		},
		TotalCalls:    2,
		TotalEmails:   1,
		TotalMeetings: 1,
		TotalContacts: 4,
		Pipeline: []StageCount{
			{Stage: client.StageProspect, Count: 3},
			{Stage: client.StageClosedWon, Count: 1},
		},
	}

	// When
	csv, err := renderer.RenderStats(summary)

	// Then
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	assert.Equal(t, "Date,Calls,Texts,Emails,Meetings,Total", lines[0])
	assert.Equal(t, "02/03/2026,2,0,1,0,3", lines[1])
	assert.Equal(t, "03/03/2026,0,0,0,1,1", lines[2])
	assert.Equal(t, "SUM,2,0,1,1,4", lines[3])
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "Stage,Clients", lines[5])
	assert.Equal(t, "Prospect,3", lines[6])
	assert.Equal(t, "Closed Won,1", lines[7])
}

func TestCsvStatsRendererImpl_RenderStatsEmpty(t *testing.T) {
	renderer := NewCsvStatsRenderer()

	csv, err := renderer.RenderStats(ActivitySummary{})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(csv, "Date,Calls,Texts,Emails,Meetings,Total\n"))
	assert.Contains(t, csv, "SUM,0,0,0,0,0")
}
