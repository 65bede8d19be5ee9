package stats

import (
	"time"

	"github.com/Acefayad2/CRM-Portal/pkg/client"
)

// DailyActivity counts the client touch points logged on one day.
type DailyActivity struct {
	Date     time.Time
	Calls    int
	Texts    int
	Emails   int
	Meetings int
	Total    int
}

type StageCount struct {
	Stage client.Stage
	Count int
}

type ActivitySummary struct {
	StartDate     time.Time
	EndDate       time.Time
	Days          []DailyActivity
	TotalCalls    int
	TotalTexts    int
	TotalEmails   int
	TotalMeetings int
	TotalContacts int
	Pipeline      []StageCount
}
