package stats

import (
	"context"
	"time"

	"github.com/Acefayad2/CRM-Portal/pkg/client"
)

type StatsService interface {
	GetActivity(ctx context.Context, from time.Time, to time.Time) (ActivitySummary, error)
}

type StatsServiceImpl struct {
	clientRepo client.Repository
}

func NewStatsService(clientRepo client.Repository) *StatsServiceImpl {
	return &StatsServiceImpl{clientRepo: clientRepo}
}

// GetActivity aggregates contact logs in [from, to] into per-day counts and
// adds a snapshot of the pipeline by stage. Days without any activity are
// included so charts get a continuous series.
func (s *StatsServiceImpl) GetActivity(ctx context.Context, from time.Time, to time.Time) (ActivitySummary, error) {
	logs, err := s.clientRepo.GetContactLogsForRange(ctx, from, to)
	if err != nil {
		return ActivitySummary{}, err
	}

	summary := ActivitySummary{StartDate: from, EndDate: to}
	for day := startOfDay(from); !day.After(to); day = day.AddDate(0, 0, 1) {
		summary.Days = append(summary.Days, DailyActivity{Date: day})
	}
	byDay := make(map[string]*DailyActivity, len(summary.Days))
	for i := range summary.Days {
		byDay[summary.Days[i].Date.Format("2006-01-02")] = &summary.Days[i]
	}

	for _, entry := range logs {
		activity, ok := byDay[entry.Timestamp.Format("2006-01-02")]
		if !ok {
			continue
		}
		switch entry.Type {
		case client.ContactCall:
			activity.Calls++
			summary.TotalCalls++
		case client.ContactText:
			activity.Texts++
			summary.TotalTexts++
		case client.ContactEmail:
			activity.Emails++
			summary.TotalEmails++
		case client.ContactMeeting:
			activity.Meetings++
			summary.TotalMeetings++
		}
		activity.Total++
		summary.TotalContacts++
	}

	stageCounts, err := s.clientRepo.CountClientsByStage(ctx)
	if err != nil {
		return ActivitySummary{}, err
	}
	for _, stage := range client.Stages {
		summary.Pipeline = append(summary.Pipeline, StageCount{Stage: stage, Count: stageCounts[stage]})
	}

	return summary, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
