package availability

import (
	"context"
	"fmt"

	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
)

// TeammateAvailability is the per-day availability view for one teammate:
// the shareable busy entries plus the free slots derived from them.
type TeammateAvailability struct {
	Teammate  agent.Agent
	Date      string
	BusyTimes []BusyTime
	FreeSlots []Slot
}

type Service struct {
	calc     *Calculator
	agents   agent.Service
	calendar *calendar.Service
}

func NewService(calc *Calculator, agents agent.Service, cal *calendar.Service) *Service {
	return &Service{
		calc:     calc,
		agents:   agents,
		calendar: cal,
	}
}

// ForTeammate computes the availability of the given teammate on the given
// date. The teammate's private non-blocking events are not part of the busy
// set and therefore surface as free time.
func (s *Service) ForTeammate(ctx context.Context, teammateUid string, date string) (*TeammateAvailability, error) {
	canonical, err := calendar.ParseDate(date)
	if err != nil {
		return nil, &calendar.ValidationError{Field: "date", Reason: err.Error()}
	}

	teammate, err := s.agents.GetAgentByUid(ctx, teammateUid)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve teammate: %w", err)
	}

	events, err := s.calendar.GetAgentEventsForDate(ctx, teammate.Id, canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to load teammate events: %w", err)
	}

	return &TeammateAvailability{
		Teammate:  teammate,
		Date:      canonical,
		BusyTimes: s.calc.BusyTimes(events, canonical),
		FreeSlots: s.calc.FreeSlots(events, canonical),
	}, nil
}
