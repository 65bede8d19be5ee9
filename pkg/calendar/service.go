package calendar

import (
	"context"
	"fmt"

	"github.com/Acefayad2/CRM-Portal/pkg/agent"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) AddEvent(ctx context.Context, event Event) (*Event, error) {
	agentId, err := agent.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	eventId, err := s.repo.StoreEvent(ctx, agentId, event)
	if err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}
	event.ID = eventId

	return &event, nil
}

func (s *Service) GetEventsForDate(ctx context.Context, date string) ([]Event, error) {
	agentId, err := agent.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	canonical, err := ParseDate(date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: err.Error()}
	}
	return s.repo.GetEventsForDate(ctx, agentId, canonical)
}

func (s *Service) GetEventsForRange(ctx context.Context, from, to string) ([]Event, error) {
	agentId, err := agent.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	fromCanonical, err := ParseDate(from)
	if err != nil {
		return nil, &ValidationError{Field: "from", Reason: err.Error()}
	}
	toCanonical, err := ParseDate(to)
	if err != nil {
		return nil, &ValidationError{Field: "to", Reason: err.Error()}
	}
	return s.repo.GetEventsForRange(ctx, agentId, fromCanonical, toCanonical)
}

// GetAgentEventsForDate reads another agent's event list. Callers are expected
// to filter for visibility before showing the result to anyone else; the
// availability package does exactly that.
func (s *Service) GetAgentEventsForDate(ctx context.Context, agentId int, date string) ([]Event, error) {
	canonical, err := ParseDate(date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: err.Error()}
	}
	return s.repo.GetEventsForDate(ctx, agentId, canonical)
}

func (s *Service) ModifyEvent(ctx context.Context, event Event) (*Event, error) {
	agentId, err := agent.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEvent(ctx, agentId, event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Service) DeleteEvent(ctx context.Context, eventId int) error {
	agentId, err := agent.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current agent: %w", err)
	}
	return s.repo.DeleteEvent(ctx, agentId, eventId)
}
