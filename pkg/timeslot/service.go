package timeslot

import (
	"context"
	"fmt"

	"github.com/Acefayad2/CRM-Portal/internal/event_bus"
	"github.com/Acefayad2/CRM-Portal/internal/utils"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, newRequest NewRequest) (*Request, error)
	Accept(ctx context.Context, requestId string) (*Request, *calendar.Event, error)
	Reject(ctx context.Context, requestId string) (*Request, error)
	Pending(ctx context.Context) ([]Request, error)
	ListReceived(ctx context.Context, status Status) ([]Request, error)
	ListSent(ctx context.Context, status Status) ([]Request, error)
}

type ServiceImpl struct {
	repo   Repository
	agents agent.Service
	clock  utils.Clock
	bus    *event_bus.EventBus
}

func NewService(repo Repository, agents agent.Service, clock utils.Clock, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		agents: agents,
		clock:  clock,
		bus:    bus,
	}
}

// Create registers a pending request for a slot on a teammate's calendar.
// The interval is deliberately not validated against the teammate's current
// availability: the slot picker pre-fills from computed free slots, and the
// accept path re-checks anyway.
func (s *ServiceImpl) Create(ctx context.Context, newRequest NewRequest) (*Request, error) {
	requester, err := agent.CurrentAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	if err := newRequest.Validate(); err != nil {
		return nil, err
	}
	teammate, err := s.agents.GetAgentByUid(ctx, newRequest.TeammateUid)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve teammate: %w", err)
	}
	date, err := calendar.ParseDate(newRequest.Date)
	if err != nil {
		return nil, &calendar.ValidationError{Field: "date", Reason: err.Error()}
	}

	request := Request{
		ID:            uuid.New().String(),
		RequesterUid:  requester.Uid,
		RequesterName: requester.DisplayName,
		TeammateUid:   teammate.Uid,
		TeammateName:  teammate.DisplayName,
		Date:          date,
		Start:         newRequest.Start,
		End:           newRequest.End,
		Title:         newRequest.Title,
		Message:       newRequest.Message,
		Status:        StatusPending,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.repo.StoreRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to store request: %w", err)
	}

	s.publish(ctx, event_bus.TimeSlotRequestCreatedEvent, event_bus.TimeSlotRequestCreated{
		RequestID:     request.ID,
		RequesterName: request.RequesterName,
		TeammateID:    request.TeammateUid,
		TeammateName:  request.TeammateName,
		Date:          request.Date,
		StartTime:     request.Start.String(),
		EndTime:       request.End.String(),
		Title:         request.Title,
	})

	return &request, nil
}

// Accept transitions a pending request to accepted and materializes the
// derived calendar event on the accepting agent's calendar. Both writes
// happen in a single transaction; a request that is unknown, already
// resolved, or conflicting with the current calendar leaves no trace.
func (s *ServiceImpl) Accept(ctx context.Context, requestId string) (*Request, *calendar.Event, error) {
	acceptor, err := agent.CurrentAgent(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get current agent: %w", err)
	}

	var accepted Request
	var event calendar.Event
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		request, err := repo.GetRequest(ctx, requestId)
		if err != nil {
			return err
		}
		if request.TeammateUid != acceptor.Uid {
			return ErrNotRecipient
		}
		if request.Status != StatusPending {
			return ErrRequestAlreadyResolved
		}

		busy, err := repo.GetBusyEventsForDate(ctx, acceptor.Id, request.Date)
		if err != nil {
			return fmt.Errorf("failed to load busy events: %w", err)
		}
		for _, b := range busy {
			if b.Start < request.End && request.Start < b.End {
				return ErrSlotConflict
			}
		}

		if err := repo.UpdateStatus(ctx, requestId, StatusAccepted); err != nil {
			return err
		}

		event = calendar.Event{
			Title:       request.Title,
			Date:        request.Date,
			Start:       request.Start,
			End:         request.End,
			Description: request.Message,
			Color:       "bg-blue-500",
			Attendees:   []string{request.RequesterName},
			Organizer:   acceptor.DisplayName,
			Visible:     true,
			TimeBlock:   false,
		}
		eventId, err := repo.StoreDerivedEvent(ctx, acceptor.Id, event)
		if err != nil {
			return fmt.Errorf("failed to store derived event: %w", err)
		}
		event.ID = eventId

		accepted = request
		accepted.Status = StatusAccepted
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, event_bus.TimeSlotRequestAcceptedEvent, event_bus.TimeSlotRequestAccepted{
		RequestID:     accepted.ID,
		RequesterName: accepted.RequesterName,
		TeammateID:    accepted.TeammateUid,
		EventID:       event.ID,
	})
	s.publish(ctx, event_bus.CalendarEventCreatedEvent, event_bus.CalendarEventCreated{
		EventID:   event.ID,
		Title:     event.Title,
		Date:      event.Date,
		StartTime: event.Start.String(),
		EndTime:   event.End.String(),
	})

	return &accepted, &event, nil
}

// Reject transitions a pending request to rejected. No event is created.
func (s *ServiceImpl) Reject(ctx context.Context, requestId string) (*Request, error) {
	acceptor, err := agent.CurrentAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}

	var rejected Request
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		request, err := repo.GetRequest(ctx, requestId)
		if err != nil {
			return err
		}
		if request.TeammateUid != acceptor.Uid {
			return ErrNotRecipient
		}
		if request.Status != StatusPending {
			return ErrRequestAlreadyResolved
		}
		if err := repo.UpdateStatus(ctx, requestId, StatusRejected); err != nil {
			return err
		}
		rejected = request
		rejected.Status = StatusRejected
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event_bus.TimeSlotRequestRejectedEvent, event_bus.TimeSlotRequestRejected{
		RequestID:  rejected.ID,
		TeammateID: rejected.TeammateUid,
	})

	return &rejected, nil
}

// Pending returns the requests waiting for the calling agent's decision,
// oldest first.
func (s *ServiceImpl) Pending(ctx context.Context) ([]Request, error) {
	return s.ListReceived(ctx, StatusPending)
}

func (s *ServiceImpl) ListReceived(ctx context.Context, status Status) ([]Request, error) {
	current, err := agent.CurrentAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	return s.repo.ListReceived(ctx, current.Uid, status)
}

func (s *ServiceImpl) ListSent(ctx context.Context, status Status) ([]Request, error) {
	current, err := agent.CurrentAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	return s.repo.ListSent(ctx, current.Uid, status)
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
