package calendar

import "context"

// StubRepository is an in-memory Repository for tests in dependent packages.
type StubRepository struct {
	Events map[int][]Event // keyed by agent id
	nextId int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{Events: make(map[int][]Event), nextId: 1}
}

func (s *StubRepository) WithTransaction(_ context.Context, fn func(repo Repository) error) error {
	return fn(s)
}

func (s *StubRepository) StoreEvent(_ context.Context, agentId int, event Event) (int, error) {
	event.ID = s.nextId
	s.nextId++
	s.Events[agentId] = append(s.Events[agentId], event)
	return event.ID, nil
}

func (s *StubRepository) GetEvent(_ context.Context, agentId int, eventId int) (Event, error) {
	for _, e := range s.Events[agentId] {
		if e.ID == eventId {
			return e, nil
		}
	}
	return Event{}, ErrEventNotFound
}

func (s *StubRepository) GetEventsForDate(_ context.Context, agentId int, date string) ([]Event, error) {
	events := make([]Event, 0)
	for _, e := range s.Events[agentId] {
		if e.Date == date {
			events = append(events, e)
		}
	}
	return events, nil
}

func (s *StubRepository) GetEventsForRange(_ context.Context, agentId int, from, to string) ([]Event, error) {
	events := make([]Event, 0)
	for _, e := range s.Events[agentId] {
		if e.Date >= from && e.Date <= to {
			events = append(events, e)
		}
	}
	return events, nil
}

func (s *StubRepository) UpdateEvent(_ context.Context, agentId int, event Event) error {
	for i, e := range s.Events[agentId] {
		if e.ID == event.ID {
			s.Events[agentId][i] = event
			return nil
		}
	}
	return ErrEventNotFound
}

func (s *StubRepository) DeleteEvent(_ context.Context, agentId int, eventId int) error {
	for i, e := range s.Events[agentId] {
		if e.ID == eventId {
			s.Events[agentId] = append(s.Events[agentId][:i], s.Events[agentId][i+1:]...)
			return nil
		}
	}
	return ErrEventNotFound
}
