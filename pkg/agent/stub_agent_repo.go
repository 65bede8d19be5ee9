package agent

import "context"

// StubRepo is an in-memory Repo for tests in other packages.
type StubRepo struct {
	Agents []Agent
	nextId int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{nextId: 1}
}

func (s *StubRepo) CreateAgent(_ context.Context, a Agent) (int, error) {
	a.Id = s.nextId
	s.nextId++
	s.Agents = append(s.Agents, a)
	return a.Id, nil
}

func (s *StubRepo) GetAgent(_ context.Context, id int) (Agent, error) {
	for _, a := range s.Agents {
		if a.Id == id {
			return a, nil
		}
	}
	return Agent{}, ErrAgentNotFound
}

func (s *StubRepo) GetAgentByUid(_ context.Context, uid string) (Agent, error) {
	for _, a := range s.Agents {
		if a.Uid == uid {
			return a, nil
		}
	}
	return Agent{}, ErrAgentNotFound
}

func (s *StubRepo) GetAllAgents(_ context.Context) ([]Agent, error) {
	return append([]Agent(nil), s.Agents...), nil
}

func (s *StubRepo) DeleteAgent(_ context.Context, id int) error {
	for i, a := range s.Agents {
		if a.Id == id {
			s.Agents = append(s.Agents[:i], s.Agents[i+1:]...)
			return nil
		}
	}
	return ErrAgentNotFound
}
