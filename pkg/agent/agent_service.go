package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	GetCurrentAgent(ctx context.Context) (Agent, error)
	CreateAgent(ctx context.Context, a Agent) (Agent, error)
	GetAgent(ctx context.Context, id int) (Agent, error)
	GetAgentByUid(ctx context.Context, uid string) (Agent, error)
	GetAllAgents(ctx context.Context) ([]Agent, error)
	GetTeammates(ctx context.Context) ([]Agent, error)
	DeleteAgent(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo Repo
}

func NewAgentService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetCurrentAgent(ctx context.Context) (Agent, error) {
	agentId, err := CurrentId(ctx)
	if err != nil {
		return Agent{}, fmt.Errorf("failed to get current agent: %w", err)
	}
	return s.repo.GetAgent(ctx, agentId)
}

func (s *ServiceImpl) CreateAgent(ctx context.Context, a Agent) (Agent, error) {
	if a.Uid == "" {
		a.Uid = uuid.New().String()
	}
	id, err := s.repo.CreateAgent(ctx, a)
	if err != nil {
		return Agent{}, err
	}
	a.Id = id
	return a, nil
}

func (s *ServiceImpl) GetAgent(ctx context.Context, id int) (Agent, error) {
	return s.repo.GetAgent(ctx, id)
}

func (s *ServiceImpl) GetAgentByUid(ctx context.Context, uid string) (Agent, error) {
	return s.repo.GetAgentByUid(ctx, uid)
}

func (s *ServiceImpl) GetAllAgents(ctx context.Context) ([]Agent, error) {
	return s.repo.GetAllAgents(ctx)
}

// GetTeammates returns all agents except the calling one.
func (s *ServiceImpl) GetTeammates(ctx context.Context) ([]Agent, error) {
	agentId, err := CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	all, err := s.repo.GetAllAgents(ctx)
	if err != nil {
		return nil, err
	}
	teammates := make([]Agent, 0, len(all))
	for _, a := range all {
		if a.Id != agentId {
			teammates = append(teammates, a)
		}
	}
	return teammates, nil
}

func (s *ServiceImpl) DeleteAgent(ctx context.Context, uid string) error {
	a, err := s.repo.GetAgentByUid(ctx, uid)
	if err != nil {
		return err
	}
	return s.repo.DeleteAgent(ctx, a.Id)
}
