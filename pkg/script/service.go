package script

import (
	"context"
	"fmt"

	"github.com/Acefayad2/CRM-Portal/internal/utils"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
)

type Service interface {
	CreateScript(ctx context.Context, s Script) (*Script, error)
	GetScript(ctx context.Context, id int) (*Script, error)
	ListScripts(ctx context.Context, category Category) ([]Script, error)
	UpdateScript(ctx context.Context, s Script) (*Script, error)
	DeleteScript(ctx context.Context, id int) error
	RecordUsage(ctx context.Context, id int) (*Script, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) CreateScript(ctx context.Context, script Script) (*Script, error) {
	current, err := agent.CurrentAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	if script.Author == "" {
		script.Author = current.DisplayName
	}
	script.UsageCount = 0
	now := s.clock.Now()
	script.CreatedAt = now
	script.UpdatedAt = now
	id, err := s.repo.StoreScript(ctx, script)
	if err != nil {
		return nil, fmt.Errorf("failed to store script: %w", err)
	}
	script.ID = id
	return &script, nil
}

func (s *ServiceImpl) GetScript(ctx context.Context, id int) (*Script, error) {
	script, err := s.repo.GetScript(ctx, id)
	if err != nil {
		return nil, err
	}
	return &script, nil
}

func (s *ServiceImpl) ListScripts(ctx context.Context, category Category) ([]Script, error) {
	if category != "" && !validCategory(category) {
		return nil, &calendar.ValidationError{Field: "category", Reason: "unknown category"}
	}
	return s.repo.ListScripts(ctx, category)
}

func (s *ServiceImpl) UpdateScript(ctx context.Context, script Script) (*Script, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetScript(ctx, script.ID)
	if err != nil {
		return nil, err
	}
	script.CreatedAt = existing.CreatedAt
	script.UsageCount = existing.UsageCount
	script.UpdatedAt = s.clock.Now()
	if err := s.repo.UpdateScript(ctx, script); err != nil {
		return nil, fmt.Errorf("failed to update script: %w", err)
	}
	return &script, nil
}

func (s *ServiceImpl) DeleteScript(ctx context.Context, id int) error {
	return s.repo.DeleteScript(ctx, id)
}

// RecordUsage bumps the popularity counter when an agent copies a script.
func (s *ServiceImpl) RecordUsage(ctx context.Context, id int) (*Script, error) {
	if err := s.repo.IncrementUsage(ctx, id); err != nil {
		return nil, err
	}
	script, err := s.repo.GetScript(ctx, id)
	if err != nil {
		return nil, err
	}
	return &script, nil
}
