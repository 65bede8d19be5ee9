package training

import (
	"context"
	"fmt"

	"github.com/Acefayad2/CRM-Portal/internal/utils"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
)

type Service interface {
	ListModules(ctx context.Context, category ModuleCategory) ([]Progress, error)
	GetModule(ctx context.Context, moduleId string) (*Progress, error)
	CompleteLesson(ctx context.Context, lessonId string) (*Progress, error)
	ResetLesson(ctx context.Context, lessonId string) (*Progress, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

// ListModules returns the catalog with the calling agent's progress attached.
func (s *ServiceImpl) ListModules(ctx context.Context, category ModuleCategory) ([]Progress, error) {
	agentId, err := agent.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	modules, err := s.repo.ListModules(ctx, category)
	if err != nil {
		return nil, err
	}
	progress := make([]Progress, 0, len(modules))
	for _, m := range modules {
		completions, err := s.repo.GetCompletions(ctx, agentId, m.ID)
		if err != nil {
			return nil, err
		}
		progress = append(progress, Progress{Module: m, CompletedLessons: completions})
	}
	return progress, nil
}

func (s *ServiceImpl) GetModule(ctx context.Context, moduleId string) (*Progress, error) {
	agentId, err := agent.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	return s.moduleProgress(ctx, agentId, moduleId)
}

func (s *ServiceImpl) CompleteLesson(ctx context.Context, lessonId string) (*Progress, error) {
	agentId, err := agent.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	lesson, err := s.repo.GetLesson(ctx, lessonId)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkCompleted(ctx, agentId, lessonId, s.clock.Now()); err != nil {
		return nil, err
	}
	return s.moduleProgress(ctx, agentId, lesson.ModuleID)
}

func (s *ServiceImpl) ResetLesson(ctx context.Context, lessonId string) (*Progress, error) {
	agentId, err := agent.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	lesson, err := s.repo.GetLesson(ctx, lessonId)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UnmarkCompleted(ctx, agentId, lessonId); err != nil {
		return nil, err
	}
	return s.moduleProgress(ctx, agentId, lesson.ModuleID)
}

func (s *ServiceImpl) moduleProgress(ctx context.Context, agentId int, moduleId string) (*Progress, error) {
	module, err := s.repo.GetModule(ctx, moduleId)
	if err != nil {
		return nil, err
	}
	completions, err := s.repo.GetCompletions(ctx, agentId, moduleId)
	if err != nil {
		return nil, err
	}
	return &Progress{Module: module, CompletedLessons: completions}, nil
}
