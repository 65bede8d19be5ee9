package client

import (
	"context"
	"fmt"

	"github.com/Acefayad2/CRM-Portal/internal/utils"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
)

type Service interface {
	CreateClient(ctx context.Context, c Client) (*Client, error)
	GetClient(ctx context.Context, id int) (*Client, error)
	ListClients(ctx context.Context, status Status, stage Stage) ([]Client, error)
	UpdateClient(ctx context.Context, c Client) (*Client, error)
	MoveToStage(ctx context.Context, id int, stage Stage) (*Client, error)
	DeleteClient(ctx context.Context, id int) error
	LogContact(ctx context.Context, entry ContactLog) (*ContactLog, error)
	ContactHistory(ctx context.Context, clientId int) ([]ContactLog, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) CreateClient(ctx context.Context, c Client) (*Client, error) {
	current, err := agent.CurrentAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	if c.Status == "" {
		c.Status = StatusNewLead
	}
	if c.Stage == "" {
		c.Stage = StageProspect
	}
	if c.AssignedAgent == "" {
		c.AssignedAgent = current.DisplayName
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.CreatedAt = s.clock.Now()
	id, err := s.repo.StoreClient(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to store client: %w", err)
	}
	c.ID = id
	return &c, nil
}

func (s *ServiceImpl) GetClient(ctx context.Context, id int) (*Client, error) {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ServiceImpl) ListClients(ctx context.Context, status Status, stage Stage) ([]Client, error) {
	if status != "" && !validStatus(status) {
		return nil, validationError("status", "unknown status")
	}
	if stage != "" && !validStage(stage) {
		return nil, validationError("stage", "unknown stage")
	}
	return s.repo.ListClients(ctx, status, stage)
}

func (s *ServiceImpl) UpdateClient(ctx context.Context, c Client) (*Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetClient(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = existing.CreatedAt
	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return &c, nil
}

// MoveToStage is the board drag-and-drop operation. Only the pipeline stage
// changes, the rest of the record stays untouched.
func (s *ServiceImpl) MoveToStage(ctx context.Context, id int, stage Stage) (*Client, error) {
	if !validStage(stage) {
		return nil, validationError("stage", "unknown stage")
	}
	if err := s.repo.UpdateStage(ctx, id, stage); err != nil {
		return nil, err
	}
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ServiceImpl) DeleteClient(ctx context.Context, id int) error {
	return s.repo.DeleteClient(ctx, id)
}

func (s *ServiceImpl) LogContact(ctx context.Context, entry ContactLog) (*ContactLog, error) {
	current, err := agent.CurrentAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current agent: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetClient(ctx, entry.ClientID); err != nil {
		return nil, err
	}
	if entry.Agent == "" {
		entry.Agent = current.DisplayName
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.clock.Now()
	}
	id, err := s.repo.StoreContactLog(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to store contact log: %w", err)
	}
	entry.ID = id
	return &entry, nil
}

func (s *ServiceImpl) ContactHistory(ctx context.Context, clientId int) ([]ContactLog, error) {
	if _, err := s.repo.GetClient(ctx, clientId); err != nil {
		return nil, err
	}
	return s.repo.GetContactHistory(ctx, clientId)
}
