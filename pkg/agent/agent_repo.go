package agent

import (
	"context"
	"database/sql"
	"errors"

	log "github.com/sirupsen/logrus"
)

var ErrAgentNotFound = errors.New("agent not found")

type Repo interface {
	CreateAgent(ctx context.Context, a Agent) (int, error)
	GetAgent(ctx context.Context, id int) (Agent, error)
	GetAgentByUid(ctx context.Context, uid string) (Agent, error)
	GetAllAgents(ctx context.Context) ([]Agent, error)
	DeleteAgent(ctx context.Context, id int) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewAgentRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateAgent(ctx context.Context, a Agent) (int, error) {
	query := `INSERT INTO agents (uid, display_name, email) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, a.Uid, a.DisplayName, a.Email)
	if err != nil {
		log.Errorf("failed to create agent: %v", err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *RepoImpl) GetAgent(ctx context.Context, id int) (Agent, error) {
	query := `SELECT id, uid, display_name, email FROM agents WHERE id = ?`
	var a Agent
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.Id, &a.Uid, &a.DisplayName, &a.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return Agent{}, ErrAgentNotFound
	} else if err != nil {
		log.Errorf("failed to get agent: %v", err)
		return Agent{}, err
	}
	return a, nil
}

func (r *RepoImpl) GetAgentByUid(ctx context.Context, uid string) (Agent, error) {
	query := `SELECT id, uid, display_name, email FROM agents WHERE uid = ?`
	var a Agent
	err := r.db.QueryRowContext(ctx, query, uid).Scan(&a.Id, &a.Uid, &a.DisplayName, &a.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return Agent{}, ErrAgentNotFound
	} else if err != nil {
		log.Errorf("failed to get agent by uid: %v", err)
		return Agent{}, err
	}
	return a, nil
}

func (r *RepoImpl) GetAllAgents(ctx context.Context) ([]Agent, error) {
	query := `SELECT id, uid, display_name, email FROM agents ORDER BY display_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to list agents: %v", err)
		return nil, err
	}
	defer rows.Close()

	agents := make([]Agent, 0, 10)
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.Id, &a.Uid, &a.DisplayName, &a.Email); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (r *RepoImpl) DeleteAgent(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		log.Errorf("failed to delete agent: %v", err)
	}
	return err
}
