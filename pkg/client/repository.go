package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreClient(ctx context.Context, c Client) (int, error)
	GetClient(ctx context.Context, id int) (Client, error)
	ListClients(ctx context.Context, status Status, stage Stage) ([]Client, error)
	UpdateClient(ctx context.Context, c Client) error
	UpdateStage(ctx context.Context, id int, stage Stage) error
	DeleteClient(ctx context.Context, id int) error
	StoreContactLog(ctx context.Context, entry ContactLog) (int, error)
	GetContactHistory(ctx context.Context, clientId int) ([]ContactLog, error)
	GetContactLogsForRange(ctx context.Context, from, to time.Time) ([]ContactLog, error)
	CountClientsByStage(ctx context.Context) (map[Stage]int, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const clientColumns = `id, first_name, last_name, email, phone, status, stage, assigned_agent, tags, notes, created_at`

func (r *RepositoryImpl) StoreClient(ctx context.Context, c Client) (int, error) {
	tags, err := marshalTags(c.Tags)
	if err != nil {
		return 0, err
	}
	query := `INSERT INTO client (first_name, last_name, email, phone, status, stage, assigned_agent, tags, notes, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone,
		string(c.Status), string(c.Stage), c.AssignedAgent, tags, c.Notes, c.CreatedAt.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not store client: %w", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *RepositoryImpl) GetClient(ctx context.Context, id int) (Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	c, err := scanClient(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Client{}, ErrClientNotFound
	} else if err != nil {
		log.Errorf("could not get client: %v", err)
		return Client{}, err
	}
	return c, nil
}

func (r *RepositoryImpl) ListClients(ctx context.Context, status Status, stage Stage) ([]Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client`
	var conditions []string
	var args []interface{}
	if status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(status))
	}
	if stage != "" {
		conditions = append(conditions, "stage = ?")
		args = append(args, string(stage))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY last_name, first_name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query clients: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	clients := make([]Client, 0, 10)
	for rows.Next() {
		c, err := scanClient(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *RepositoryImpl) UpdateClient(ctx context.Context, c Client) error {
	tags, err := marshalTags(c.Tags)
	if err != nil {
		return err
	}
	query := `UPDATE client
              SET first_name = ?, last_name = ?, email = ?, phone = ?, status = ?, stage = ?,
                  assigned_agent = ?, tags = ?, notes = ?
              WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone, string(c.Status), string(c.Stage),
		c.AssignedAgent, tags, c.Notes, c.ID)
	if err != nil {
		err := fmt.Errorf("could not update client: %w", err)
		log.Error(err)
		return err
	}
	return requireAffected(result)
}

func (r *RepositoryImpl) UpdateStage(ctx context.Context, id int, stage Stage) error {
	result, err := r.db.ExecContext(ctx, `UPDATE client SET stage = ? WHERE id = ?`, string(stage), id)
	if err != nil {
		err := fmt.Errorf("could not update client stage: %w", err)
		log.Error(err)
		return err
	}
	return requireAffected(result)
}

func (r *RepositoryImpl) DeleteClient(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM client WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not delete client: %w", err)
		log.Error(err)
		return err
	}
	return requireAffected(result)
}

func (r *RepositoryImpl) StoreContactLog(ctx context.Context, entry ContactLog) (int, error) {
	query := `INSERT INTO contact_log (client_id, type, timestamp, agent, outcome, notes)
              VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		entry.ClientID, string(entry.Type), entry.Timestamp.UnixMilli(), entry.Agent, entry.Outcome, entry.Notes)
	if err != nil {
		err := fmt.Errorf("could not store contact log: %w", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *RepositoryImpl) GetContactHistory(ctx context.Context, clientId int) ([]ContactLog, error) {
	query := `SELECT id, client_id, type, timestamp, agent, outcome, notes
              FROM contact_log WHERE client_id = ? ORDER BY timestamp DESC`
	return r.queryContactLogs(ctx, query, clientId)
}

func (r *RepositoryImpl) GetContactLogsForRange(ctx context.Context, from, to time.Time) ([]ContactLog, error) {
	query := `SELECT id, client_id, type, timestamp, agent, outcome, notes
              FROM contact_log WHERE timestamp >= ? AND timestamp <= ? ORDER BY timestamp`
	return r.queryContactLogs(ctx, query, from.UnixMilli(), to.UnixMilli())
}

func (r *RepositoryImpl) queryContactLogs(ctx context.Context, query string, args ...interface{}) ([]ContactLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query contact logs: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	logs := make([]ContactLog, 0, 10)
	for rows.Next() {
		var entry ContactLog
		var contactType string
		var timestampMillis int64
		if err := rows.Scan(&entry.ID, &entry.ClientID, &contactType, &timestampMillis, &entry.Agent, &entry.Outcome, &entry.Notes); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		entry.Type = ContactType(contactType)
		entry.Timestamp = time.UnixMilli(timestampMillis)
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func (r *RepositoryImpl) CountClientsByStage(ctx context.Context) (map[Stage]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT stage, COUNT(*) FROM client GROUP BY stage`)
	if err != nil {
		err := fmt.Errorf("could not count clients by stage: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Stage]int)
	for rows.Next() {
		var stage string
		var count int
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, err
		}
		counts[Stage(stage)] = count
	}
	return counts, rows.Err()
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func scanClient(scan func(dest ...interface{}) error) (Client, error) {
	var c Client
	var status, stage, tags string
	var createdAtMillis int64
	err := scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &status, &stage, &c.AssignedAgent, &tags, &c.Notes, &createdAtMillis)
	if err != nil {
		return Client{}, err
	}
	c.Status = Status(status)
	c.Stage = Stage(stage)
	c.CreatedAt = time.UnixMilli(createdAtMillis)
	if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
		return Client{}, fmt.Errorf("could not decode tags: %w", err)
	}
	return c, nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("could not encode tags: %w", err)
	}
	return string(encoded), nil
}
