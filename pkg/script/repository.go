package script

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
	StoreScript(ctx context.Context, s Script) (int, error)
	GetScript(ctx context.Context, id int) (Script, error)
	ListScripts(ctx context.Context, category Category) ([]Script, error)
	UpdateScript(ctx context.Context, s Script) error
	DeleteScript(ctx context.Context, id int) error
	IncrementUsage(ctx context.Context, id int) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const scriptColumns = `id, title, category, content, tags, author, is_template, usage_count, created_at, updated_at`

func (r *RepositoryImpl) StoreScript(ctx context.Context, s Script) (int, error) {
	tags, err := marshalTags(s.Tags)
	if err != nil {
		return 0, err
	}
	query := `INSERT INTO script (title, category, content, tags, author, is_template, usage_count, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		s.Title, string(s.Category), s.Content, tags, s.Author, s.IsTemplate, s.UsageCount,
		s.CreatedAt.UnixMilli(), s.UpdatedAt.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not store script: %w", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *RepositoryImpl) GetScript(ctx context.Context, id int) (Script, error) {
	query := `SELECT ` + scriptColumns + ` FROM script WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	s, err := scanScript(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Script{}, ErrScriptNotFound
	} else if err != nil {
		log.Errorf("could not get script: %v", err)
		return Script{}, err
	}
	return s, nil
}

func (r *RepositoryImpl) ListScripts(ctx context.Context, category Category) ([]Script, error) {
	query := `SELECT ` + scriptColumns + ` FROM script`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY usage_count DESC, title`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query scripts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	scripts := make([]Script, 0, 10)
	for rows.Next() {
		s, err := scanScript(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		scripts = append(scripts, s)
	}
	return scripts, rows.Err()
}

func (r *RepositoryImpl) UpdateScript(ctx context.Context, s Script) error {
	tags, err := marshalTags(s.Tags)
	if err != nil {
		return err
	}
	query := `UPDATE script
              SET title = ?, category = ?, content = ?, tags = ?, author = ?, is_template = ?, updated_at = ?
              WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		s.Title, string(s.Category), s.Content, tags, s.Author, s.IsTemplate, s.UpdatedAt.UnixMilli(), s.ID)
	if err != nil {
		err := fmt.Errorf("could not update script: %w", err)
		log.Error(err)
		return err
	}
	return requireScriptAffected(result)
}

func (r *RepositoryImpl) DeleteScript(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM script WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not delete script: %w", err)
		log.Error(err)
		return err
	}
	return requireScriptAffected(result)
}

func (r *RepositoryImpl) IncrementUsage(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE script SET usage_count = usage_count + 1 WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not increment script usage: %w", err)
		log.Error(err)
		return err
	}
	return requireScriptAffected(result)
}

func requireScriptAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrScriptNotFound
	}
	return nil
}

func scanScript(scan func(dest ...interface{}) error) (Script, error) {
	var s Script
	var category, tags string
	var createdAtMillis, updatedAtMillis int64
	err := scan(&s.ID, &s.Title, &category, &s.Content, &tags, &s.Author, &s.IsTemplate, &s.UsageCount, &createdAtMillis, &updatedAtMillis)
	if err != nil {
		return Script{}, err
	}
	s.Category = Category(category)
	s.CreatedAt = time.UnixMilli(createdAtMillis)
	s.UpdatedAt = time.UnixMilli(updatedAtMillis)
	if err := json.Unmarshal([]byte(tags), &s.Tags); err != nil {
		return Script{}, fmt.Errorf("could not decode tags: %w", err)
	}
	return s, nil
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
