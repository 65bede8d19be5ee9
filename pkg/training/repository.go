package training

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
	ListModules(ctx context.Context, category ModuleCategory) ([]Module, error)
	GetModule(ctx context.Context, moduleId string) (Module, error)
	GetLesson(ctx context.Context, lessonId string) (Lesson, error)
	GetCompletions(ctx context.Context, agentId int, moduleId string) (map[string]time.Time, error)
	MarkCompleted(ctx context.Context, agentId int, lessonId string, completedAt time.Time) error
	UnmarkCompleted(ctx context.Context, agentId int, lessonId string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListModules(ctx context.Context, category ModuleCategory) ([]Module, error) {
	query := `SELECT id, title, category, description, duration, tags FROM training_module`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query training modules: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	modules := make([]Module, 0, 10)
	for rows.Next() {
		m, err := scanModule(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range modules {
		lessons, err := r.lessonsForModule(ctx, modules[i].ID)
		if err != nil {
			return nil, err
		}
		modules[i].Lessons = lessons
	}
	return modules, nil
}

func (r *RepositoryImpl) GetModule(ctx context.Context, moduleId string) (Module, error) {
	query := `SELECT id, title, category, description, duration, tags FROM training_module WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, moduleId)
	m, err := scanModule(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Module{}, ErrModuleNotFound
	} else if err != nil {
		log.Errorf("could not get training module: %v", err)
		return Module{}, err
	}
	m.Lessons, err = r.lessonsForModule(ctx, m.ID)
	if err != nil {
		return Module{}, err
	}
	return m, nil
}

func (r *RepositoryImpl) GetLesson(ctx context.Context, lessonId string) (Lesson, error) {
	query := `SELECT id, module_id, title, description, duration, type, content, position
              FROM lesson WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, lessonId)
	lesson, err := scanLesson(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Lesson{}, ErrLessonNotFound
	} else if err != nil {
		log.Errorf("could not get lesson: %v", err)
		return Lesson{}, err
	}
	return lesson, nil
}

func (r *RepositoryImpl) lessonsForModule(ctx context.Context, moduleId string) ([]Lesson, error) {
	query := `SELECT id, module_id, title, description, duration, type, content, position
              FROM lesson WHERE module_id = ? ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, query, moduleId)
	if err != nil {
		err := fmt.Errorf("could not query lessons: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	lessons := make([]Lesson, 0, 10)
	for rows.Next() {
		lesson, err := scanLesson(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, rows.Err()
}

func (r *RepositoryImpl) GetCompletions(ctx context.Context, agentId int, moduleId string) (map[string]time.Time, error) {
	query := `SELECT lc.lesson_id, lc.completed_at
              FROM lesson_completion lc
              JOIN lesson l ON l.id = lc.lesson_id
              WHERE lc.agent_id = ? AND l.module_id = ?`
	rows, err := r.db.QueryContext(ctx, query, agentId, moduleId)
	if err != nil {
		err := fmt.Errorf("could not query lesson completions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	completions := make(map[string]time.Time)
	for rows.Next() {
		var lessonId string
		var completedAtMillis int64
		if err := rows.Scan(&lessonId, &completedAtMillis); err != nil {
			return nil, err
		}
		completions[lessonId] = time.UnixMilli(completedAtMillis)
	}
	return completions, rows.Err()
}

func (r *RepositoryImpl) MarkCompleted(ctx context.Context, agentId int, lessonId string, completedAt time.Time) error {
	// Re-completing a lesson keeps the original completion time.
	query := `INSERT INTO lesson_completion (agent_id, lesson_id, completed_at)
              VALUES (?, ?, ?)
              ON CONFLICT (agent_id, lesson_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, agentId, lessonId, completedAt.UnixMilli()); err != nil {
		err := fmt.Errorf("could not mark lesson completed: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) UnmarkCompleted(ctx context.Context, agentId int, lessonId string) error {
	query := `DELETE FROM lesson_completion WHERE agent_id = ? AND lesson_id = ?`
	if _, err := r.db.ExecContext(ctx, query, agentId, lessonId); err != nil {
		err := fmt.Errorf("could not unmark lesson completion: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func scanModule(scan func(dest ...interface{}) error) (Module, error) {
	var m Module
	var category, tags string
	if err := scan(&m.ID, &m.Title, &category, &m.Description, &m.Duration, &tags); err != nil {
		return Module{}, err
	}
	m.Category = ModuleCategory(category)
	if err := json.Unmarshal([]byte(tags), &m.Tags); err != nil {
		return Module{}, fmt.Errorf("could not decode tags: %w", err)
	}
	return m, nil
}

func scanLesson(scan func(dest ...interface{}) error) (Lesson, error) {
	var l Lesson
	var lessonType string
	err := scan(&l.ID, &l.ModuleID, &l.Title, &l.Description, &l.Duration, &lessonType, &l.Content, &l.Position)
	if err != nil {
		return Lesson{}, err
	}
	l.Type = LessonType(lessonType)
	return l, nil
}
