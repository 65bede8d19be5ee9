package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("calendar event not found")

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	StoreEvent(ctx context.Context, agentId int, event Event) (int, error)
	GetEvent(ctx context.Context, agentId int, eventId int) (Event, error)
	GetEventsForDate(ctx context.Context, agentId int, date string) ([]Event, error)
	GetEventsForRange(ctx context.Context, agentId int, from, to string) ([]Event, error)
	UpdateEvent(ctx context.Context, agentId int, event Event) error
	DeleteEvent(ctx context.Context, agentId int, eventId int) error
}

type RepositoryImpl struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db, tx: nil}
}

// WithTx returns a repository bound to an already open transaction. Used by
// packages that need to write a calendar event atomically with their own rows.
func (r *RepositoryImpl) WithTx(tx *sql.Tx) *RepositoryImpl {
	return &RepositoryImpl{db: r.db, tx: tx}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepositoryImpl) getQueryer() interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	if r.tx != nil {
		// Already inside a transaction; reuse it.
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepositoryImpl{db: r.db, tx: tx}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, agentId int, event Event) (int, error) {
	attendees, err := marshalAttendees(event.Attendees)
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO calendar_event (
                            agent_id,
                            title,
                            date,
                            start_time,
                            end_time,
                            description,
                            location,
                            color,
                            attendees,
                            organizer,
                            is_visible,
                            is_time_block
						) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.getQueryer().ExecContext(ctx, query,
		agentId,
		event.Title,
		event.Date,
		event.Start.String(),
		event.End.String(),
		event.Description,
		event.Location,
		event.Color,
		attendees,
		event.Organizer,
		event.Visible,
		event.TimeBlock,
	)
	if err != nil {
		err := fmt.Errorf("could not store calendar event: %w", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

const eventColumns = `id, title, date, start_time, end_time, description, location, color, attendees, organizer, is_visible, is_time_block`

func (r *RepositoryImpl) GetEvent(ctx context.Context, agentId int, eventId int) (Event, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_event WHERE agent_id = ? AND id = ?`
	row := r.getQueryer().QueryRowContext(ctx, query, agentId, eventId)
	event, err := scanEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrEventNotFound
	} else if err != nil {
		log.Errorf("could not get calendar event: %v", err)
		return Event{}, err
	}
	return event, nil
}

func (r *RepositoryImpl) GetEventsForDate(ctx context.Context, agentId int, date string) ([]Event, error) {
	query := `SELECT ` + eventColumns + `
              FROM calendar_event
              WHERE agent_id = ? AND date = ?
              ORDER BY start_time, id`
	return r.queryEvents(ctx, query, agentId, date)
}

func (r *RepositoryImpl) GetEventsForRange(ctx context.Context, agentId int, from, to string) ([]Event, error) {
	query := `SELECT ` + eventColumns + `
              FROM calendar_event
              WHERE agent_id = ? AND date >= ? AND date <= ?
              ORDER BY date, start_time, id`
	return r.queryEvents(ctx, query, agentId, from, to)
}

func (r *RepositoryImpl) queryEvents(ctx context.Context, query string, args ...interface{}) ([]Event, error) {
	rows, err := r.getQueryer().QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query calendar events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, agentId int, event Event) error {
	attendees, err := marshalAttendees(event.Attendees)
	if err != nil {
		return err
	}
	query := `UPDATE calendar_event
              SET title = ?, date = ?, start_time = ?, end_time = ?, description = ?, location = ?,
                  color = ?, attendees = ?, organizer = ?, is_visible = ?, is_time_block = ?
              WHERE id = ? AND agent_id = ?`
	result, err := r.getQueryer().ExecContext(ctx, query,
		event.Title,
		event.Date,
		event.Start.String(),
		event.End.String(),
		event.Description,
		event.Location,
		event.Color,
		attendees,
		event.Organizer,
		event.Visible,
		event.TimeBlock,
		event.ID,
		agentId,
	)
	if err != nil {
		err := fmt.Errorf("could not update calendar event: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, agentId int, eventId int) error {
	result, err := r.getQueryer().ExecContext(ctx, `DELETE FROM calendar_event WHERE id = ? AND agent_id = ?`, eventId, agentId)
	if err != nil {
		err := fmt.Errorf("could not delete calendar event: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvent(scan func(dest ...interface{}) error) (Event, error) {
	var event Event
	var startTime, endTime, attendees string
	err := scan(
		&event.ID,
		&event.Title,
		&event.Date,
		&startTime,
		&endTime,
		&event.Description,
		&event.Location,
		&event.Color,
		&attendees,
		&event.Organizer,
		&event.Visible,
		&event.TimeBlock,
	)
	if err != nil {
		return Event{}, err
	}
	if event.Start, err = ParseTimeOfDay(startTime); err != nil {
		return Event{}, err
	}
	if event.End, err = ParseTimeOfDay(endTime); err != nil {
		return Event{}, err
	}
	if err := json.Unmarshal([]byte(attendees), &event.Attendees); err != nil {
		return Event{}, fmt.Errorf("could not decode attendees: %w", err)
	}
	return event, nil
}

func marshalAttendees(attendees []string) (string, error) {
	if attendees == nil {
		attendees = []string{}
	}
	encoded, err := json.Marshal(attendees)
	if err != nil {
		return "", fmt.Errorf("could not encode attendees: %w", err)
	}
	return string(encoded), nil
}
