package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	StoreRequest(ctx context.Context, request Request) error
	GetRequest(ctx context.Context, id string) (Request, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	ListReceived(ctx context.Context, teammateUid string, status Status) ([]Request, error)
	ListSent(ctx context.Context, requesterUid string, status Status) ([]Request, error)

	// GetBusyEventsForDate and StoreDerivedEvent touch the calendar_event
	// table so that the accept path can re-check availability and append the
	// derived event inside the same transaction that flips the status.
	GetBusyEventsForDate(ctx context.Context, agentId int, date string) ([]calendar.Event, error)
	StoreDerivedEvent(ctx context.Context, agentId int, event calendar.Event) (int, error)
}

type RepositoryImpl struct {
	db       *sql.DB
	tx       *sql.Tx
	calendar *calendar.RepositoryImpl
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db, calendar: calendar.NewRepository(db)}
}

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
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepositoryImpl{db: r.db, tx: tx, calendar: r.calendar}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) StoreRequest(ctx context.Context, request Request) error {
	query := `INSERT INTO time_slot_request (
                            id,
                            requester_uid,
                            requester_name,
                            teammate_uid,
                            teammate_name,
                            date,
                            start_time,
                            end_time,
                            title,
                            message,
                            status,
                            created_at
						) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.getQueryer().ExecContext(ctx, query,
		request.ID,
		request.RequesterUid,
		request.RequesterName,
		request.TeammateUid,
		request.TeammateName,
		request.Date,
		request.Start.String(),
		request.End.String(),
		request.Title,
		request.Message,
		string(request.Status),
		request.CreatedAt.UnixMilli(),
	)
	if err != nil {
		err := fmt.Errorf("could not store time slot request: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

const requestColumns = `id, requester_uid, requester_name, teammate_uid, teammate_name, date, start_time, end_time, title, message, status, created_at`

func (r *RepositoryImpl) GetRequest(ctx context.Context, id string) (Request, error) {
	query := `SELECT ` + requestColumns + ` FROM time_slot_request WHERE id = ?`
	row := r.getQueryer().QueryRowContext(ctx, query, id)
	request, err := scanRequest(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Request{}, ErrRequestNotFound
	} else if err != nil {
		log.Errorf("could not get time slot request: %v", err)
		return Request{}, err
	}
	return request, nil
}

func (r *RepositoryImpl) UpdateStatus(ctx context.Context, id string, status Status) error {
	result, err := r.getQueryer().ExecContext(ctx,
		`UPDATE time_slot_request SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		err := fmt.Errorf("could not update time slot request status: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *RepositoryImpl) ListReceived(ctx context.Context, teammateUid string, status Status) ([]Request, error) {
	return r.listRequests(ctx, "teammate_uid", teammateUid, status)
}

func (r *RepositoryImpl) ListSent(ctx context.Context, requesterUid string, status Status) ([]Request, error) {
	return r.listRequests(ctx, "requester_uid", requesterUid, status)
}

func (r *RepositoryImpl) listRequests(ctx context.Context, column, uid string, status Status) ([]Request, error) {
	// Oldest first: pending views drive a "needs action" list.
	query := `SELECT ` + requestColumns + ` FROM time_slot_request WHERE ` + column + ` = ?`
	args := []interface{}{uid}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.getQueryer().QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query time slot requests: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	requests := make([]Request, 0, 10)
	for rows.Next() {
		request, err := scanRequest(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

// GetBusyEventsForDate loads the intervals that block the agent's calendar on
// the given date: visible events and time blocks.
func (r *RepositoryImpl) GetBusyEventsForDate(ctx context.Context, agentId int, date string) ([]calendar.Event, error) {
	query := `SELECT start_time, end_time, is_visible, is_time_block
              FROM calendar_event
              WHERE agent_id = ? AND date = ? AND (is_visible = 1 OR is_time_block = 1)
              ORDER BY start_time`
	rows, err := r.getQueryer().QueryContext(ctx, query, agentId, date)
	if err != nil {
		err := fmt.Errorf("could not query busy events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]calendar.Event, 0, 10)
	for rows.Next() {
		var startTime, endTime string
		var event calendar.Event
		if err := rows.Scan(&startTime, &endTime, &event.Visible, &event.TimeBlock); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		if event.Start, err = calendar.ParseTimeOfDay(startTime); err != nil {
			return nil, err
		}
		if event.End, err = calendar.ParseTimeOfDay(endTime); err != nil {
			return nil, err
		}
		event.Date = date
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *RepositoryImpl) StoreDerivedEvent(ctx context.Context, agentId int, event calendar.Event) (int, error) {
	var eventId int
	store := func(repo calendar.Repository) error {
		id, err := repo.StoreEvent(ctx, agentId, event)
		if err != nil {
			return err
		}
		eventId = id
		return nil
	}
	if r.tx != nil {
		if err := store(r.calendar.WithTx(r.tx)); err != nil {
			return 0, err
		}
		return eventId, nil
	}
	if err := store(r.calendar); err != nil {
		return 0, err
	}
	return eventId, nil
}

func scanRequest(scan func(dest ...interface{}) error) (Request, error) {
	var request Request
	var startTime, endTime, status string
	var createdAtMillis int64
	err := scan(
		&request.ID,
		&request.RequesterUid,
		&request.RequesterName,
		&request.TeammateUid,
		&request.TeammateName,
		&request.Date,
		&startTime,
		&endTime,
		&request.Title,
		&request.Message,
		&status,
		&createdAtMillis,
	)
	if err != nil {
		return Request{}, err
	}
	if request.Start, err = calendar.ParseTimeOfDay(startTime); err != nil {
		return Request{}, err
	}
	if request.End, err = calendar.ParseTimeOfDay(endTime); err != nil {
		return Request{}, err
	}
	request.Status = Status(status)
	request.CreatedAt = time.UnixMilli(createdAtMillis)
	return request, nil
}
