package timeslot

import (
	"errors"
	"time"

	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

var (
	// ErrRequestNotFound is returned when accept/reject names an unknown request id.
	ErrRequestNotFound = errors.New("time slot request not found")
	// ErrRequestAlreadyResolved is returned on a transition out of a terminal state.
	ErrRequestAlreadyResolved = errors.New("time slot request already accepted or rejected")
	// ErrSlotConflict is returned when the requested interval no longer fits
	// the accepting agent's calendar at accept time.
	ErrSlotConflict = errors.New("requested time slot conflicts with the calendar")
	// ErrNotRecipient is returned when an agent tries to resolve a request
	// addressed to someone else.
	ErrNotRecipient = errors.New("request is not addressed to this agent")
)

// Request is a petition for a slot on a teammate's calendar. It is created
// pending; accepted and rejected are terminal states. Accepting materializes
// a calendar event on the recipient's calendar.
type Request struct {
	ID            string
	RequesterUid  string
	RequesterName string
	TeammateUid   string
	TeammateName  string
	Date          string // YYYY-MM-DD
	Start         calendar.TimeOfDay
	End           calendar.TimeOfDay
	Title         string
	Message       string
	Status        Status
	CreatedAt     time.Time
}

// NewRequest carries the caller-supplied fields of a request; the requester
// identity comes from the context, id/status/createdAt are assigned on create.
type NewRequest struct {
	TeammateUid string
	Date        string
	Start       calendar.TimeOfDay
	End         calendar.TimeOfDay
	Title       string
	Message     string
}

// Validate checks the request fields. Note that no minimum duration applies:
// the 30-minute rule is a slot discovery concern, a request may be shorter.
func (r *NewRequest) Validate() error {
	if r.TeammateUid == "" {
		return &calendar.ValidationError{Field: "teammateUid", Reason: "must not be empty"}
	}
	if r.Title == "" {
		return &calendar.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if _, err := calendar.ParseDate(r.Date); err != nil {
		return &calendar.ValidationError{Field: "date", Reason: err.Error()}
	}
	if r.Start >= r.End {
		return &calendar.ValidationError{Field: "startTime", Reason: "must be before endTime"}
	}
	return nil
}
