package calendar

import "fmt"

// Event is a single same-day calendar entry owned by one agent.
//
// Visible events are shown to teammates (title included) and block their view
// of this agent's availability. Time blocks always block availability but
// never reveal their title. An event that is neither visible nor a time block
// is private and transparent: teammates see the time as free.
type Event struct {
	ID          int
	Title       string
	Date        string // YYYY-MM-DD
	Start       TimeOfDay
	End         TimeOfDay
	Description string
	Location    string
	Color       string
	Attendees   []string
	Organizer   string
	Visible     bool
	TimeBlock   bool
}

// ValidationError reports a rejected field on event or request input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the event invariants: a title, a well-formed date, and
// start strictly before end within the same day.
func (e *Event) Validate() error {
	if e.Title == "" && !e.TimeBlock {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if _, err := ParseDate(e.Date); err != nil {
		return &ValidationError{Field: "date", Reason: err.Error()}
	}
	if e.Start >= e.End {
		return &ValidationError{Field: "startTime", Reason: "must be before endTime"}
	}
	return nil
}
