package event_bus

const (
	TimeSlotRequestCreatedEvent  EventType = "timeslot.request.created"
	TimeSlotRequestAcceptedEvent EventType = "timeslot.request.accepted"
	TimeSlotRequestRejectedEvent EventType = "timeslot.request.rejected"
	CalendarEventCreatedEvent    EventType = "calendar.event.created"
)

type TimeSlotRequestCreated struct {
	RequestID     string
	RequesterName string
	TeammateID    string
	TeammateName  string
	Date          string
	StartTime     string
	EndTime       string
	Title         string
}

type TimeSlotRequestAccepted struct {
	RequestID     string
	RequesterName string
	TeammateID    string
	// EventID is the calendar event materialized from the accepted request.
	EventID int
}

type TimeSlotRequestRejected struct {
	RequestID  string
	TeammateID string
}

type CalendarEventCreated struct {
	EventID   int
	Title     string
	Date      string
	StartTime string
	EndTime   string
}
