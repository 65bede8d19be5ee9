package client

import (
	"errors"
	"time"

	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
)

var ErrClientNotFound = errors.New("client not found")

type Status string

const (
	StatusNewLead         Status = "New Lead"
	StatusWorking         Status = "Working"
	StatusPresentationSet Status = "Presentation Set"
	StatusFollowUp        Status = "Follow-Up"
	StatusLost            Status = "Lost"
	StatusDoNotContact    Status = "Do Not Contact"
)

type Stage string

const (
	StageProspect    Stage = "Prospect"
	StageQualified   Stage = "Qualified"
	StageProposal    Stage = "Proposal"
	StageNegotiation Stage = "Negotiation"
	StageClosedWon   Stage = "Closed Won"
	StageClosedLost  Stage = "Closed Lost"
)

// Stages in pipeline order, used by the board view and by stats.
var Stages = []Stage{StageProspect, StageQualified, StageProposal, StageNegotiation, StageClosedWon, StageClosedLost}

var Statuses = []Status{StatusNewLead, StatusWorking, StatusPresentationSet, StatusFollowUp, StatusLost, StatusDoNotContact}

type Client struct {
	ID            int
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Status        Status
	Stage         Stage
	AssignedAgent string
	Tags          []string
	Notes         string
	CreatedAt     time.Time
}

type ContactType string

const (
	ContactCall    ContactType = "call"
	ContactText    ContactType = "text"
	ContactEmail   ContactType = "email"
	ContactMeeting ContactType = "meeting"
)

// ContactLog records one touch point with a client.
type ContactLog struct {
	ID        int
	ClientID  int
	Type      ContactType
	Timestamp time.Time
	Agent     string
	Outcome   string
	Notes     string
}

func (c *Client) Validate() error {
	if c.FirstName == "" {
		return &calendar.ValidationError{Field: "firstName", Reason: "must not be empty"}
	}
	if c.LastName == "" {
		return &calendar.ValidationError{Field: "lastName", Reason: "must not be empty"}
	}
	if c.Status != "" && !validStatus(c.Status) {
		return &calendar.ValidationError{Field: "status", Reason: "unknown status"}
	}
	if c.Stage != "" && !validStage(c.Stage) {
		return &calendar.ValidationError{Field: "stage", Reason: "unknown stage"}
	}
	return nil
}

func (l *ContactLog) Validate() error {
	switch l.Type {
	case ContactCall, ContactText, ContactEmail, ContactMeeting:
		return nil
	}
	return &calendar.ValidationError{Field: "type", Reason: "must be call, text, email or meeting"}
}

func validationError(field, reason string) error {
	return &calendar.ValidationError{Field: field, Reason: reason}
}

func validStatus(s Status) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func validStage(s Stage) bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}
