package script

import (
	"errors"
	"time"

	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
)

var ErrScriptNotFound = errors.New("script not found")

type Category string

const (
	CategoryColdCall     Category = "Cold Call"
	CategoryFollowUp     Category = "Follow-Up"
	CategoryPresentation Category = "Presentation"
	CategoryObjection    Category = "Objection Handling"
	CategoryClosing      Category = "Closing"
	CategoryRecruiting   Category = "Recruiting"
)

var Categories = []Category{
	CategoryColdCall,
	CategoryFollowUp,
	CategoryPresentation,
	CategoryObjection,
	CategoryClosing,
	CategoryRecruiting,
}

// Script is a saved call or message template. UsageCount tracks how many
// times agents copied it, so the library can sort by popularity.
type Script struct {
	ID         int
	Title      string
	Category   Category
	Content    string
	Tags       []string
	Author     string
	IsTemplate bool
	UsageCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Script) Validate() error {
	if s.Title == "" {
		return &calendar.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !validCategory(s.Category) {
		return &calendar.ValidationError{Field: "category", Reason: "unknown category"}
	}
	return nil
}

func validCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
