package training

import (
	"errors"
	"time"
)

var (
	ErrModuleNotFound = errors.New("training module not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

type ModuleCategory string

const (
	CategoryLicensing   ModuleCategory = "licensing"
	CategoryCFT         ModuleCategory = "cft"
	CategoryAppointment ModuleCategory = "appointment"
)

type LessonType string

const (
	LessonVideo    LessonType = "video"
	LessonReading  LessonType = "reading"
	LessonQuiz     LessonType = "quiz"
	LessonPractice LessonType = "practice"
)

type Module struct {
	ID          string
	Title       string
	Category    ModuleCategory
	Description string
	Duration    string
	Tags        []string
	Lessons     []Lesson
}

type Lesson struct {
	ID          string
	ModuleID    string
	Title       string
	Description string
	Duration    string
	Type        LessonType
	Content     string
	Position    int
}

// Progress is a module enriched with the calling agent's completion state.
type Progress struct {
	Module           Module
	CompletedLessons map[string]time.Time
}

// Percent returns the share of lessons completed, 0 to 100.
func (p Progress) Percent() int {
	if len(p.Module.Lessons) == 0 {
		return 0
	}
	return 100 * len(p.CompletedLessons) / len(p.Module.Lessons)
}
