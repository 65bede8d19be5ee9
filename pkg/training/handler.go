package training

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/gorilla/mux"
)

type Handler struct {
	service Service
}

type LessonDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Type        string `json:"type"`
	Content     string `json:"content,omitempty"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type ModuleDTO struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Category        string      `json:"category"`
	Description     string      `json:"description,omitempty"`
	Duration        string      `json:"duration,omitempty"`
	Tags            []string    `json:"tags"`
	Lessons         []LessonDTO `json:"lessons"`
	ProgressPercent int         `json:"progressPercent"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	category := ModuleCategory(r.URL.Query().Get("category"))
	modules, err := h.service.ListModules(r.Context(), category)
	if err != nil {
		writeTrainingError(w, err)
		return
	}
	dtos := make([]ModuleDTO, 0, len(modules))
	for _, p := range modules {
		dtos = append(dtos, progressToDTO(p))
	}
	writeTrainingJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetModule(w http.ResponseWriter, r *http.Request) {
	moduleId := mux.Vars(r)["moduleId"]
	p, err := h.service.GetModule(r.Context(), moduleId)
	if err != nil {
		writeTrainingError(w, err)
		return
	}
	writeTrainingJSON(w, http.StatusOK, progressToDTO(*p))
}

func (h *Handler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonId := mux.Vars(r)["lessonId"]
	p, err := h.service.CompleteLesson(r.Context(), lessonId)
	if err != nil {
		writeTrainingError(w, err)
		return
	}
	writeTrainingJSON(w, http.StatusOK, progressToDTO(*p))
}

func (h *Handler) ResetLesson(w http.ResponseWriter, r *http.Request) {
	lessonId := mux.Vars(r)["lessonId"]
	p, err := h.service.ResetLesson(r.Context(), lessonId)
	if err != nil {
		writeTrainingError(w, err)
		return
	}
	writeTrainingJSON(w, http.StatusOK, progressToDTO(*p))
}

func writeTrainingJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeTrainingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrModuleNotFound):
		http.Error(w, "training module not found", http.StatusNotFound)
	case errors.Is(err, ErrLessonNotFound):
		http.Error(w, "lesson not found", http.StatusNotFound)
	case errors.Is(err, agent.ErrNoAgent):
		http.Error(w, "no agent in request", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func progressToDTO(p Progress) ModuleDTO {
	lessons := make([]LessonDTO, 0, len(p.Module.Lessons))
	for _, lesson := range p.Module.Lessons {
		dto := LessonDTO{
			ID:          lesson.ID,
			Title:       lesson.Title,
			Description: lesson.Description,
			Duration:    lesson.Duration,
			Type:        string(lesson.Type),
			Content:     lesson.Content,
		}
		if completedAt, ok := p.CompletedLessons[lesson.ID]; ok {
			dto.Completed = true
			dto.CompletedAt = completedAt.Format(time.RFC3339)
		}
		lessons = append(lessons, dto)
	}
	tags := p.Module.Tags
	if tags == nil {
		tags = []string{}
	}
	return ModuleDTO{
		ID:              p.Module.ID,
		Title:           p.Module.Title,
		Category:        string(p.Module.Category),
		Description:     p.Module.Description,
		Duration:        p.Module.Duration,
		Tags:            tags,
		Lessons:         lessons,
		ProgressPercent: p.Percent(),
	}
}
