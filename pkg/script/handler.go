package script

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Acefayad2/CRM-Portal/internal/rest"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
	"github.com/gorilla/mux"
)

type Handler struct {
	service Service
}

type ScriptDTO struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Author     string   `json:"author"`
	IsTemplate bool     `json:"isTemplate"`
	UsageCount int      `json:"usageCount"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListScripts(w http.ResponseWriter, r *http.Request) {
	category := Category(r.URL.Query().Get("category"))
	scripts, err := h.service.ListScripts(r.Context(), category)
	if err != nil {
		writeScriptError(w, err)
		return
	}
	dtos := make([]ScriptDTO, 0, len(scripts))
	for _, s := range scripts {
		dtos = append(dtos, scriptToDTO(s))
	}
	writeScriptJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetScript(w http.ResponseWriter, r *http.Request) {
	id, ok := scriptIdVar(w, r)
	if !ok {
		return
	}
	s, err := h.service.GetScript(r.Context(), id)
	if err != nil {
		writeScriptError(w, err)
		return
	}
	writeScriptJSON(w, http.StatusOK, scriptToDTO(*s))
}

func (h *Handler) CreateScript(w http.ResponseWriter, r *http.Request) {
	var dto ScriptDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateScript(r.Context(), dtoToScript(dto))
	if err != nil {
		writeScriptError(w, err)
		return
	}
	writeScriptJSON(w, http.StatusCreated, scriptToDTO(*created))
}

func (h *Handler) UpdateScript(w http.ResponseWriter, r *http.Request) {
	id, ok := scriptIdVar(w, r)
	if !ok {
		return
	}
	var dto ScriptDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s := dtoToScript(dto)
	s.ID = id
	updated, err := h.service.UpdateScript(r.Context(), s)
	if err != nil {
		writeScriptError(w, err)
		return
	}
	writeScriptJSON(w, http.StatusOK, scriptToDTO(*updated))
}

func (h *Handler) DeleteScript(w http.ResponseWriter, r *http.Request) {
	id, ok := scriptIdVar(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteScript(r.Context(), id); err != nil {
		writeScriptError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	id, ok := scriptIdVar(w, r)
	if !ok {
		return
	}
	s, err := h.service.RecordUsage(r.Context(), id)
	if err != nil {
		writeScriptError(w, err)
		return
	}
	writeScriptJSON(w, http.StatusOK, scriptToDTO(*s))
}

func scriptIdVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["scriptId"])
	if err != nil {
		http.Error(w, "Invalid script id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeScriptJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeScriptError(w http.ResponseWriter, err error) {
	var validationErr *calendar.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeScriptJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid " + validationErr.Field,
			Details: validationErr.Reason,
		})
	case errors.Is(err, ErrScriptNotFound):
		http.Error(w, "script not found", http.StatusNotFound)
	case errors.Is(err, agent.ErrNoAgent):
		http.Error(w, "no agent in request", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func scriptToDTO(s Script) ScriptDTO {
	return ScriptDTO{
		ID:         s.ID,
		Title:      s.Title,
		Category:   string(s.Category),
		Content:    s.Content,
		Tags:       s.Tags,
		Author:     s.Author,
		IsTemplate: s.IsTemplate,
		UsageCount: s.UsageCount,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  s.UpdatedAt.Format(time.RFC3339),
	}
}

func dtoToScript(dto ScriptDTO) Script {
	return Script{
		ID:         dto.ID,
		Title:      dto.Title,
		Category:   Category(dto.Category),
		Content:    dto.Content,
		Tags:       dto.Tags,
		Author:     dto.Author,
		IsTemplate: dto.IsTemplate,
	}
}
