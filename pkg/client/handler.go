package client

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

type ClientDTO struct {
	ID            int      `json:"id"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Status        string   `json:"status"`
	Stage         string   `json:"stage"`
	AssignedAgent string   `json:"assignedAgent"`
	Tags          []string `json:"tags"`
	Notes         string   `json:"notes,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

type ContactLogDTO struct {
	ID        int    `json:"id"`
	ClientID  int    `json:"clientId"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Agent     string `json:"agent"`
	Outcome   string `json:"outcome,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type MoveStageDTO struct {
	Stage string `json:"stage"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	stage := Stage(r.URL.Query().Get("stage"))
	clients, err := h.service.ListClients(r.Context(), status, stage)
	if err != nil {
		writeClientError(w, err)
		return
	}
	dtos := make([]ClientDTO, 0, len(clients))
	for _, c := range clients {
		dtos = append(dtos, clientToDTO(c))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIdVar(w, r)
	if !ok {
		return
	}
	c, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		writeClientError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientToDTO(*c))
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var dto ClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateClient(r.Context(), dtoToClient(dto))
	if err != nil {
		writeClientError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clientToDTO(*created))
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIdVar(w, r)
	if !ok {
		return
	}
	var dto ClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c := dtoToClient(dto)
	c.ID = id
	updated, err := h.service.UpdateClient(r.Context(), c)
	if err != nil {
		writeClientError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientToDTO(*updated))
}

func (h *Handler) MoveToStage(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIdVar(w, r)
	if !ok {
		return
	}
	var dto MoveStageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	moved, err := h.service.MoveToStage(r.Context(), id, Stage(dto.Stage))
	if err != nil {
		writeClientError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientToDTO(*moved))
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIdVar(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteClient(r.Context(), id); err != nil {
		writeClientError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LogContact(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIdVar(w, r)
	if !ok {
		return
	}
	var dto ContactLogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry := ContactLog{
		ClientID: id,
		Type:     ContactType(dto.Type),
		Agent:    dto.Agent,
		Outcome:  dto.Outcome,
		Notes:    dto.Notes,
	}
	if dto.Timestamp != "" {
		timestamp, err := time.Parse(time.RFC3339, dto.Timestamp)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid timestamp", Details: err.Error()})
			return
		}
		entry.Timestamp = timestamp
	}
	created, err := h.service.LogContact(r.Context(), entry)
	if err != nil {
		writeClientError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contactLogToDTO(*created))
}

func (h *Handler) ContactHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := clientIdVar(w, r)
	if !ok {
		return
	}
	logs, err := h.service.ContactHistory(r.Context(), id)
	if err != nil {
		writeClientError(w, err)
		return
	}
	dtos := make([]ContactLogDTO, 0, len(logs))
	for _, entry := range logs {
		dtos = append(dtos, contactLogToDTO(entry))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func clientIdVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["clientId"])
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeClientError(w http.ResponseWriter, err error) {
	var validationErr *calendar.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid " + validationErr.Field,
			Details: validationErr.Reason,
		})
	case errors.Is(err, ErrClientNotFound):
		http.Error(w, "client not found", http.StatusNotFound)
	case errors.Is(err, agent.ErrNoAgent):
		http.Error(w, "no agent in request", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func clientToDTO(c Client) ClientDTO {
	return ClientDTO{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		Phone:         c.Phone,
		Status:        string(c.Status),
		Stage:         string(c.Stage),
		AssignedAgent: c.AssignedAgent,
		Tags:          c.Tags,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}

func dtoToClient(dto ClientDTO) Client {
	return Client{
		ID:            dto.ID,
		FirstName:     dto.FirstName,
		LastName:      dto.LastName,
		Email:         dto.Email,
		Phone:         dto.Phone,
		Status:        Status(dto.Status),
		Stage:         Stage(dto.Stage),
		AssignedAgent: dto.AssignedAgent,
		Tags:          dto.Tags,
		Notes:         dto.Notes,
	}
}

func contactLogToDTO(entry ContactLog) ContactLogDTO {
	return ContactLogDTO{
		ID:        entry.ID,
		ClientID:  entry.ClientID,
		Type:      string(entry.Type),
		Timestamp: entry.Timestamp.Format(time.RFC3339),
		Agent:     entry.Agent,
		Outcome:   entry.Outcome,
		Notes:     entry.Notes,
	}
}
