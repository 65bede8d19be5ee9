package timeslot

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Acefayad2/CRM-Portal/internal/rest"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
	"github.com/gorilla/mux"
)

type Handler struct {
	service Service
}

type NewRequestDTO struct {
	TeammateUid string `json:"teammateUid"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Title       string `json:"title"`
	Message     string `json:"message"`
}

type RequestDTO struct {
	ID            string `json:"id"`
	RequesterUid  string `json:"requesterUid"`
	RequesterName string `json:"requesterName"`
	TeammateUid   string `json:"teammateUid"`
	TeammateName  string `json:"teammateName"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Title         string `json:"title"`
	Message       string `json:"message,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

type AcceptResponseDTO struct {
	Request RequestDTO        `json:"request"`
	Event   calendar.EventDTO `json:"event"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var dto NewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start, err := calendar.ParseTimeOfDay(dto.StartTime)
	if err != nil {
		writeValidationError(w, "startTime", err.Error())
		return
	}
	end, err := calendar.ParseTimeOfDay(dto.EndTime)
	if err != nil {
		writeValidationError(w, "endTime", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), NewRequest{
		TeammateUid: dto.TeammateUid,
		Date:        dto.Date,
		Start:       start,
		End:         end,
		Title:       dto.Title,
		Message:     dto.Message,
	})
	if err != nil {
		writeRequestError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(requestToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	direction := r.URL.Query().Get("direction")

	var requests []Request
	var err error
	switch direction {
	case "", "received":
		requests, err = h.service.ListReceived(r.Context(), status)
	case "sent":
		requests, err = h.service.ListSent(r.Context(), status)
	default:
		writeValidationError(w, "direction", "must be 'received' or 'sent'")
		return
	}
	if err != nil {
		writeRequestError(w, err)
		return
	}
	writeRequestList(w, requests)
}

func (h *Handler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.Pending(r.Context())
	if err != nil {
		writeRequestError(w, err)
		return
	}
	writeRequestList(w, requests)
}

func (h *Handler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	requestId := mux.Vars(r)["requestId"]
	accepted, event, err := h.service.Accept(r.Context(), requestId)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	response := AcceptResponseDTO{
		Request: requestToDTO(*accepted),
		Event: calendar.EventDTO{
			ID:          event.ID,
			Title:       event.Title,
			Date:        event.Date,
			StartTime:   event.Start.String(),
			EndTime:     event.End.String(),
			Description: event.Description,
			Color:       event.Color,
			Attendees:   event.Attendees,
			Organizer:   event.Organizer,
			IsVisible:   event.Visible,
			IsTimeBlock: event.TimeBlock,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestId := mux.Vars(r)["requestId"]
	rejected, err := h.service.Reject(r.Context(), requestId)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(requestToDTO(*rejected)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeRequestList(w http.ResponseWriter, requests []Request) {
	dtos := make([]RequestDTO, 0, len(requests))
	for _, request := range requests {
		dtos = append(dtos, requestToDTO(request))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeValidationError(w http.ResponseWriter, field, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   "Invalid " + field,
		Details: details,
	})
}

func writeRequestError(w http.ResponseWriter, err error) {
	var validationErr *calendar.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeValidationError(w, validationErr.Field, validationErr.Reason)
	case errors.Is(err, agent.ErrAgentNotFound):
		http.Error(w, "teammate not found", http.StatusNotFound)
	case errors.Is(err, ErrRequestNotFound):
		http.Error(w, "request not found", http.StatusNotFound)
	case errors.Is(err, ErrNotRecipient):
		http.Error(w, "request is addressed to another agent", http.StatusForbidden)
	case errors.Is(err, ErrRequestAlreadyResolved):
		http.Error(w, "request already accepted or rejected", http.StatusConflict)
	case errors.Is(err, ErrSlotConflict):
		http.Error(w, "requested time slot is no longer available", http.StatusConflict)
	case errors.Is(err, agent.ErrNoAgent):
		http.Error(w, "no agent in request", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func requestToDTO(request Request) RequestDTO {
	return RequestDTO{
		ID:            request.ID,
		RequesterUid:  request.RequesterUid,
		RequesterName: request.RequesterName,
		TeammateUid:   request.TeammateUid,
		TeammateName:  request.TeammateName,
		Date:          request.Date,
		StartTime:     request.Start.String(),
		EndTime:       request.End.String(),
		Title:         request.Title,
		Message:       request.Message,
		Status:        string(request.Status),
		CreatedAt:     request.CreatedAt.Format(time.RFC3339),
	}
}
