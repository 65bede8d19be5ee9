package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Acefayad2/CRM-Portal/internal/rest"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/gorilla/mux"
)

type Handler struct {
	calendar *Service
}

type EventDTO struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Color       string   `json:"color,omitempty"`
	Attendees   []string `json:"attendees"`
	Organizer   string   `json:"organizer,omitempty"`
	IsVisible   bool     `json:"isVisible"`
	IsTimeBlock bool     `json:"isTimeBlock"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	var events []Event
	var err error
	if date := r.URL.Query().Get("date"); date != "" {
		events, err = h.calendar.GetEventsForDate(r.Context(), date)
	} else {
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")
		events, err = h.calendar.GetEventsForRange(r.Context(), from, to)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}

	added, err := h.calendar.AddEvent(r.Context(), event)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(*added)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventId, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}
	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}
	event.ID = eventId

	modified, err := h.calendar.ModifyEvent(r.Context(), event)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(*modified)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}
	if err := h.calendar.DeleteEvent(r.Context(), eventId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeEvent(w http.ResponseWriter, r *http.Request) (Event, bool) {
	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Event{}, false
	}
	event, err := dtoToEvent(dto)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid event",
			Details: err.Error(),
		})
		return Event{}, false
	}
	return event, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid " + validationErr.Field,
			Details: validationErr.Reason,
		})
	case errors.Is(err, ErrEventNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, agent.ErrNoAgent):
		http.Error(w, "no agent in request", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func eventToDTO(e Event) EventDTO {
	attendees := e.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		StartTime:   e.Start.String(),
		EndTime:     e.End.String(),
		Description: e.Description,
		Location:    e.Location,
		Color:       e.Color,
		Attendees:   attendees,
		Organizer:   e.Organizer,
		IsVisible:   e.Visible,
		IsTimeBlock: e.TimeBlock,
	}
}

func dtoToEvent(dto EventDTO) (Event, error) {
	start, err := ParseTimeOfDay(dto.StartTime)
	if err != nil {
		return Event{}, &ValidationError{Field: "startTime", Reason: err.Error()}
	}
	end, err := ParseTimeOfDay(dto.EndTime)
	if err != nil {
		return Event{}, &ValidationError{Field: "endTime", Reason: err.Error()}
	}
	return Event{
		ID:          dto.ID,
		Title:       dto.Title,
		Date:        dto.Date,
		Start:       start,
		End:         end,
		Description: dto.Description,
		Location:    dto.Location,
		Color:       dto.Color,
		Attendees:   dto.Attendees,
		Organizer:   dto.Organizer,
		Visible:     dto.IsVisible,
		TimeBlock:   dto.IsTimeBlock,
	}, nil
}
