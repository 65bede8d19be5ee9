package availability

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Acefayad2/CRM-Portal/internal/rest"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

type SlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	// DurationMinutes is convenience for the slot picker UI.
	DurationMinutes int `json:"durationMinutes"`
}

type BusyTimeDTO struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Title       string `json:"title,omitempty"`
	IsTimeBlock bool   `json:"isTimeBlock"`
}

type TeammateAvailabilityDTO struct {
	TeammateUid  string        `json:"teammateUid"`
	TeammateName string        `json:"teammateName"`
	Date         string        `json:"date"`
	BusyTimes    []BusyTimeDTO `json:"busyTimes"`
	FreeSlots    []SlotDTO     `json:"freeSlots"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetTeammateAvailability(w http.ResponseWriter, r *http.Request) {
	teammateUid := mux.Vars(r)["agentUid"]
	date := r.URL.Query().Get("date")

	result, err := h.service.ForTeammate(r.Context(), teammateUid, date)
	if err != nil {
		var validationErr *calendar.ValidationError
		switch {
		case errors.As(err, &validationErr):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid " + validationErr.Field,
				Details: validationErr.Reason,
			})
		case errors.Is(err, agent.ErrAgentNotFound):
			http.Error(w, "teammate not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	dto := TeammateAvailabilityDTO{
		TeammateUid:  result.Teammate.Uid,
		TeammateName: result.Teammate.DisplayName,
		Date:         result.Date,
		BusyTimes:    make([]BusyTimeDTO, 0, len(result.BusyTimes)),
		FreeSlots:    make([]SlotDTO, 0, len(result.FreeSlots)),
	}
	for _, b := range result.BusyTimes {
		dto.BusyTimes = append(dto.BusyTimes, BusyTimeDTO{
			Start:       b.Start.String(),
			End:         b.End.String(),
			Title:       b.Title,
			IsTimeBlock: b.TimeBlock,
		})
	}
	for _, s := range result.FreeSlots {
		dto.FreeSlots = append(dto.FreeSlots, SlotDTO{
			Start:           s.Start.String(),
			End:             s.End.String(),
			DurationMinutes: int(s.Duration().Minutes()),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
