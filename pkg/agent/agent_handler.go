package agent

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Acefayad2/CRM-Portal/internal/rest"
	"github.com/gorilla/mux"
)

type Handler struct {
	service Service
}

type AgentDTO struct {
	Uid         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var dto AgentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.DisplayName == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid agent",
			Details: "'displayName' must not be empty",
		})
		return
	}

	created, err := h.service.CreateAgent(r.Context(), Agent{
		Uid:         dto.Uid,
		DisplayName: dto.DisplayName,
		Email:       dto.Email,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(agentToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CurrentAgent(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetCurrentAgent(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoAgent) {
			http.Error(w, "no agent in request", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(agentToDTO(a)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAllAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.service.GetAllAgents(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAgentList(w, agents)
}

func (h *Handler) GetTeammates(w http.ResponseWriter, r *http.Request) {
	teammates, err := h.service.GetTeammates(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoAgent) {
			http.Error(w, "no agent in request", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAgentList(w, teammates)
}

func (h *Handler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["agentUid"]
	if err := h.service.DeleteAgent(r.Context(), uid); err != nil {
		if errors.Is(err, ErrAgentNotFound) {
			http.Error(w, "agent not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeAgentList(w http.ResponseWriter, agents []Agent) {
	dtos := make([]AgentDTO, 0, len(agents))
	for _, a := range agents {
		dtos = append(dtos, agentToDTO(a))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func agentToDTO(a Agent) AgentDTO {
	return AgentDTO{
		Uid:         a.Uid,
		DisplayName: a.DisplayName,
		Email:       a.Email,
	}
}
