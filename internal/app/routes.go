package app

import (
	"github.com/Acefayad2/CRM-Portal/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Agent management
	r.HandleFunc("/api/agent/current", deps.AgentHandler.CurrentAgent).Methods("GET")
	r.HandleFunc("/api/agent", deps.AgentHandler.CreateAgent).Methods("POST")
	r.HandleFunc("/api/agent", deps.AgentHandler.GetAllAgents).Methods("GET")
	r.HandleFunc("/api/agent/teammates", deps.AgentHandler.GetTeammates).Methods("GET")
	r.HandleFunc("/api/agent/{agentUid}", deps.AgentHandler.DeleteAgent).Methods("DELETE")

	// Calendar
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")

	// Teammate availability
	r.HandleFunc("/api/availability/{agentUid}", deps.AvailabilityHandler.GetTeammateAvailability).
		Queries("date", "{date}").Methods("GET")

	// Time slot requests
	r.HandleFunc("/api/timeslot/request", deps.TimeSlotHandler.CreateRequest).Methods("POST")
	r.HandleFunc("/api/timeslot/request", deps.TimeSlotHandler.ListRequests).Methods("GET")
	r.HandleFunc("/api/timeslot/request/pending", deps.TimeSlotHandler.PendingRequests).Methods("GET")
	r.HandleFunc("/api/timeslot/request/{requestId}/accept", deps.TimeSlotHandler.AcceptRequest).Methods("POST")
	r.HandleFunc("/api/timeslot/request/{requestId}/reject", deps.TimeSlotHandler.RejectRequest).Methods("POST")

	// Clients
	r.HandleFunc("/api/client", deps.ClientHandler.ListClients).Methods("GET")
	r.HandleFunc("/api/client", deps.ClientHandler.CreateClient).Methods("POST")
	r.HandleFunc("/api/client/{clientId}", deps.ClientHandler.GetClient).Methods("GET")
	r.HandleFunc("/api/client/{clientId}", deps.ClientHandler.UpdateClient).Methods("PUT")
	r.HandleFunc("/api/client/{clientId}", deps.ClientHandler.DeleteClient).Methods("DELETE")
	r.HandleFunc("/api/client/{clientId}/stage", deps.ClientHandler.MoveToStage).Methods("PUT")
	r.HandleFunc("/api/client/{clientId}/contact", deps.ClientHandler.LogContact).Methods("POST")
	r.HandleFunc("/api/client/{clientId}/contact", deps.ClientHandler.ContactHistory).Methods("GET")

	// Scripts
	r.HandleFunc("/api/script", deps.ScriptHandler.ListScripts).Methods("GET")
	r.HandleFunc("/api/script", deps.ScriptHandler.CreateScript).Methods("POST")
	r.HandleFunc("/api/script/{scriptId}", deps.ScriptHandler.GetScript).Methods("GET")
	r.HandleFunc("/api/script/{scriptId}", deps.ScriptHandler.UpdateScript).Methods("PUT")
	r.HandleFunc("/api/script/{scriptId}", deps.ScriptHandler.DeleteScript).Methods("DELETE")
	r.HandleFunc("/api/script/{scriptId}/usage", deps.ScriptHandler.RecordUsage).Methods("POST")

	// Training
	r.HandleFunc("/api/training/module", deps.TrainingHandler.ListModules).Methods("GET")
	r.HandleFunc("/api/training/module/{moduleId}", deps.TrainingHandler.GetModule).Methods("GET")
	r.HandleFunc("/api/training/lesson/{lessonId}/complete", deps.TrainingHandler.CompleteLesson).Methods("POST")
	r.HandleFunc("/api/training/lesson/{lessonId}/complete", deps.TrainingHandler.ResetLesson).Methods("DELETE")

	// Stats
	r.HandleFunc("/api/stats/activity", deps.StatsHandler.GetActivity).
		Queries("fromDate", "{fromDate}", "toDate", "{toDate}").Methods("GET")
}
