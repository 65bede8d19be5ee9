package app

import (
	"database/sql"

	"github.com/Acefayad2/CRM-Portal/internal/config"
	"github.com/Acefayad2/CRM-Portal/internal/event_bus"
	"github.com/Acefayad2/CRM-Portal/internal/utils"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/Acefayad2/CRM-Portal/pkg/availability"
	"github.com/Acefayad2/CRM-Portal/pkg/calendar"
	"github.com/Acefayad2/CRM-Portal/pkg/client"
	"github.com/Acefayad2/CRM-Portal/pkg/script"
	"github.com/Acefayad2/CRM-Portal/pkg/stats"
	"github.com/Acefayad2/CRM-Portal/pkg/timeslot"
	"github.com/Acefayad2/CRM-Portal/pkg/training"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	AgentService agent.Service
	AgentHandler *agent.Handler

	CalendarRepository *calendar.RepositoryImpl
	CalendarService    *calendar.Service
	CalendarHandler    *calendar.Handler

	AvailabilityCalculator *availability.Calculator
	AvailabilityService    *availability.Service
	AvailabilityHandler    *availability.Handler

	TimeSlotRepo    timeslot.Repository
	TimeSlotService timeslot.Service
	TimeSlotHandler *timeslot.Handler

	ClientRepo    client.Repository
	ClientService client.Service
	ClientHandler *client.Handler

	ScriptRepo    script.Repository
	ScriptService script.Service
	ScriptHandler *script.Handler

	TrainingRepo    training.Repository
	TrainingService training.Service
	TrainingHandler *training.Handler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	registerNotificationSubscribers(deps.EventBus)

	deps.AgentService = agent.NewAgentService(agent.NewAgentRepo(db))
	deps.AgentHandler = agent.NewHandler(deps.AgentService)

	deps.CalendarRepository = calendar.NewRepository(db)
	deps.CalendarService = calendar.NewService(deps.CalendarRepository)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)

	calculator, err := availability.NewCalculator(cfg.Availability)
	if err != nil {
		log.Warnf("invalid availability window configuration, falling back to defaults: %v", err)
		calculator = availability.DefaultCalculator()
	}
	deps.AvailabilityCalculator = calculator
	deps.AvailabilityService = availability.NewService(calculator, deps.AgentService, deps.CalendarService)
	deps.AvailabilityHandler = availability.NewHandler(deps.AvailabilityService)

	deps.TimeSlotRepo = timeslot.NewRepository(db)
	deps.TimeSlotService = timeslot.NewService(deps.TimeSlotRepo, deps.AgentService, deps.Clock, deps.EventBus)
	deps.TimeSlotHandler = timeslot.NewHandler(deps.TimeSlotService)

	deps.ClientRepo = client.NewRepository(db)
	deps.ClientService = client.NewService(deps.ClientRepo, deps.Clock)
	deps.ClientHandler = client.NewHandler(deps.ClientService)

	deps.ScriptRepo = script.NewRepository(db)
	deps.ScriptService = script.NewService(deps.ScriptRepo, deps.Clock)
	deps.ScriptHandler = script.NewHandler(deps.ScriptService)

	deps.TrainingRepo = training.NewRepository(db)
	deps.TrainingService = training.NewService(deps.TrainingRepo, deps.Clock)
	deps.TrainingHandler = training.NewHandler(deps.TrainingService)

	deps.StatsService = stats.NewStatsService(deps.ClientRepo)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	return deps
}

// registerNotificationSubscribers logs in-app notifications for time slot
// request activity. Delivery beyond the log is up to the frontend polling
// the request endpoints.
func registerNotificationSubscribers(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.TimeSlotRequestCreatedEvent, func(e event_bus.EventT[event_bus.TimeSlotRequestCreated]) error {
		log.Infof("time slot request %s: %s asked %s for %s %s-%s",
			e.Data.RequestID, e.Data.RequesterName, e.Data.TeammateName, e.Data.Date, e.Data.StartTime, e.Data.EndTime)
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.TimeSlotRequestAcceptedEvent, func(e event_bus.EventT[event_bus.TimeSlotRequestAccepted]) error {
		log.Infof("time slot request %s accepted, calendar event %d created", e.Data.RequestID, e.Data.EventID)
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.TimeSlotRequestRejectedEvent, func(e event_bus.EventT[event_bus.TimeSlotRequestRejected]) error {
		log.Infof("time slot request %s rejected", e.Data.RequestID)
		return nil
	})
}
