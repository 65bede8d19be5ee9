package app

import (
	"errors"
	"net/http"

	"github.com/Acefayad2/CRM-Portal/internal/config"
	"github.com/Acefayad2/CRM-Portal/pkg/agent"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate X-Agent-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			agentIdHeader := req.Header.Get("X-Agent-Id")
			ctx := req.Context()

			if agentIdHeader != "" {
				a, err := deps.AgentService.GetAgentByUid(ctx, agentIdHeader)
				if err != nil {
					if errors.Is(err, agent.ErrAgentNotFound) {
						log.Debugf("agent not found: %s", agentIdHeader)
						http.Error(w, "agent not found", http.StatusForbidden)
						return
					} else {
						log.Errorf("failed to get agent: %v", err)
						http.Error(w, err.Error(), http.StatusBadRequest)
						return
					}
				} else {
					log.Debugf("agent found: %s", a.Uid)
					ctx = agent.WithAgent(ctx, a)
				}
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
