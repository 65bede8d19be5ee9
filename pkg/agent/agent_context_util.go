package agent

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const AgentKey contextKey = "agent"

var ErrNoAgent = errors.New("agent not found")

// CurrentId retrieves the current agent's ID from the context. Returns ErrNoAgent if not present.
func CurrentId(ctx context.Context) (int, error) {
	a, ok := ctx.Value(AgentKey).(Agent)
	if !ok {
		log.Trace("agent not found in context")
		return 0, ErrNoAgent
	}
	return a.Id, nil
}

func CurrentAgent(ctx context.Context) (Agent, error) {
	a, ok := ctx.Value(AgentKey).(Agent)
	if !ok {
		log.Trace("agent not found in context")
		return Agent{}, ErrNoAgent
	}
	return a, nil
}

func WithAgent(ctx context.Context, a Agent) context.Context {
	return context.WithValue(ctx, AgentKey, a)
}
