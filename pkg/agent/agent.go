package agent

// Agent is a portal user. Every other agent is a "teammate" whose shared
// calendar can be inspected for availability.
type Agent struct {
	Id          int
	Uid         string
	DisplayName string
	Email       string
}
