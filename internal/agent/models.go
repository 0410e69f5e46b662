// Package agent holds the read-only agent directory and the assignment
// algorithm that routes leads to agents.
package agent

// Agent is external reference data: this service never creates or mutates
// agents, it only reads them for assignment and notification.
type Agent struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Agency   string   `json:"agency"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Suburbs  []string `json:"suburbs"`
	Verified bool     `json:"verified"`
}

// AssignmentReason tags how an assignment was produced.
type AssignmentReason string

const (
	// ReasonSuburbMatch: at least one preferred suburb overlapped the agent's served set.
	ReasonSuburbMatch AssignmentReason = "suburb_match"
	// ReasonFallbackPool: no suburb overlap; the designated fallback group was used.
	ReasonFallbackPool AssignmentReason = "fallback_pool"
)

// Assignment is the computed outcome of routing one lead.
type Assignment struct {
	Agent  Agent
	Reason AssignmentReason
}

// ServesAny reports whether the agent serves at least one of the given
// suburb identifiers. Suburbs are expected pre-normalized (lowercase, trimmed).
func (a Agent) ServesAny(suburbs []string) bool {
	for _, want := range suburbs {
		for _, have := range a.Suburbs {
			if want == have {
				return true
			}
		}
	}
	return false
}
