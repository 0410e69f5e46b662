package agent

import (
	"sync"

	pstrings "propworth/pkg/platform/strings"
)

// fallbackCursorKey keys the round-robin cursor when the fallback pool is
// used, where the suburb set played no part in candidate selection.
const fallbackCursorKey = "fallback"

// Assigner selects one agent for a set of preferred suburbs.
//
// Candidate selection: agents serving any preferred suburb; if none, the
// directory's fallback pool. Within the candidate set, verified agents are
// preferred absolutely: if at least one verified agent exists the pool
// narrows to verified agents only.
//
// Fairness: a round-robin cursor per sorted, deduplicated suburb key cycles
// through the eligible pool so repeated requests for the same suburb
// combination visit every agent before any repeats. Cursor state is
// process-lifetime and in-memory; a restart resets fairness history.
type Assigner struct {
	directory Directory

	mu      sync.Mutex
	cursors map[string]int
}

func NewAssigner(directory Directory) *Assigner {
	return &Assigner{
		directory: directory,
		cursors:   make(map[string]int),
	}
}

// Assign returns nil when no agent exists anywhere. That is a normal outcome
// (a brand-new uncovered suburb), not an error; the caller persists the lead
// unassigned.
func (a *Assigner) Assign(preferredSuburbs []string) *Assignment {
	suburbs := pstrings.DedupeAndTrimLower(preferredSuburbs)

	reason := ReasonSuburbMatch
	cursorKey := pstrings.SortedKey(suburbs)
	candidates := a.directory.FindAgentsServing(suburbs)
	if len(candidates) == 0 {
		reason = ReasonFallbackPool
		cursorKey = fallbackCursorKey
		candidates = a.directory.FallbackPool()
	}
	if len(candidates) == 0 {
		return nil
	}

	pool := verifiedOnly(candidates)
	if len(pool) == 0 {
		pool = candidates
	}

	selected := pool[a.nextCursor(cursorKey, len(pool))]
	return &Assignment{Agent: selected, Reason: reason}
}

// nextCursor returns the current cursor for key and advances it modulo size.
func (a *Assigner) nextCursor(key string, size int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	cursor := a.cursors[key] % size
	a.cursors[key] = cursor + 1
	return cursor
}

func verifiedOnly(agents []Agent) []Agent {
	var out []Agent
	for _, a := range agents {
		if a.Verified {
			out = append(out, a)
		}
	}
	return out
}
