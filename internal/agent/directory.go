package agent

// Directory is the read-only registry of agents. How the data is populated is
// out of scope; static data refreshed out-of-band is acceptable, so queries
// are synchronous and never fail.
type Directory interface {
	FindAgentsServing(suburbs []string) []Agent
	FallbackPool() []Agent
	GetByID(id string) (Agent, bool)
}

// StaticDirectory serves a fixed agent set loaded at startup. The fallback
// pool is the subset of agents flagged as accepting out-of-area leads; when
// none are flagged, every agent is eligible as a fallback.
type StaticDirectory struct {
	agents   []Agent
	fallback []Agent
	byID     map[string]Agent
}

// NewStaticDirectory builds a directory from seed data. fallbackIDs selects
// the designated fallback pool; unknown IDs are ignored.
func NewStaticDirectory(agents []Agent, fallbackIDs []string) *StaticDirectory {
	d := &StaticDirectory{
		agents: append([]Agent(nil), agents...),
		byID:   make(map[string]Agent, len(agents)),
	}
	for _, a := range d.agents {
		d.byID[a.ID] = a
	}
	for _, id := range fallbackIDs {
		if a, ok := d.byID[id]; ok {
			d.fallback = append(d.fallback, a)
		}
	}
	if len(d.fallback) == 0 {
		d.fallback = d.agents
	}
	return d
}

func (d *StaticDirectory) FindAgentsServing(suburbs []string) []Agent {
	var out []Agent
	for _, a := range d.agents {
		if a.ServesAny(suburbs) {
			out = append(out, a)
		}
	}
	return out
}

func (d *StaticDirectory) FallbackPool() []Agent {
	return append([]Agent(nil), d.fallback...)
}

func (d *StaticDirectory) GetByID(id string) (Agent, bool) {
	a, ok := d.byID[id]
	return a, ok
}
