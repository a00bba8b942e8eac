package events

import (
	"time"

	"github.com/kilianp07/powerplan/core/analysis"
	"github.com/kilianp07/powerplan/core/model"
)

// PlanComputed is emitted once per successful request. Plants are in plan
// order with their dispatched power set.
type PlanComputed struct {
	PlanID  string
	Time    time.Time
	Payload model.Payload
	Plants  []model.RankedPlant
	Summary analysis.Summary
}

// Entries returns the plan lines of the event.
func (e PlanComputed) Entries() []model.PlanEntry {
	out := make([]model.PlanEntry, len(e.Plants))
	for i, p := range e.Plants {
		out[i] = model.PlanEntry{Name: p.Name, Power: p.DispatchedPower}
	}
	return out
}

// PlanRejected is emitted when a request fails validation or ranking.
type PlanRejected struct {
	Reason string
	Err    error
	Time   time.Time
}
