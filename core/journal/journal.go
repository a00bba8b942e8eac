// Package journal keeps an append-only audit trail of computed production
// plans. The planner never reads it back; it is queried by operators only.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/kilianp07/powerplan/core/analysis"
	"github.com/kilianp07/powerplan/core/events"
	"github.com/kilianp07/powerplan/core/model"
)

// ErrUnknownBackend is returned by NewStore for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown journal backend")

// Record captures one computed plan together with the request that produced it.
type Record struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Load      int                `json:"load"`
	Fuels     map[string]float64 `json:"fuels"`
	Plan      []model.PlanEntry  `json:"plan"`
	Summary   analysis.Summary   `json:"summary"`
}

// Dispatched reports whether the named plant received a non-zero setpoint.
func (r Record) Dispatched(plant string) bool {
	for _, e := range r.Plan {
		if e.Name == plant && e.Power != 0 {
			return true
		}
	}
	return false
}

// Query defines filters for retrieving records. Zero values disable a filter.
type Query struct {
	Start     time.Time
	End       time.Time
	PlantName string
}

func (q Query) match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.PlantName != "" && !r.Dispatched(q.PlantName) {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// RecordFrom builds the journal entry of a computed plan.
func RecordFrom(e events.PlanComputed) Record {
	return Record{
		ID:        e.PlanID,
		Timestamp: e.Time,
		Load:      e.Payload.Load,
		Fuels:     e.Payload.Fuels,
		Plan:      e.Entries(),
		Summary:   e.Summary,
	}
}
