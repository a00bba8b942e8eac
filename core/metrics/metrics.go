package metrics

import (
	"time"

	"github.com/kilianp07/powerplan/core/model"
)

// PlanEvent describes a computed production plan to be recorded.
type PlanEvent struct {
	PlanID          string
	Time            time.Time
	Load            int
	RequestedPower  int
	DispatchedPower int
	HourlyCost      float64
	Balanced        bool
	Entries         []PlantSetpoint
}

// PlantSetpoint is the dispatched power of one plant within a plan.
type PlantSetpoint struct {
	Name     string
	Category model.Category
	Power    int
	Cost     float64
}

// PlanSink records production plans for observability purposes.
type PlanSink interface {
	RecordPlan(ev PlanEvent) error
}

// RejectionEvent captures a request that could not be planned.
type RejectionEvent struct {
	Reason string
	Time   time.Time
}

// RejectionRecorder records rejected requests.
type RejectionRecorder interface {
	RecordRejection(ev RejectionEvent) error
}

// NopSink implements PlanSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanEvent) error           { return nil }
func (NopSink) RecordRejection(RejectionEvent) error { return nil }
