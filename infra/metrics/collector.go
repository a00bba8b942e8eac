package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/powerplan/core/events"
	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	"github.com/kilianp07/powerplan/infra/logger"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// PlanEventFrom converts a PlanComputed bus event into a sink event.
func PlanEventFrom(e events.PlanComputed) coremetrics.PlanEvent {
	ev := coremetrics.PlanEvent{
		PlanID:          e.PlanID,
		Time:            e.Time,
		Load:            e.Payload.Load,
		RequestedPower:  e.Summary.RequestedPower,
		DispatchedPower: e.Summary.DispatchedPower,
		HourlyCost:      e.Summary.HourlyCost,
		Balanced:        e.Summary.Balanced,
		Entries:         make([]coremetrics.PlantSetpoint, len(e.Plants)),
	}
	for i, p := range e.Plants {
		ev.Entries[i] = coremetrics.PlantSetpoint{Name: p.Name, Category: p.Category, Power: p.DispatchedPower, Cost: p.Cost}
	}
	return ev
}

// StartEventCollector subscribes to the event bus and records plan events in
// the sink. It stops when the context is canceled or the bus is closed. The
// returned channel is closed once the collector has stopped.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.PlanSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("metrics-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.PlanComputed:
					if err := sink.RecordPlan(PlanEventFrom(e)); err != nil {
						log.Errorf("record plan %s: %v", e.PlanID, err)
					}
				case events.PlanRejected:
					if r, ok := sink.(coremetrics.RejectionRecorder); ok {
						t := e.Time
						if t.IsZero() {
							t = time.Now()
						}
						if err := r.RecordRejection(coremetrics.RejectionEvent{Reason: e.Reason, Time: t}); err != nil {
							log.Errorf("record rejection: %v", err)
						}
					}
				}
			}
		}
	}()
	return done
}
