package journal

import (
	"context"

	"github.com/kilianp07/powerplan/core/events"
	"github.com/kilianp07/powerplan/core/logger"
	"github.com/kilianp07/powerplan/core/monitoring"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// StartWriter appends every PlanComputed event published on bus to store. It
// stops when ctx is canceled or the bus is closed; the returned channel is
// closed once it has stopped.
func StartWriter(ctx context.Context, bus eventbus.EventBus, store Store, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || store == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.Nop{}
	}
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
				e, ok := ev.(events.PlanComputed)
				if !ok {
					continue
				}
				if err := store.Append(ctx, RecordFrom(e)); err != nil {
					log.Errorf("journal append %s: %v", e.PlanID, err)
					monitoring.CaptureException(err, map[string]string{"plan_id": e.PlanID})
				}
			}
		}
	}()
	return done
}
