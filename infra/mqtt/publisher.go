package mqtt

import (
	"context"
	"fmt"
	"sync"

	"github.com/kilianp07/powerplan/core/events"
	"github.com/kilianp07/powerplan/core/monitoring"
	coremqtt "github.com/kilianp07/powerplan/core/mqtt"
	"github.com/kilianp07/powerplan/infra/logger"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// SetpointsFrom converts a computed plan into one setpoint per plant, in MW.
func SetpointsFrom(e events.PlanComputed) []coremqtt.Setpoint {
	out := make([]coremqtt.Setpoint, len(e.Plants))
	for i, p := range e.Plants {
		out[i] = coremqtt.Setpoint{PlanID: e.PlanID, Plant: p.Name, PowerMW: float64(p.DispatchedPower) / 10}
	}
	return out
}

// StartForwarder publishes the setpoints of every PlanComputed event seen on
// bus. A failing plant does not prevent the others from receiving theirs.
func StartForwarder(ctx context.Context, bus eventbus.EventBus, pub coremqtt.SetpointPublisher) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || pub == nil {
		close(done)
		return done
	}
	log := logger.New("mqtt-forwarder")
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
				for _, sp := range SetpointsFrom(e) {
					if _, err := pub.PublishSetpoint(ctx, sp); err != nil {
						log.Errorf("plan %s: setpoint for %s: %v", e.PlanID, sp.Plant, err)
						monitoring.CaptureException(err, map[string]string{"plan_id": e.PlanID, "plant": sp.Plant})
					}
				}
			}
		}
	}()
	return done
}

// MockPublisher records setpoints in memory. Used in tests and by the
// plan command in dry-run mode.
type MockPublisher struct {
	Setpoints  []coremqtt.Setpoint
	FailPlants map[string]bool
	mu         sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{FailPlants: make(map[string]bool)}
}

// PublishSetpoint records sp or returns an error if its plant is configured to fail.
func (m *MockPublisher) PublishSetpoint(_ context.Context, sp coremqtt.Setpoint) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPlants[sp.Plant] {
		return "", fmt.Errorf("publish to %s failed", sp.Plant)
	}
	m.Setpoints = append(m.Setpoints, sp)
	return fmt.Sprintf("cmd-%s-%s", sp.PlanID, sp.Plant), nil
}

// Sent returns a copy of the recorded setpoints.
func (m *MockPublisher) Sent() []coremqtt.Setpoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]coremqtt.Setpoint(nil), m.Setpoints...)
}
