package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/powerplan/core/analysis"
	"github.com/kilianp07/powerplan/core/events"
	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

type chanSink struct {
	mu         sync.Mutex
	plans      []coremetrics.PlanEvent
	rejections []coremetrics.RejectionEvent
}

func (c *chanSink) RecordPlan(ev coremetrics.PlanEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans = append(c.plans, ev)
	return nil
}

func (c *chanSink) RecordRejection(ev coremetrics.RejectionEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejections = append(c.rejections, ev)
	return nil
}

func TestEventCollector(t *testing.T) {
	bus := eventbus.New()
	sink := &chanSink{}
	done := StartEventCollector(context.Background(), bus, sink)

	bus.Publish(events.PlanComputed{
		PlanID:  "p1",
		Time:    time.Now(),
		Payload: model.Payload{Load: 10},
		Plants:  []model.RankedPlant{{Name: "w", Category: model.CategoryWindTurbine, DispatchedPower: 100}},
		Summary: analysis.Summary{RequestedPower: 100, DispatchedPower: 100, Balanced: true},
	})
	bus.Publish(events.PlanRejected{Reason: "invalid_payload", Err: errors.New("bad")})
	bus.Publish("ignored")
	bus.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("collector did not stop")
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.plans, 1)
	assert.Equal(t, "p1", sink.plans[0].PlanID)
	assert.Equal(t, 10, sink.plans[0].Load)
	require.Len(t, sink.plans[0].Entries, 1)
	assert.Equal(t, 100, sink.plans[0].Entries[0].Power)
	require.Len(t, sink.rejections, 1)
	assert.False(t, sink.rejections[0].Time.IsZero())
}

func TestEventCollectorNilArgs(t *testing.T) {
	done := StartEventCollector(context.Background(), nil, nil)
	_, open := <-done
	assert.False(t, open)
}
