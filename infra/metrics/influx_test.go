package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	"github.com/kilianp07/powerplan/core/model"
)

func TestInfluxSink_RecordPlan(t *testing.T) {
	var (
		mu   sync.Mutex
		body string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		body = string(data)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer func() { _ = sink.Close() }()
	now := time.Now()
	ev := coremetrics.PlanEvent{
		PlanID:          "plan-1",
		Time:            now,
		Load:            480,
		RequestedPower:  4800,
		DispatchedPower: 4800,
		HourlyCost:      9329.4339,
		Balanced:        true,
		Entries: []coremetrics.PlantSetpoint{
			{Name: "windpark1", Category: model.CategoryWindTurbine, Power: 900},
			{Name: "gasfiredbig1", Category: model.CategoryGasFired, Power: 3690, Cost: 25.283},
		},
	}
	require.NoError(t, sink.RecordPlan(ev))

	plan := write.NewPointWithMeasurement("production_plan").
		AddTag("plan_id", "plan-1").
		AddTag("balanced", "true").
		AddField("load_mw", 480).
		AddField("requested_mw", 480.0).
		AddField("dispatched_mw", 480.0).
		AddField("hourly_cost", 9329.434).
		SetTime(now)
	wind := write.NewPointWithMeasurement("plant_setpoint").
		AddTag("plan_id", "plan-1").
		AddTag("plant", "windpark1").
		AddTag("category", "windturbine").
		AddField("power_mw", 90.0).
		AddField("cost", 0.0).
		SetTime(now)
	gas := write.NewPointWithMeasurement("plant_setpoint").
		AddTag("plan_id", "plan-1").
		AddTag("plant", "gasfiredbig1").
		AddTag("category", "gasfired").
		AddField("power_mw", 369.0).
		AddField("cost", 25.283).
		SetTime(now)

	mu.Lock()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	mu.Unlock()
	require.Len(t, lines, 3)
	for i, p := range []*write.Point{plan, wind, gas} {
		assert.Equal(t, strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond)), strings.TrimSpace(lines[i]))
	}
}

func TestInfluxSink_RecordRejection(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL+"/api/v2/write", "token", "org", "bucket")
	now := time.Now()
	require.NoError(t, sink.RecordRejection(coremetrics.RejectionEvent{Reason: "unsupported_category", Time: now}))
	p := write.NewPointWithMeasurement("plan_rejected").
		AddTag("reason", "unsupported_category").
		AddField("count", 1).
		SetTime(now)
	assert.Equal(t, strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond)), strings.TrimSpace(body))
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	cfg := coremetrics.Config{
		InfluxURL:    srv.URL + "/api/v2/write",
		InfluxToken:  "tok",
		InfluxOrg:    "org",
		InfluxBucket: "bucket",
	}
	sink := NewInfluxSinkWithFallback(cfg)
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
