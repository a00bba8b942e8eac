package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/powerplan/core/monitoring"
)

type panicMonitor struct {
	panics []any
	route  string
}

func (p *panicMonitor) CaptureException(error, map[string]string) {}
func (p *panicMonitor) CapturePanic(v any, tags map[string]string) {
	p.panics = append(p.panics, v)
	p.route = tags["route"]
}
func (p *panicMonitor) Flush(time.Duration) {}

func TestRecovererCapturesPanic(t *testing.T) {
	mon := &panicMonitor{}
	monitoring.Init(mon)
	t.Cleanup(func() { monitoring.Init(monitoring.NopMonitor{}) })

	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	}), nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/productionplan", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "boom")
	require.Len(t, mon.panics, 1)
	assert.Equal(t, "/productionplan", mon.route)
}

func TestRecovererPassThrough(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}
