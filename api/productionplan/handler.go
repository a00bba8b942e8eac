// Package productionplan exposes the planner over HTTP.
package productionplan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/powerplan/core/logger"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/core/monitoring"
	"github.com/kilianp07/powerplan/core/planner"
)

// MaxBodyBytes bounds the size of an accepted request body.
const MaxBodyBytes = 1 << 20

// Planner computes a plan for a payload.
type Planner interface {
	Plan(ctx context.Context, payload model.Payload) (planner.Result, error)
}

type errorBody struct {
	Error string `json:"error"`
}

// NewHandler returns the handler of POST /productionplan. The response body
// is the list of plan entries in plan order.
func NewHandler(p Planner, log logger.Logger) http.Handler {
	if log == nil {
		log = logger.Nop{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
			return
		}
		var payload model.Payload
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err := dec.Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "decode payload: " + err.Error()})
			return
		}
		res, err := p.Plan(r.Context(), payload)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, model.ErrInvalidPayload) || errors.Is(err, model.ErrUnsupportedCategory) {
				status = http.StatusBadRequest
			} else {
				log.Errorf("production plan failed: %v", err)
				monitoring.CaptureException(err, map[string]string{"route": "/productionplan"})
			}
			writeJSON(w, status, errorBody{Error: err.Error()})
			return
		}
		w.Header().Set("X-Plan-Id", res.PlanID)
		writeJSON(w, http.StatusOK, res.Plan)
	})
}

// HealthHandler answers GET /healthz.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
