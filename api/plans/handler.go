// Package plans exposes the plan journal via GET /plans.
package plans

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kilianp07/powerplan/core/journal"
)

// NewHandler returns an HTTP handler listing journal records. Supported query
// parameters are start and end (RFC3339) and plant. Requests must include an
// Authorization header with "Bearer <token>" when token is non-empty.
func NewHandler(store journal.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var q journal.Query
		for key, dst := range map[string]*time.Time{"start": &q.Start, "end": &q.End} {
			s := r.URL.Query().Get(key)
			if s == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, "invalid "+key+": "+err.Error(), http.StatusBadRequest)
				return
			}
			*dst = t
		}
		q.PlantName = r.URL.Query().Get("plant")
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []journal.Record{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
