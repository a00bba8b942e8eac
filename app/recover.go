package app

import (
	"fmt"
	"net/http"

	"github.com/kilianp07/powerplan/core/logger"
	"github.com/kilianp07/powerplan/core/monitoring"
)

// Recoverer turns a panicking handler into a 500 response and reports the
// panic to the monitor.
func Recoverer(next http.Handler, log logger.Logger) http.Handler {
	if log == nil {
		log = logger.Nop{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			log.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, v)
			monitoring.CapturePanic(v, map[string]string{"route": r.URL.Path})
			http.Error(w, fmt.Sprintf("internal error: %v", v), http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}
