// Package monitoring reports unexpected errors and panics to an external
// error tracker. The default implementation discards everything.
package monitoring

import "time"

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	CapturePanic(v any, tags map[string]string)
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) CapturePanic(any, map[string]string)       {}
func (NopMonitor) Flush(time.Duration)                       {}

var current Monitor = NopMonitor{}

// Init sets the global monitor implementation.
func Init(m Monitor) {
	if m != nil {
		current = m
	}
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if err != nil {
		current.CaptureException(err, tags)
	}
}

// CapturePanic records a recovered panic value with optional tags.
func CapturePanic(v any, tags map[string]string) {
	current.CapturePanic(v, tags)
}

// Flush flushes buffered events.
func Flush(d time.Duration) {
	current.Flush(d)
}
