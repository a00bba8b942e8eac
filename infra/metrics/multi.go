package metrics

import coremetrics "github.com/kilianp07/powerplan/core/metrics"

// MultiSink fanouts plan events to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.PlanSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.PlanSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlan forwards the plan to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPlan(ev coremetrics.PlanEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlan(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRejection forwards rejections to the sinks able to record them.
func (m *MultiSink) RecordRejection(ev coremetrics.RejectionEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.RejectionRecorder); ok {
			if err := rec.RecordRejection(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
