package metrics

import (
	"errors"
	"testing"

	coremetrics "github.com/kilianp07/powerplan/core/metrics"
)

type recordSink struct {
	plans      int
	rejections int
	err        error
}

func (r *recordSink) RecordPlan(coremetrics.PlanEvent) error {
	r.plans++
	return r.err
}

func (r *recordSink) RecordRejection(coremetrics.RejectionEvent) error {
	r.rejections++
	return nil
}

type planOnlySink struct{ plans int }

func (p *planOnlySink) RecordPlan(coremetrics.PlanEvent) error {
	p.plans++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	s3 := &planOnlySink{}
	m := NewMultiSink(s1, s2, s3)
	if err := m.RecordPlan(coremetrics.PlanEvent{}); err != nil {
		t.Fatalf("record plan: %v", err)
	}
	if err := m.RecordRejection(coremetrics.RejectionEvent{}); err != nil {
		t.Fatalf("record rejection: %v", err)
	}
	if s1.plans != 1 || s2.plans != 1 || s3.plans != 1 {
		t.Fatalf("plans not forwarded")
	}
	if s1.rejections != 1 || s2.rejections != 1 {
		t.Fatalf("rejections not forwarded")
	}
}

func TestMultiSinkStopsOnError(t *testing.T) {
	s1 := &recordSink{err: errors.New("down")}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordPlan(coremetrics.PlanEvent{}); err == nil {
		t.Fatalf("expected error")
	}
	if s2.plans != 0 {
		t.Fatalf("second sink should not be called")
	}
}
