package scenarios

import (
	"context"
	"errors"
	"testing"

	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/core/planner"
)

var expectedErrors = map[string]error{
	planner.ReasonInvalidPayload:      model.ErrInvalidPayload,
	planner.ReasonUnsupportedCategory: model.ErrUnsupportedCategory,
}

// RunScenario plans the scenario payload and reports every mismatch with
// the expectation on t.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	res, err := planner.New(nil, nil).Plan(context.Background(), sc.Payload)
	if sc.Expected.Error != "" {
		target, ok := expectedErrors[sc.Expected.Error]
		if !ok {
			t.Fatalf("unknown expected error %q", sc.Expected.Error)
		}
		if !errors.Is(err, target) {
			t.Fatalf("expected %v, got %v", target, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if sc.Expected.Plan != nil {
		if len(res.Plan) != len(sc.Expected.Plan) {
			t.Fatalf("expected %d entries, got %d: %v", len(sc.Expected.Plan), len(res.Plan), res.Plan)
		}
		for i, want := range sc.Expected.Plan {
			if res.Plan[i] != want {
				t.Errorf("entry %d: expected %+v, got %+v", i, want, res.Plan[i])
			}
		}
	}
	if sc.Expected.Total != nil && res.Summary.DispatchedPower != *sc.Expected.Total {
		t.Errorf("expected total %d, got %d", *sc.Expected.Total, res.Summary.DispatchedPower)
	}
	if sc.Expected.Balanced != nil && res.Summary.Balanced != *sc.Expected.Balanced {
		t.Errorf("expected balanced=%v, got %v", *sc.Expected.Balanced, res.Summary.Balanced)
	}
}
