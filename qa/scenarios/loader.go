// Package scenarios replays YAML production plan scenarios against the
// planner and checks the resulting plan.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/powerplan/core/model"
)

// Expected describes what a scenario must produce. Nil fields are not checked.
type Expected struct {
	Plan     []model.PlanEntry `yaml:"plan,omitempty"`
	Total    *int              `yaml:"total,omitempty"`
	Balanced *bool             `yaml:"balanced,omitempty"`
	// Error is "invalid_payload" or "unsupported_category" when the request
	// must be rejected.
	Error string `yaml:"error,omitempty"`
}

type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Payload     model.Payload `yaml:"payload"`
	Expected    Expected      `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
