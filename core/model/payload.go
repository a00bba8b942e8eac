package model

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload wraps every validation failure of an incoming request.
var ErrInvalidPayload = errors.New("invalid payload")

// Payload is the production plan request: the load in MW, the fuel figures
// and the available plants.
type Payload struct {
	Load        int                `json:"load" yaml:"load"`
	Fuels       map[string]float64 `json:"fuels" yaml:"fuels"`
	PowerPlants []PowerPlant       `json:"powerplants" yaml:"powerplants"`
}

// Validate checks the payload fields the ranking and allocation rely on.
// Unknown plant types are reported as ErrUnsupportedCategory.
func (p Payload) Validate() error {
	if p.Load < 0 {
		return fmt.Errorf("%w: negative load %d", ErrInvalidPayload, p.Load)
	}
	seen := make(map[string]struct{}, len(p.PowerPlants))
	for i, pp := range p.PowerPlants {
		if pp.Name == "" {
			return fmt.Errorf("%w: powerplant %d has no name", ErrInvalidPayload, i)
		}
		if _, dup := seen[pp.Name]; dup {
			return fmt.Errorf("%w: duplicate powerplant %s", ErrInvalidPayload, pp.Name)
		}
		seen[pp.Name] = struct{}{}
		if _, err := ParseCategory(string(pp.Type)); err != nil {
			return fmt.Errorf("%s: %w", pp.Name, err)
		}
		if pp.Efficiency <= 0 {
			return fmt.Errorf("%w: %s efficiency must be positive", ErrInvalidPayload, pp.Name)
		}
		if pp.Pmin < 0 || pp.Pmin > pp.Pmax {
			return fmt.Errorf("%w: %s requires 0 <= pmin <= pmax", ErrInvalidPayload, pp.Name)
		}
	}
	return nil
}
