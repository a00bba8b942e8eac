package model

import (
	"sort"
	"strings"
)

// Fuel is a named cost figure from the request, e.g. "gas(euro/MWh)": 13.4.
// For wind the value is the availability percentage.
type Fuel struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ParseFuels converts the raw fuel mapping into a slice sorted by name so
// that matching is deterministic.
func ParseFuels(raw map[string]float64) []Fuel {
	fuels := make([]Fuel, 0, len(raw))
	for name, v := range raw {
		fuels = append(fuels, Fuel{Name: name, Value: v})
	}
	sort.Slice(fuels, func(i, j int) bool { return fuels[i].Name < fuels[j].Name })
	return fuels
}

// MatchFuels returns the fuels whose name contains one of the keywords of the
// plant category.
func MatchFuels(c Category, fuels []Fuel) []Fuel {
	var out []Fuel
	for _, f := range fuels {
		for _, kw := range c.FuelKeywords() {
			if strings.Contains(f.Name, kw) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
