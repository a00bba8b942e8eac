package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies the kind of generation unit. Each category has its own
// cost and priority formula.
type Category string

const (
	CategoryGasFired    Category = "gasfired"
	CategoryTurbojet    Category = "turbojet"
	CategoryWindTurbine Category = "windturbine"
)

// ErrUnsupportedCategory is returned when a plant declares a type outside the
// three known categories.
var ErrUnsupportedCategory = errors.New("unsupported category")

// ParseCategory converts a raw type string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryGasFired, CategoryTurbojet, CategoryWindTurbine:
		return true
	default:
		return false
	}
}

func (c Category) String() string { return string(c) }

// FuelKeywords returns the substrings a fuel name must contain to apply to
// plants of this category.
func (c Category) FuelKeywords() []string {
	switch c {
	case CategoryGasFired:
		return []string{"gas"}
	case CategoryTurbojet:
		return []string{"kerosine"}
	case CategoryWindTurbine:
		return []string{"wind"}
	default:
		return nil
	}
}

// PowerPlant is a generation unit as received in the request payload. Pmin
// and Pmax are expressed in MW; the plan works in tenths of MW.
type PowerPlant struct {
	Name       string   `json:"name" yaml:"name"`
	Type       Category `json:"type" yaml:"type"`
	Efficiency float64  `json:"efficiency" yaml:"efficiency"`
	Pmin       int      `json:"pmin" yaml:"pmin"`
	Pmax       int      `json:"pmax" yaml:"pmax"`
}

// RankedPlant is the intermediate dispatch record derived from a PowerPlant.
// Order and Cost are set once by the ranking strategies; DispatchedPower is
// only written by the allocation engine.
type RankedPlant struct {
	Name            string
	Category        Category
	AvailablePower  int
	MinimumPower    int
	Cost            float64
	Order           float64
	DispatchedPower int
}

// Idle reports whether nothing has been dispatched on the plant yet.
func (r RankedPlant) Idle() bool { return r.DispatchedPower == 0 }

// PlanEntry is one line of the production plan.
type PlanEntry struct {
	Name  string `json:"name" yaml:"name"`
	Power int    `json:"p" yaml:"p"`
}
