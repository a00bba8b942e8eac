package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/powerplan/core/model"
)

func dispatched(plants []model.RankedPlant) []int {
	out := make([]int, len(plants))
	for i, p := range plants {
		out[i] = p.DispatchedPower
	}
	return out
}

func names(plants []model.RankedPlant) []string {
	out := make([]string, len(plants))
	for i, p := range plants {
		out[i] = p.Name
	}
	return out
}

func wind(name string, available int) model.RankedPlant {
	return model.RankedPlant{Name: name, Category: model.CategoryWindTurbine, AvailablePower: available, Order: float64(1 - available)}
}

func TestSequentialDispatcher(t *testing.T) {
	parks := []model.RankedPlant{wind("w1", 900), wind("w2", 210)}
	d := SequentialDispatcher{}

	assert.Equal(t, []int{900, 210}, dispatched(d.Dispatch(parks, 4800)))
	assert.Equal(t, []int{500, 0}, dispatched(d.Dispatch(parks, 500)))
	assert.Equal(t, []int{0, 0}, dispatched(d.Dispatch(parks, 0)))
	// An exact fit is not taken by the first plant.
	assert.Equal(t, []int{0, 210}, dispatched(d.Dispatch(parks, 900)))
	assert.Equal(t, []int{0, 0}, dispatched(parks), "input must not be modified")
}

func TestSequentialDispatcherSkipsBelowMinimum(t *testing.T) {
	plants := []model.RankedPlant{
		{Name: "tj1", Category: model.CategoryTurbojet, MinimumPower: 100, AvailablePower: 500},
		{Name: "tj2", Category: model.CategoryTurbojet, MinimumPower: 0, AvailablePower: 160},
	}
	assert.Equal(t, []int{0, 50}, dispatched(SequentialDispatcher{}.Dispatch(plants, 50)))
	assert.Equal(t, []int{450, 0}, dispatched(SequentialDispatcher{}.Dispatch(plants, 450)))
}

func TestPairwiseDispatcherSmallGroups(t *testing.T) {
	d := PairwiseDispatcher{}
	assert.Empty(t, d.Dispatch(nil, 100))
	assert.Equal(t, []int{300}, dispatched(d.Dispatch([]model.RankedPlant{gas("a", 100, 500)}, 300)))
	assert.Equal(t, []int{500, 100}, dispatched(d.Dispatch([]model.RankedPlant{gas("a", 100, 500), gas("b", 50, 500)}, 600)))
	// The spill equals the right minimum, which is not enough to start it.
	assert.Equal(t, []int{500, 0}, dispatched(d.Dispatch([]model.RankedPlant{gas("a", 100, 500), gas("b", 100, 500)}, 600)))
}

func TestPairwiseDispatcherChaining(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		load     int
		expected []int
	}{
		{"three units", 3, 1200, []int{500, 500, 200}},
		{"four units", 4, 1700, []int{500, 500, 500, 200}},
		{"five units", 5, 2300, []int{500, 500, 500, 500, 300}},
		{"early exit", 3, 300, []int{300, 0, 0}},
		{"all saturated", 4, 2000, []int{500, 500, 500, 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plants := make([]model.RankedPlant, tt.count)
			for i := range plants {
				plants[i] = gas(string(rune('a'+i)), 100, 500)
			}
			out := PairwiseDispatcher{}.Dispatch(plants, tt.load)
			require.Equal(t, names(plants), names(out))
			assert.Equal(t, tt.expected, dispatched(out))
			for _, p := range out {
				assertOperable(t, p)
			}
		})
	}
}

func TestPairwiseDispatcherGasFleet(t *testing.T) {
	fleet := []model.RankedPlant{
		gas("gasfiredbig1", 1000, 4600),
		gas("gasfiredbig2", 1000, 4600),
		gas("gasfiredsomewhatsmaller", 400, 2100),
	}
	out := PairwiseDispatcher{}.Dispatch(fleet, 3690)
	assert.Equal(t, names(fleet), names(out))
	assert.Equal(t, []int{3690, 0, 0}, dispatched(out))

	out = PairwiseDispatcher{}.Dispatch(fleet, 7990)
	assert.Equal(t, []int{4600, 3390, 0}, dispatched(out))
}

func TestAppendMissing(t *testing.T) {
	units := []model.RankedPlant{gas("a", 0, 1), gas("b", 0, 1), gas("c", 0, 1)}
	out := appendMissing([]model.RankedPlant{units[1]}, units)
	assert.Equal(t, []string{"b", "a", "c"}, names(out))
}
