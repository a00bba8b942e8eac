// Package export renders production plans for operators: JSON, CSV with
// powers in MW, and an HTML bar chart of setpoints against capacity.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/powerplan/core/model"
)

// WriteJSON writes the plan entries to w in JSON format.
func WriteJSON(w io.Writer, entries []model.PlanEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteCSV writes one row per plant with its setpoint in MW.
func WriteCSV(w io.Writer, entries []model.PlanEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "power_mw"}); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{e.Name, strconv.FormatFloat(float64(e.Power)/10, 'f', -1, 64)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteChartHTML renders a bar chart of dispatched against available power
// per plant, in plan order.
func WriteChartHTML(w io.Writer, title string, plants []model.RankedPlant) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Plant"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Power (MW)"}),
	)

	names := make([]string, len(plants))
	dispatched := make([]opts.BarData, len(plants))
	available := make([]opts.BarData, len(plants))
	for i, p := range plants {
		names[i] = p.Name
		dispatched[i] = opts.BarData{Value: float64(p.DispatchedPower) / 10}
		available[i] = opts.BarData{Value: float64(p.AvailablePower) / 10}
	}
	bar.SetXAxis(names).
		AddSeries("Dispatched", dispatched).
		AddSeries("Available", available)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
