package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/powerplan/core/analysis"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/core/planner"
	"github.com/kilianp07/powerplan/infra/logger"
	"github.com/kilianp07/powerplan/pkg/export"
)

var (
	withSummary bool
	outFormat   string
)

var planCmd = &cobra.Command{
	Use:   "plan <payload.json|payload.yaml|->",
	Short: "Compute the production plan of a payload file and print it",
	Args:  cobra.ExactArgs(1),
	RunE:  planPayload,
}

func init() {
	planCmd.Flags().BoolVar(&withSummary, "summary", false, "include the plan summary in the JSON output")
	planCmd.Flags().StringVarP(&outFormat, "format", "f", "json", "output format: json, csv or html")
	rootCmd.AddCommand(planCmd)
}

func readPayload(cmd *cobra.Command, path string) (model.Payload, error) {
	var payload model.Payload
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return payload, fmt.Errorf("open payload: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(&payload); err != nil {
			return payload, fmt.Errorf("decode yaml payload: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&payload); err != nil {
			return payload, fmt.Errorf("decode payload: %w", err)
		}
	}
	return payload, nil
}

func planPayload(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(cmd, args[0])
	if err != nil {
		return err
	}
	res, err := planner.New(nil, logger.NewWithWriter("plan-command", cmd.ErrOrStderr())).Plan(cmd.Context(), payload)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch outFormat {
	case "csv":
		return export.WriteCSV(out, res.Plan)
	case "html":
		return export.WriteChartHTML(out, "Production plan "+res.PlanID, res.Plants)
	case "json":
	default:
		return fmt.Errorf("unknown format %q", outFormat)
	}
	if !withSummary {
		return export.WriteJSON(out, res.Plan)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		PlanID  string            `json:"plan_id"`
		Plan    []model.PlanEntry `json:"plan"`
		Summary analysis.Summary  `json:"summary"`
	}{res.PlanID, res.Plan, res.Summary})
}
