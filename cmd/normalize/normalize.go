// Package normalize prints the canonical model of a portfolio export
package normalize

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/portfolio-report/cmd/root"
	"fjacquet/portfolio-report/internal/container"
	"fjacquet/portfolio-report/internal/exposure"
	"fjacquet/portfolio-report/internal/metrics"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/validation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var format string

// Cmd represents the normalize command
var Cmd = &cobra.Command{
	Use:   "normalize",
	Short: "Print the normalized portfolio model",
	Long: `Normalize every section of the export and print the canonical model
together with the derived metrics and the exposure matrix, as JSON or YAML.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")
}

// Output is the printed document.
type Output struct {
	LoadID    string            `json:"load_id" yaml:"load_id"`
	Source    string            `json:"source" yaml:"source"`
	Counts    map[string]int    `json:"counts" yaml:"counts"`
	Metrics   metrics.Metrics   `json:"metrics" yaml:"metrics"`
	Portfolio *models.Portfolio `json:"portfolio" yaml:"portfolio"`
	Matrix    exposure.Matrix   `json:"exposure_matrix" yaml:"exposure_matrix"`
}

// NewOutput flattens a snapshot for printing.
func NewOutput(snap *container.Snapshot) Output {
	counts := make(map[string]int)
	for c, n := range snap.Portfolio.Counts() {
		counts[string(c)] = n
	}
	return Output{
		LoadID:    snap.LoadID,
		Source:    snap.Document.Source(),
		Counts:    counts,
		Metrics:   snap.Metrics,
		Portfolio: snap.Portfolio,
		Matrix:    snap.Matrix,
	}
}

// Encode writes out in the given format.
func Encode(w io.Writer, out Output, format string) error {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	snap, loadErr := root.LoadSnapshot()
	if snap == nil {
		return loadErr
	}
	out := NewOutput(snap)
	if err := root.WriteOutput(func(w io.Writer) error {
		return Encode(w, out, format)
	}); err != nil {
		return fmt.Errorf("error writing model: %w", err)
	}
	return loadErr
}
