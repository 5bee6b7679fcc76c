// Package matrix exports the account by asset-class exposure matrix
package matrix

import (
	"fmt"
	"io"

	"fjacquet/portfolio-report/cmd/root"
	"fjacquet/portfolio-report/internal/exposure"
	"fjacquet/portfolio-report/internal/logging"

	"github.com/spf13/cobra"
)

var showUnmatched bool

// Cmd represents the matrix command
var Cmd = &cobra.Command{
	Use:   "matrix",
	Short: "Export the exposure matrix as CSV",
	Long: `Export the account by asset-class exposure matrix as CSV. Columns follow
the configured account ordering, rows follow the overall asset classes, and
the last row and column hold the totals.`,
	RunE: run,
}

func init() {
	Cmd.Flags().BoolVar(&showUnmatched, "unmatched", false, "Log exposure cells that fall outside the matrix")
}

func run(cmd *cobra.Command, args []string) error {
	snap, loadErr := root.LoadSnapshot()
	if snap == nil {
		return loadErr
	}

	if showUnmatched {
		logger := root.AppContainer.GetLogger()
		for _, c := range exposure.Unmatched(root.AppContainer.GetAccounts(), snap.Portfolio.OverallAssets, snap.Portfolio.AccountExposure) {
			logger.Warn("Exposure cell outside the matrix",
				logging.F(logging.FieldAccount, c.Account),
				logging.F(logging.FieldCategory, c.AssetClass),
				logging.F("value", c.Value.String()))
		}
	}

	writer := root.AppContainer.GetCSVWriter()
	if err := root.WriteOutput(func(w io.Writer) error {
		return writer.WriteMatrix(w, snap.Matrix)
	}); err != nil {
		return fmt.Errorf("error writing matrix: %w", err)
	}
	return loadErr
}
