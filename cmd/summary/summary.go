// Package summary renders the portfolio summary report
package summary

import (
	"fmt"
	"io"

	"fjacquet/portfolio-report/cmd/root"
	"fjacquet/portfolio-report/internal/ledger"
	"fjacquet/portfolio-report/internal/report"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// Flags of the summary command.
type Flags struct {
	Raw      bool
	Width    int
	Category string
	Account  string
	From     string
	To       string
}

var flags = Flags{}

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Render the portfolio summary report",
	Long: `Render every section of the portfolio as a markdown report: headline
figures, allocations, accounts, bonds, monthly history, the account by
asset-class exposure matrix and the account movements.

Output to a terminal is styled; --raw or --output write plain markdown.`,
	RunE: run,
}

func init() {
	Cmd.Flags().BoolVar(&flags.Raw, "raw", false, "Print plain markdown without terminal styling")
	Cmd.Flags().IntVar(&flags.Width, "width", 120, "Word wrap width of the styled output")
	Cmd.Flags().StringVar(&flags.Category, "category", "", "Only list movements of this transaction type")
	Cmd.Flags().StringVar(&flags.Account, "account", "", "Only list movements of this account")
	Cmd.Flags().StringVar(&flags.From, "from", "", "Only list movements on or after this date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&flags.To, "to", "", "Only list movements on or before this date (YYYY-MM-DD)")
}

func run(cmd *cobra.Command, args []string) error {
	criteria, err := ledger.ParseCriteria(flags.Category, flags.Account, flags.From, flags.To)
	if err != nil {
		return err
	}

	snap, loadErr := root.LoadSnapshot()
	if snap == nil {
		return loadErr
	}

	md := root.AppContainer.GetReportGenerator().Markdown(report.Input{
		Portfolio: snap.Portfolio,
		Metrics:   snap.Metrics,
		Matrix:    snap.Matrix,
		Ledger:    ledger.Apply(snap.Portfolio.Ledger, criteria),
	})

	out := md
	if !flags.Raw && root.SharedFlags.Output == "" {
		if out, err = Render(md, "", flags.Width); err != nil {
			root.Log.Warnf("Falling back to plain markdown: %v", err)
			out = md
		}
	}

	if err := root.WriteOutput(func(w io.Writer) error {
		_, err := io.WriteString(w, out)
		return err
	}); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return loadErr
}

// Render styles markdown for a terminal. An empty style picks one from the
// terminal's background.
func Render(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("error creating renderer: %w", err)
	}
	return r.Render(md)
}
