// Package transactions lists and filters the account movements
package transactions

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/portfolio-report/cmd/root"
	"fjacquet/portfolio-report/internal/ledger"
	"fjacquet/portfolio-report/internal/logging"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/report"

	"github.com/spf13/cobra"
)

// Flags of the transactions command.
type Flags struct {
	Category string
	Account  string
	From     string
	To       string
	List     bool
}

var flags = Flags{}

// Cmd represents the transactions command
var Cmd = &cobra.Command{
	Use:   "transactions",
	Short: "Filter the account movements and export them as CSV",
	Long: `Filter the account movements by transaction type, account and trade-date
range, and export the matching movements as CSV. The signed total of the
selection is printed on standard error.

With --list, print the distinct transaction types and accounts instead.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&flags.Category, "category", "c", "", "Transaction type to keep")
	Cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Account to keep")
	Cmd.Flags().StringVar(&flags.From, "from", "", "First trade date to keep (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&flags.To, "to", "", "Last trade date to keep (YYYY-MM-DD)")
	Cmd.Flags().BoolVar(&flags.List, "list", false, "List the distinct transaction types and accounts")
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
	txs := snap.Portfolio.Ledger

	if flags.List {
		if err := root.WriteOutput(func(w io.Writer) error {
			return WriteChoices(w, txs)
		}); err != nil {
			return err
		}
		return loadErr
	}

	view := ledger.Apply(txs, criteria)
	root.AppContainer.GetLogger().Info("Filtered account movements",
		logging.F(logging.FieldCategory, criteria.Category),
		logging.F(logging.FieldAccount, criteria.Account),
		logging.F(logging.FieldCount, len(view.Transactions)))

	writer := root.AppContainer.GetCSVWriter()
	if err := root.WriteOutput(func(w io.Writer) error {
		return writer.WriteLedger(w, view.Transactions)
	}); err != nil {
		return fmt.Errorf("error writing transactions: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), Summary(view, root.AppContainer.GetConfig().Report.BaseCurrency))
	return loadErr
}

// Summary is the one-line total of a view.
func Summary(v ledger.View, currency string) string {
	return fmt.Sprintf("Total: %s (%d movements)",
		report.Signed(v.Total.Sign, report.FormatMoney(v.Total.Value, currency)),
		len(v.Transactions))
}

// WriteChoices prints the values the filter accepts.
func WriteChoices(w io.Writer, txs []models.LedgerTransaction) error {
	_, err := fmt.Fprintf(w, "Transaction types:\n%s\nAccounts:\n%s\n",
		bullets(ledger.Categories(txs)), bullets(ledger.Accounts(txs)))
	return err
}

func bullets(values []string) string {
	if len(values) == 0 {
		return "  (none)"
	}
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = "  - " + v
	}
	return strings.Join(lines, "\n")
}
