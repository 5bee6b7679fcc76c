// Package ledger filters the account movements report.
//
// Filtering is a pure function of the full ledger and an immutable Criteria
// value: the current selection is held by the caller and every change
// recomputes the view from scratch.
package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/portfolio-report/internal/currencyutils"
	"fjacquet/portfolio-report/internal/dateutils"
	"fjacquet/portfolio-report/internal/models"

	"github.com/shopspring/decimal"
)

// Criteria are the optional constraints of a ledger view. A zero field
// places no constraint on its dimension. Date bounds are inclusive calendar
// dates compared against the trade date.
type Criteria struct {
	Category string
	Account  string
	From     time.Time
	To       time.Time
}

// IsZero reports whether c constrains nothing.
func (c Criteria) IsZero() bool {
	return c.Category == "" && c.Account == "" && c.From.IsZero() && c.To.IsZero()
}

// Matches reports whether tx satisfies every present constraint.
func (c Criteria) Matches(tx models.LedgerTransaction) bool {
	if c.Category != "" && tx.TransactionType != c.Category {
		return false
	}
	if c.Account != "" && tx.Account != c.Account {
		return false
	}
	return dateutils.InRange(tx.TradeDate, c.From, c.To)
}

// Filter returns the transactions matching c in ledger order. The result is
// a new slice; txs is not modified.
func Filter(txs []models.LedgerTransaction, c Criteria) []models.LedgerTransaction {
	out := make([]models.LedgerTransaction, 0, len(txs))
	for _, tx := range txs {
		if c.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Total sums the amounts of txs and classifies the result.
func Total(txs []models.LedgerTransaction) models.SignedValue {
	amounts := make([]decimal.Decimal, len(txs))
	for i, tx := range txs {
		amounts[i] = tx.Amount
	}
	return models.NewSignedValue(currencyutils.Sum(amounts...))
}

// View is one filtered ledger together with its total.
type View struct {
	Criteria     Criteria                   `json:"-" yaml:"-"`
	Transactions []models.LedgerTransaction `json:"transactions" yaml:"transactions"`
	Total        models.SignedValue         `json:"total" yaml:"total"`
}

// Apply filters txs and totals the result.
func Apply(txs []models.LedgerTransaction, c Criteria) View {
	filtered := Filter(txs, c)
	return View{Criteria: c, Transactions: filtered, Total: Total(filtered)}
}

// Categories returns the sorted distinct transaction types of txs, the
// choices offered for the category constraint.
func Categories(txs []models.LedgerTransaction) []string {
	return distinct(txs, func(tx models.LedgerTransaction) string { return tx.TransactionType })
}

// Accounts returns the sorted distinct account names of txs.
func Accounts(txs []models.LedgerTransaction) []string {
	return distinct(txs, func(tx models.LedgerTransaction) string { return tx.Account })
}

func distinct(txs []models.LedgerTransaction, field func(models.LedgerTransaction) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, tx := range txs {
		v := field(tx)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ParseCriteria builds Criteria from text inputs. Empty strings leave their
// dimension unconstrained; dates are YYYY-MM-DD.
func ParseCriteria(category, account, from, to string) (Criteria, error) {
	c := Criteria{
		Category: strings.TrimSpace(category),
		Account:  strings.TrimSpace(account),
	}
	var err error
	if strings.TrimSpace(from) != "" {
		if c.From, err = dateutils.ParseISO(from); err != nil {
			return Criteria{}, fmt.Errorf("invalid from date: %w", err)
		}
	}
	if strings.TrimSpace(to) != "" {
		if c.To, err = dateutils.ParseISO(to); err != nil {
			return Criteria{}, fmt.Errorf("invalid to date: %w", err)
		}
	}
	return c, nil
}
