// Package models defines the canonical, typed records produced by normalizing a
// portfolio export, together with the Portfolio that groups them.
package models

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// AllocationRecord is one row of an allocation-like category (asset classes,
// sectors, countries, currencies, ratings).
//
// Percentage is passed through from the export as-is; percentages of a
// category are not required to sum to 100.
type AllocationRecord struct {
	Name       string              `json:"name" yaml:"name"`
	Value      decimal.Decimal     `json:"value" yaml:"value"`
	Percentage decimal.NullDecimal `json:"percentage" yaml:"percentage"`
}

// MaturityYear is a bond maturity bucket: either a calendar year or the
// "no stated maturity" bucket.
type MaturityYear struct {
	Year       int
	NoMaturity bool
}

// Label returns the display label of the bucket.
func (m MaturityYear) Label() string {
	if m.NoMaturity {
		return NoMaturityLabel
	}
	return strconv.Itoa(m.Year)
}

// String implements fmt.Stringer.
func (m MaturityYear) String() string { return m.Label() }

// Less orders years ascending with the no-maturity bucket last.
func (m MaturityYear) Less(other MaturityYear) bool {
	if m.NoMaturity != other.NoMaturity {
		return other.NoMaturity
	}
	return m.Year < other.Year
}

// MarshalJSON writes the year as a number and the no-maturity bucket as its label.
func (m MaturityYear) MarshalJSON() ([]byte, error) {
	if m.NoMaturity {
		return json.Marshal(NoMaturityLabel)
	}
	return json.Marshal(m.Year)
}

// MarshalYAML mirrors MarshalJSON.
func (m MaturityYear) MarshalYAML() (interface{}, error) {
	if m.NoMaturity {
		return NoMaturityLabel, nil
	}
	return m.Year, nil
}

// BondMaturityRecord is one maturity bucket of the bond portfolio.
type BondMaturityRecord struct {
	Year       MaturityYear        `json:"year" yaml:"year"`
	Value      decimal.Decimal     `json:"value" yaml:"value"`
	Percentage decimal.NullDecimal `json:"percentage" yaml:"percentage"`
}

// AccountPerformanceRecord is the performance of one primary account.
// Value is expressed in the base currency whenever the export provides a
// converted figure.
type AccountPerformanceRecord struct {
	Name        string              `json:"name" yaml:"name"`
	Currency    string              `json:"currency" yaml:"currency"`
	Value       decimal.Decimal     `json:"value" yaml:"value"`
	Percentage  decimal.NullDecimal `json:"percentage" yaml:"percentage"`
	MonthReturn decimal.Decimal     `json:"month_return" yaml:"month_return"`
	YearReturn  decimal.Decimal     `json:"year_return" yaml:"year_return"`
}

// MarketIndexRecord is a benchmark index return.
type MarketIndexRecord struct {
	Name        string          `json:"name" yaml:"name"`
	MonthReturn decimal.Decimal `json:"month_return" yaml:"month_return"`
	YearReturn  decimal.Decimal `json:"year_return" yaml:"year_return"`
}

// PerformanceHistoryRecord is one month-end point of the portfolio history.
type PerformanceHistoryRecord struct {
	Date    time.Time       `json:"date" yaml:"date"`
	Value   decimal.Decimal `json:"value" yaml:"value"`
	NetFlow decimal.Decimal `json:"net_flow" yaml:"net_flow"`
	Profit  decimal.Decimal `json:"profit" yaml:"profit"`
}

// LedgerTransaction is one row of the account movements report.
type LedgerTransaction struct {
	Account         string          `json:"account" yaml:"account"`
	TradeDate       time.Time       `json:"trade_date" yaml:"trade_date"`
	SettlementDate  time.Time       `json:"settlement_date" yaml:"settlement_date"`
	SecurityName    string          `json:"security_name" yaml:"security_name"`
	TransactionType string          `json:"transaction_type" yaml:"transaction_type"`
	Quantity        decimal.Decimal `json:"quantity" yaml:"quantity"`
	Price           decimal.Decimal `json:"price" yaml:"price"`
	Amount          decimal.Decimal `json:"amount" yaml:"amount"`
}

// AccountHistoryRecord is the value history of a single account, oldest
// point first.
type AccountHistoryRecord struct {
	Name    string                     `json:"name" yaml:"name"`
	History []PerformanceHistoryRecord `json:"history" yaml:"history"`
}

// IncomeExpenseRecord is one row of the legacy cash movements list.
type IncomeExpenseRecord struct {
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Category    string          `json:"category" yaml:"category"`
	Account     string          `json:"account" yaml:"account"`
	AssetClass  string          `json:"asset_class" yaml:"asset_class"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
}

// AccountExposureCell is one non-zero (account, asset class) position.
type AccountExposureCell struct {
	Account    string          `json:"account" yaml:"account"`
	AssetClass string          `json:"asset_class" yaml:"asset_class"`
	Value      decimal.Decimal `json:"value" yaml:"value"`
}
