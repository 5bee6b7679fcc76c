package report

import (
	"strings"

	"fjacquet/portfolio-report/internal/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount in currency using its symbol and separators.
// Unknown currency codes fall back to a plain two-decimal figure followed by
// the code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}

// FormatOptionalPercent renders a percentage or a dash when absent.
func FormatOptionalPercent(v decimal.NullDecimal) string {
	if !v.Valid {
		return "-"
	}
	return FormatPercent(v.Decimal)
}

// signMarkers prefix signed figures the same way everywhere.
var signMarkers = map[models.Sign]string{
	models.SignPositive: "▲ ",
	models.SignNegative: "▼ ",
	models.SignNeutral:  "",
}

// Signed prefixes text with the marker of s.
func Signed(s models.Sign, text string) string {
	return signMarkers[s] + text
}

// SignedPercent renders a return with its sign marker.
func SignedPercent(v decimal.Decimal) string {
	return Signed(models.Classify(v), FormatPercent(v))
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")

// cell escapes text for a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return cellEscaper.Replace(s)
}

// Limit returns at most n leading elements of s. A non-positive n keeps
// everything.
func Limit[T any](s []T, n int) []T {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
