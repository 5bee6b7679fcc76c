// Package metrics computes the cross-section figures shown at the top of the
// report: total value, year-to-date return and net cash flow.
package metrics

import (
	"fjacquet/portfolio-report/internal/currencyutils"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/rawdoc"

	"github.com/shopspring/decimal"
)

// Metrics are the derived headline figures, each paired with its sign.
type Metrics struct {
	TotalValue models.SignedValue `json:"total_value" yaml:"total_value"`
	YTDReturn  models.SignedValue `json:"ytd_return" yaml:"ytd_return"`
	NetFlow    models.SignedValue `json:"net_flow" yaml:"net_flow"`
	// YTDFound is false when the document carries no total row and
	// YTDReturn is reported as zero.
	YTDFound bool `json:"ytd_found" yaml:"ytd_found"`
}

// Compute derives every metric from the normalized model, reading the raw
// document only for the year-to-date return.
func Compute(p *models.Portfolio, doc rawdoc.Document) Metrics {
	ytd, found := YTDReturn(doc)
	return Metrics{
		TotalValue: models.NewSignedValue(TotalValue(p)),
		YTDReturn:  models.NewSignedValue(ytd),
		NetFlow:    models.NewSignedValue(NetFlow(p)),
		YTDFound:   found,
	}
}

// TotalValue sums the overall asset allocation. When that category is empty
// it falls back to the value of the most recent history point, and to zero
// when there is no history either.
func TotalValue(p *models.Portfolio) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if len(p.OverallAssets) > 0 {
		values := make([]decimal.Decimal, len(p.OverallAssets))
		for i, a := range p.OverallAssets {
			values[i] = a.Value
		}
		return currencyutils.Sum(values...)
	}
	if latest, ok := latestHistory(p.PerformanceHistory); ok {
		return latest.Value
	}
	return decimal.Zero
}

func latestHistory(history []models.PerformanceHistoryRecord) (models.PerformanceHistoryRecord, bool) {
	if len(history) == 0 {
		return models.PerformanceHistoryRecord{}, false
	}
	latest := history[0]
	for _, h := range history[1:] {
		if !h.Date.Before(latest.Date) {
			latest = h
		}
	}
	return latest, true
}

// YTDReturn reads the year-to-date return of the portfolio-wide total row of
// the multi-account performance section. That row is excluded from the
// normalized accounts, so it is looked up in the raw document. A missing or
// unreadable row yields zero and false; no other source is consulted.
func YTDReturn(doc rawdoc.Document) (decimal.Decimal, bool) {
	row, ok := doc.AggregateLookup(rawdoc.AccountsTotalQuery)
	if !ok {
		return decimal.Zero, false
	}
	ytd, err := currencyutils.ToDecimal(row.Value("tsuaReportYear"))
	if err != nil {
		return decimal.Zero, false
	}
	return ytd, true
}

// NetFlow sums the net deposits of the whole history.
func NetFlow(p *models.Portfolio) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	flows := make([]decimal.Decimal, len(p.PerformanceHistory))
	for i, h := range p.PerformanceHistory {
		flows[i] = h.NetFlow
	}
	return currencyutils.Sum(flows...)
}
