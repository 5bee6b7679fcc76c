package normalizer

import (
	"fjacquet/portfolio-report/internal/models"

	"github.com/shopspring/decimal"
)

// Rollup keeps the topN largest records and collapses the rest into a single
// record named label whose value and percentage are the sums of the
// remainder. The input is not modified. When nothing is left over, or topN is
// not positive, the records are returned sorted and unchanged.
//
// The remainder percentage is null only when no remainder row carried one.
func Rollup(records []models.AllocationRecord, topN int, label string) []models.AllocationRecord {
	sorted := make([]models.AllocationRecord, len(records))
	copy(sorted, records)
	sortByValueDesc(sorted)

	if topN <= 0 || len(sorted) <= topN {
		return sorted
	}

	other := models.AllocationRecord{Name: label, Value: decimal.Zero}
	pct := decimal.Zero
	hasPct := false
	for _, r := range sorted[topN:] {
		other.Value = other.Value.Add(r.Value)
		if r.Percentage.Valid {
			pct = pct.Add(r.Percentage.Decimal)
			hasPct = true
		}
	}
	if hasPct {
		other.Percentage = decimal.NewNullDecimal(pct)
	}

	out := make([]models.AllocationRecord, 0, topN+1)
	out = append(out, sorted[:topN]...)
	return append(out, other)
}
