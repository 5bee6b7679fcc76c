package rawdoc

import (
	"fjacquet/portfolio-report/internal/currencyutils"
	"fjacquet/portfolio-report/internal/models"

	"github.com/shopspring/decimal"
)

// AggregateQuery identifies a precomputed aggregate row inside a section.
type AggregateQuery struct {
	Category           models.Category
	NameField          string
	Token              string
	DiscriminatorField string
	DiscriminatorValue int64
}

// AccountsTotalQuery locates the portfolio-wide total row of the multi-account
// performance section.
var AccountsTotalQuery = AggregateQuery{
	Category:           models.CategoryAccountsPerformance,
	NameField:          "hesh_nameEng",
	Token:              models.TotalToken,
	DiscriminatorField: "sugdoh",
	DiscriminatorValue: 0,
}

// AggregateLookup returns the aggregate row matched by q.
//
// Normalization drops aggregate rows from every category, so metrics that need
// a precomputed total read it here, straight from the raw document. This is
// the one deliberate exception to reading only the normalized model.
func (d Document) AggregateLookup(q AggregateQuery) (Row, bool) {
	rows, _, ok := d.Section(q.Category)
	if !ok {
		return nil, false
	}
	want := decimal.NewFromInt(q.DiscriminatorValue)
	for _, raw := range rows {
		row, ok := AsRow(raw)
		if !ok {
			continue
		}
		if row.String(q.NameField) != q.Token {
			continue
		}
		if q.DiscriminatorField != "" {
			got, err := currencyutils.ToDecimal(row.Value(q.DiscriminatorField))
			if err != nil || !got.Equal(want) {
				continue
			}
		}
		return row, true
	}
	return nil, false
}
