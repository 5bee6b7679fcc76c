// Package exposure builds the account by asset-class exposure matrix.
package exposure

import (
	"fjacquet/portfolio-report/internal/models"

	"github.com/shopspring/decimal"
)

// Account is one column of the matrix: the source account name and the
// short label shown in the header.
type Account struct {
	Name    string `mapstructure:"name" yaml:"name" json:"name"`
	Display string `mapstructure:"display" yaml:"display" json:"display"`
}

// Label returns the display label, or the name when none is set.
func (a Account) Label() string {
	if a.Display != "" {
		return a.Display
	}
	return a.Name
}

// Matrix is the dense account by asset-class grid.
//
// Rows follow the asset classes, columns follow the fixed account ordering.
// ColumnTotals always equal the sum of their column's cells. RowTotals are
// the asset classes' own reported values and may differ from the sum of
// their row when the exposure breakdown is incomplete.
type Matrix struct {
	Accounts     []Account           `json:"accounts" yaml:"accounts"`
	AssetClasses []string            `json:"asset_classes" yaml:"asset_classes"`
	Cells        [][]decimal.Decimal `json:"cells" yaml:"cells"`
	RowTotals    []decimal.Decimal   `json:"row_totals" yaml:"row_totals"`
	ColumnTotals []decimal.Decimal   `json:"column_totals" yaml:"column_totals"`
	GrandTotal   decimal.Decimal     `json:"grand_total" yaml:"grand_total"`
}

type cellKey struct {
	account    string
	assetClass string
}

// Build joins the exposure cells with the account ordering and the asset
// classes. Accounts without any cell still get a zero column. When several
// cells share an (account, asset class) pair the first one is used.
func Build(accounts []Account, assets []models.AllocationRecord, cells []models.AccountExposureCell) Matrix {
	index := make(map[cellKey]decimal.Decimal, len(cells))
	for _, c := range cells {
		k := cellKey{account: c.Account, assetClass: c.AssetClass}
		if _, seen := index[k]; !seen {
			index[k] = c.Value
		}
	}

	m := Matrix{
		Accounts:     append([]Account(nil), accounts...),
		AssetClasses: make([]string, len(assets)),
		Cells:        make([][]decimal.Decimal, len(assets)),
		RowTotals:    make([]decimal.Decimal, len(assets)),
		ColumnTotals: make([]decimal.Decimal, len(accounts)),
		GrandTotal:   decimal.Zero,
	}
	for j := range m.ColumnTotals {
		m.ColumnTotals[j] = decimal.Zero
	}

	for i, asset := range assets {
		m.AssetClasses[i] = asset.Name
		m.RowTotals[i] = asset.Value
		m.GrandTotal = m.GrandTotal.Add(asset.Value)

		row := make([]decimal.Decimal, len(accounts))
		for j, acc := range accounts {
			v, ok := index[cellKey{account: acc.Name, assetClass: asset.Name}]
			if !ok {
				row[j] = decimal.Zero
				continue
			}
			row[j] = v
			m.ColumnTotals[j] = m.ColumnTotals[j].Add(v)
		}
		m.Cells[i] = row
	}
	return m
}

// Cell returns the value at (asset class i, account j).
func (m Matrix) Cell(i, j int) decimal.Decimal {
	return m.Cells[i][j]
}

// RowSum returns the sum of the cells of row i, which can differ from
// RowTotals[i].
func (m Matrix) RowSum(i int) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m.Cells[i] {
		total = total.Add(v)
	}
	return total
}

// Unmatched returns the cells whose account or asset class has no place in
// the matrix. They are not shown, so callers may want to log them.
func Unmatched(accounts []Account, assets []models.AllocationRecord, cells []models.AccountExposureCell) []models.AccountExposureCell {
	knownAccounts := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		knownAccounts[a.Name] = true
	}
	knownAssets := make(map[string]bool, len(assets))
	for _, a := range assets {
		knownAssets[a.Name] = true
	}

	var out []models.AccountExposureCell
	for _, c := range cells {
		if !knownAccounts[c.Account] || !knownAssets[c.AssetClass] {
			out = append(out, c)
		}
	}
	return out
}
