package exposure

import (
	"testing"

	"fjacquet/portfolio-report/internal/models"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func asset(name, value string) models.AllocationRecord {
	return models.AllocationRecord{Name: name, Value: dec(value)}
}

func cell(account, assetClass, value string) models.AccountExposureCell {
	return models.AccountExposureCell{Account: account, AssetClass: assetClass, Value: dec(value)}
}

func TestBuild(t *testing.T) {
	accounts := []Account{{Name: "A", Display: "a"}, {Name: "B"}, {Name: "Unused"}}
	assets := []models.AllocationRecord{asset("Equities", "100"), asset("Cash", "50")}
	cells := []models.AccountExposureCell{
		cell("A", "Equities", "60"),
		cell("B", "Equities", "30"),
		cell("A", "Cash", "50"),
		cell("A", "Equities", "999"),
		cell("Elsewhere", "Cash", "7"),
	}

	m := Build(accounts, assets, cells)

	assert.Equal(t, []string{"Equities", "Cash"}, m.AssetClasses)
	require.Len(t, m.Cells, 2)
	require.Len(t, m.Cells[0], 3)

	assert.True(t, dec("60").Equal(m.Cell(0, 0)), "first matching cell wins")
	assert.True(t, dec("30").Equal(m.Cell(0, 1)))
	assert.True(t, m.Cell(0, 2).IsZero())
	assert.True(t, m.Cell(1, 1).IsZero())

	assert.True(t, dec("110").Equal(m.ColumnTotals[0]))
	assert.True(t, dec("30").Equal(m.ColumnTotals[1]))
	assert.True(t, m.ColumnTotals[2].IsZero(), "unseen account keeps a zero column")

	// The row total is the reported asset value, not the cell sum.
	assert.True(t, dec("100").Equal(m.RowTotals[0]))
	assert.True(t, dec("90").Equal(m.RowSum(0)))

	assert.True(t, dec("150").Equal(m.GrandTotal))
	assert.Equal(t, "a", m.Accounts[0].Label())
	assert.Equal(t, "B", m.Accounts[1].Label())
}

func TestBuild_Empty(t *testing.T) {
	m := Build(DefaultAccounts(), nil, nil)
	assert.Empty(t, m.AssetClasses)
	assert.Len(t, m.ColumnTotals, 9)
	assert.True(t, m.GrandTotal.IsZero())
}

func TestUnmatched(t *testing.T) {
	accounts := []Account{{Name: "A"}}
	assets := []models.AllocationRecord{asset("Cash", "1")}
	cells := []models.AccountExposureCell{
		cell("A", "Cash", "1"),
		cell("B", "Cash", "2"),
		cell("A", "Gold", "3"),
	}

	got := Unmatched(accounts, assets, cells)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Account)
	assert.Equal(t, "Gold", got[1].AssetClass)
}

func TestDefaultAccounts(t *testing.T) {
	accounts := DefaultAccounts()
	require.Len(t, accounts, 9)
	assert.Equal(t, "SAFRA", accounts[2].Label())
	assert.Equal(t, "IBI", accounts[8].Label())
}

func TestBuildProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	accountNames := []string{"A", "B", "C", "D"}
	assetNames := []string{"Cash", "Bonds", "Equities"}
	accounts := []Account{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	assets := []models.AllocationRecord{asset("Cash", "10"), asset("Bonds", "20"), asset("Equities", "30")}

	genCells := gen.SliceOf(gen.IntRange(0, len(accountNames)*len(assetNames)*1000-1))
	toCells := func(codes []int) []models.AccountExposureCell {
		out := make([]models.AccountExposureCell, len(codes))
		for i, code := range codes {
			out[i] = models.AccountExposureCell{
				Account:    accountNames[code%len(accountNames)],
				AssetClass: assetNames[(code/len(accountNames))%len(assetNames)],
				Value:      decimal.NewFromInt(int64(code / (len(accountNames) * len(assetNames)))),
			}
		}
		return out
	}

	properties.Property("column totals equal the sum of their cells", prop.ForAll(
		func(codes []int) bool {
			m := Build(accounts, assets, toCells(codes))
			for j := range m.Accounts {
				sum := decimal.Zero
				for i := range m.AssetClasses {
					sum = sum.Add(m.Cell(i, j))
				}
				if !sum.Equal(m.ColumnTotals[j]) {
					return false
				}
			}
			return true
		},
		genCells,
	))

	properties.Property("grand total is the sum of asset values", prop.ForAll(
		func(codes []int) bool {
			return Build(accounts, assets, toCells(codes)).GrandTotal.Equal(dec("60"))
		},
		genCells,
	))

	properties.TestingRun(t)
}
