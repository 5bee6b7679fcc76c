package normalizer

import (
	"testing"
	"time"

	"fjacquet/portfolio-report/internal/logging"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/parsererror"
	"fjacquet/portfolio-report/internal/rawdoc"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row = map[string]interface{}

func newTestNormalizer() (*Normalizer, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return New(logger, DefaultOptions()), logger
}

func doc(sections map[string]interface{}) rawdoc.Document {
	return rawdoc.MustFromMap(sections)
}

func rows(r ...row) []interface{} {
	out := make([]interface{}, len(r))
	for i := range r {
		out[i] = r[i]
	}
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "expected %s, got %s", want, got)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverallAssets_ExcludesTotalAndSortsByValue(t *testing.T) {
	n, _ := newTestNormalizer()
	d := doc(map[string]interface{}{
		"overall_assets": rows(
			row{"afikname": "Cash", "shovi": 100, "ahuz": 50},
			row{"afikname": "Bonds", "shovi": 100, "ahuz": 50},
			row{"afikname": "Total", "shovi": 200, "ahuz": 100},
		),
	})

	got := n.OverallAssets(d)

	require.Len(t, got, 2)
	assert.Equal(t, "Cash", got[0].Name)
	assert.Equal(t, "Bonds", got[1].Name)
	assertDecimal(t, "100", got[0].Value)
	require.True(t, got[0].Percentage.Valid)
	assertDecimal(t, "50", got[0].Percentage.Decimal)
}

func TestOverallAssets_RowFiltering(t *testing.T) {
	n, logger := newTestNormalizer()
	d := doc(map[string]interface{}{
		"overall_assets": rows(
			row{"afikname": "מניות", "shovi": 8769301.69726, "ahuz": 14.45},
			row{"afikname": models.TotalTokenHebrew, "shovi": 900, "ahuz": 100},
			row{"afikname": "Sub group", "shovi": 10, "sugId": 3},
			row{"afikname": "Empty bucket", "shovi": 0},
			row{"afikname": "", "shovi": 5},
			row{"afikname": "No value"},
			row{"afikname": "Broken", "shovi": "12abc"},
			row{"afikname": "Cash", "shovi": "1,000.50"},
		),
	})

	got := n.OverallAssets(d)

	require.Len(t, got, 2)
	assert.Equal(t, "מניות", got[0].Name)
	assert.Equal(t, "Cash", got[1].Name)
	assertDecimal(t, "1000.5", got[1].Value)
	assert.False(t, got[1].Percentage.Valid)

	warns := logger.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.True(t, parsererror.IsUnparseable(warns[0].Error))
}

func TestAllocations_UnreadablePercentage(t *testing.T) {
	n, logger := newTestNormalizer()
	d := doc(map[string]interface{}{
		"overall_assets": rows(
			row{"afikname": "Bonds", "shovi": 200, "ahuz": "12.5%"},
			row{"afikname": "Cash", "shovi": 100, "ahuz": ""},
			row{"afikname": "Equities", "shovi": 50, "ahuz": "7.25"},
		),
	})

	got := n.OverallAssets(d)

	require.Len(t, got, 3)
	assert.False(t, got[0].Percentage.Valid)
	assert.False(t, got[1].Percentage.Valid)
	require.True(t, got[2].Percentage.Valid)
	assertDecimal(t, "7.25", got[2].Percentage.Decimal)

	debugs := logger.GetEntriesByLevel("DEBUG")
	var unreadable []logging.LogEntry
	for _, e := range debugs {
		if e.Message == "Ignoring unreadable percentage" {
			unreadable = append(unreadable, e)
		}
	}
	require.Len(t, unreadable, 1)
	assert.Contains(t, unreadable[0].Fields, logging.F(logging.FieldCategory, string(models.CategoryOverallAssets)))
	assert.Contains(t, unreadable[0].Fields, logging.F(logging.FieldReason, "12.5%"))
	assert.Empty(t, logger.GetEntriesByLevel("WARN"))
}

func TestAccountHistory(t *testing.T) {
	n, logger := newTestNormalizer()
	d := doc(map[string]interface{}{
		"account_performance_history": rows(
			row{"accountName": "UBP", "history": []interface{}{
				row{"ddate": "02/29/2024", "shovi": "1,200"},
				row{"ddate": "01/31/2024", "shovi": 1000, "netoDeposit": -50},
				row{"ddate": "01/01/2500", "shovi": 0},
				row{"ddate": "not a date", "shovi": 5},
				"junk",
			}},
			row{"accountName": "IBI"},
			row{"accountName": "Total", "history": []interface{}{}},
			row{"history": []interface{}{}},
		),
	})

	got := n.AccountHistory(d)

	require.Len(t, got, 2)
	assert.Equal(t, "UBP", got[0].Name)
	require.Len(t, got[0].History, 2)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), got[0].History[0].Date)
	assertDecimal(t, "-50", got[0].History[0].NetFlow)
	assertDecimal(t, "1200", got[0].History[1].Value)

	assert.Equal(t, "IBI", got[1].Name)
	assert.NotNil(t, got[1].History)
	assert.Empty(t, got[1].History)

	assert.True(t, logger.HasEntry("DEBUG", "Dropped unreadable account history points"))
	assert.Empty(t, logger.GetEntriesByLevel("WARN"))
}

func TestGeography_DisplayNames(t *testing.T) {
	n, _ := newTestNormalizer()
	d := doc(map[string]interface{}{
		"geography_exposure": rows(
			row{"CountryName": "USA", "Shovi": 10379571.38, "Ahuz": 22.78},
			row{"CountryName": "Israel", "Shovi": 22750853.37, "Ahuz": 49.93},
			row{"CountryName": "Other", "Shovi": 186776.58, "Ahuz": 0.40},
			row{"CountryName": "Total", "Shovi": 1, "Ahuz": 100},
			row{"CountryName": "Nowhere", "Shovi": 0},
		),
	})

	got := n.Geography(d)

	require.Len(t, got, 3)
	assert.Equal(t, "ישראל", got[0].Name)
	assert.Equal(t, `ארה"ב`, got[1].Name)
	assert.Equal(t, "Other", got[2].Name)
}

func accountRows() []interface{} {
	return rows(
		row{"hesh_nameEng": "IBI", "SymbolHalbana": `ש"ח`, "shovi": 1825571.97, "ahuz": 4.00, "tsuaReportMonth": -1.43, "tsuaReportYear": 10.06, "sugdoh": 0},
		row{"hesh_nameEng": "UBP", "SymbolHalbana": "USD", "shovi": 1301968.41, "shoviShekel": 4743070.92, "ahuz": 10.41, "tsuaReportMonth": 0, "tsuaReportYear": 0.44, "sugdoh": 0},
		row{"hesh_nameEng": "Taphnit", "SymbolHalbana": `ש"ח`, "shovi": 1591136.75, "tsuaReportYear": 22.53, "sugdoh": "0"},
		row{"hesh_nameEng": "IBI sub", "shovi": 10, "tsuaReportYear": 99, "sugdoh": 1},
		row{"hesh_nameEng": "Total", "shovi": 45000000, "tsuaReportYear": 5.56, "sugdoh": 0},
	)
}

func TestAccountsPerformance(t *testing.T) {
	n, _ := newTestNormalizer()
	got := n.AccountsPerformance(doc(map[string]interface{}{"multi-account_performance": accountRows()}))

	require.Len(t, got, 3)
	assert.Equal(t, []string{"Taphnit", "IBI", "UBP"}, []string{got[0].Name, got[1].Name, got[2].Name})

	ubp := got[2]
	assertDecimal(t, "4743070.92", ubp.Value)
	assert.Equal(t, "USD", ubp.Currency)
	assertDecimal(t, "0.44", ubp.YearReturn)

	assertDecimal(t, "-1.43", got[1].MonthReturn)
	assertDecimal(t, "0", got[0].MonthReturn)
}

func TestAccountsPerformance_KeyVariants(t *testing.T) {
	n, _ := newTestNormalizer()
	hyphen := n.Normalize(doc(map[string]interface{}{"multi-account_performance": accountRows()}))
	underscore := n.Normalize(doc(map[string]interface{}{"multi_account_performance": accountRows()}))

	require.NotEmpty(t, hyphen.AccountsPerformance)
	assert.Equal(t, hyphen.AccountsPerformance, underscore.AccountsPerformance)
}

func TestMarketIndices(t *testing.T) {
	n, _ := newTestNormalizer()
	got := n.MarketIndices(doc(map[string]interface{}{
		"market_indices": rows(
			row{"nechesName": "S&P 500", "MTD": 6.60949570167471, "YTD": 27.6831669053195},
			row{"nechesName": "TA 125", "MTD": 6.83857262311014},
		),
	}))

	require.Len(t, got, 2)
	assert.Equal(t, "S&P 500", got[0].Name)
	assertDecimal(t, "27.6831669053195", got[0].YearReturn)
	assertDecimal(t, "0", got[1].YearReturn)
}

func TestBondsMaturity_Sentinels(t *testing.T) {
	n, _ := newTestNormalizer()
	got := n.BondsMaturity(doc(map[string]interface{}{
		"bonds_maturity": rows(
			row{"years": 9999, "shovi": 500, "ahuz": 5},
			row{"years": 2027, "shovi": 30826.02, "ahuz": 0.35},
			row{"years": 99999, "shovi": 9000, "ahuz": 100},
			row{"years": "2025", "shovi": 915761.86, "ahuz": 10.51},
		),
	}))

	require.Len(t, got, 3)
	assert.Equal(t, 2025, got[0].Year.Year)
	assert.Equal(t, 2027, got[1].Year.Year)
	assert.True(t, got[2].Year.NoMaturity)
	assert.Equal(t, models.NoMaturityLabel, got[2].Year.Label())
	assertDecimal(t, "500", got[2].Value)
}

func TestBondsMaturity_UnparseableYear(t *testing.T) {
	n, logger := newTestNormalizer()
	got := n.BondsMaturity(doc(map[string]interface{}{
		"bonds_maturity": rows(
			row{"years": "soon", "shovi": 1},
			row{"years": 2030.5, "shovi": 1},
			row{"years": 2030, "shovi": 1},
		),
	}))

	require.Len(t, got, 1)
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 2)
}

func TestPerformanceHistory(t *testing.T) {
	n, _ := newTestNormalizer()
	got := n.PerformanceHistory(doc(map[string]interface{}{
		"performance_by_month": rows(
			row{"sugDoh": 1, "ddate": "02/29/2024", "shovi": 64927725.63, "netoDeposit": -14109441.16, "revachNominBruto": 539156.44},
			row{"sugDoh": 1, "ddate": "01/31/2024", "shovi": 78498839.41, "netoDeposit": -2985066.84},
			row{"sugDoh": 2, "ddate": "01/31/2024", "shovi": 1},
			row{"sugDoh": 1, "ddate": "01/01/2500", "shovi": 0},
		),
	}))

	require.Len(t, got, 2)
	assert.Equal(t, date(2024, time.January, 31), got[0].Date)
	assert.Equal(t, date(2024, time.February, 29), got[1].Date)
	assertDecimal(t, "-14109441.16", got[1].NetFlow)
	assertDecimal(t, "539156.44", got[1].Profit)
	assertDecimal(t, "0", got[0].Profit)
}

func TestLedger_LocaleAmounts(t *testing.T) {
	n, _ := newTestNormalizer()
	got := n.Ledger(doc(map[string]interface{}{
		"accountMovementsReport": rows(
			row{
				"accountName":     "IBI",
				"tradeDate":       "15/02/2024",
				"settlementDate":  "18/02/2024",
				"securityName":    "US TREASURY 2027",
				"transactionType": "קנייה",
				"quantity":        "103,000.00",
				"price":           "96.58",
				"amount3":         "99,477.40",
			},
		),
	}))

	require.Len(t, got, 1)
	tx := got[0]
	assertDecimal(t, "103000", tx.Quantity)
	assertDecimal(t, "96.58", tx.Price)
	assertDecimal(t, "99477.40", tx.Amount)
	assert.Equal(t, date(2024, time.February, 15), tx.TradeDate)
	assert.Equal(t, date(2024, time.February, 18), tx.SettlementDate)
	assert.Equal(t, "IBI", tx.Account)
	assert.Equal(t, "קנייה", tx.TransactionType)
}

func TestLedger_FailsClosedPerRow(t *testing.T) {
	n, logger := newTestNormalizer()
	got := n.Ledger(doc(map[string]interface{}{
		"account_movements_report": rows(
			row{"accountName": "A", "tradeDate": "01/03/2024", "amount3": "12..5"},
			row{"accountName": "A", "tradeDate": "02/03/2024", "amount3": "-1,250.00", "quantity": "", "price": nil},
			row{"accountName": "A", "tradeDate": "03/03/2024"},
			row{"accountName": "A", "tradeDate": "not a date", "amount3": "1"},
			row{"accountName": "A", "tradeDate": "04/03/2024", "amount3": "5", "quantity": "lots"},
		),
	}))

	require.Len(t, got, 1)
	assertDecimal(t, "-1250", got[0].Amount)
	assert.True(t, got[0].Quantity.IsZero())
	assert.True(t, got[0].SettlementDate.IsZero())

	warns := logger.GetEntriesByLevel("WARN")
	assert.Len(t, warns, 3)
	for _, w := range warns {
		assert.Error(t, w.Error)
	}
}

func TestIncomeExpenses(t *testing.T) {
	n, _ := newTestNormalizer()
	got := n.IncomeExpenses(doc(map[string]interface{}{
		"income_expenses": rows(
			row{"date": "15/01/2024", "description": "Dividend", "category": "דיבידנד", "amount": 1200, "account": "IBI", "afik": "מניות"},
			row{"date": "05/01/2024", "description": "Fees", "category": "עמלות", "amount": -150, "account": "לאומי"},
		),
	}))

	require.Len(t, got, 2)
	assert.Equal(t, date(2024, time.January, 15), got[0].Date)
	assert.Equal(t, "מניות", got[0].AssetClass)
	assert.Equal(t, date(2024, time.January, 5), got[1].Date)
	assertDecimal(t, "-150", got[1].Amount)
}

func TestAccountExposure_Sparse(t *testing.T) {
	n, _ := newTestNormalizer()
	got := n.AccountExposure(doc(map[string]interface{}{
		"account_exposure": rows(
			row{"account": "UBP", "asset_class": "מניות", "shovi": 120},
			row{"account": "UBP", "asset_class": "אג\"ח", "shovi": 0},
			row{"account": "", "asset_class": "מניות", "shovi": 1},
			row{"account": "IBI", "asset_class": "מזומן", "shovi": "3,000"},
		),
	}))

	require.Len(t, got, 2)
	assert.Equal(t, models.AccountExposureCell{Account: "UBP", AssetClass: "מניות", Value: got[0].Value}, got[0])
	assertDecimal(t, "3000", got[1].Value)
}

func TestNormalize_MissingAndMalformedSections(t *testing.T) {
	n, logger := newTestNormalizer()
	p := n.Normalize(doc(map[string]interface{}{
		"overall_assets":     "not an array",
		"geography_exposure": rows(nil, row{"CountryName": "USA", "Shovi": 5}),
		"bonds_rating":       []interface{}{"scalar", 42},
	}))

	assert.Empty(t, p.OverallAssets)
	assert.NotNil(t, p.OverallAssets)
	assert.Len(t, p.Geography, 1)
	assert.Empty(t, p.BondsRating)
	assert.NotNil(t, p.Ledger)
	assert.Empty(t, logger.GetEntriesByLevel("WARN"))
	assert.True(t, logger.HasEntry("INFO", "Normalized portfolio document"))
}

func TestNormalize_NoDocument(t *testing.T) {
	n, _ := newTestNormalizer()
	p := n.Normalize(rawdoc.Document{})
	assert.True(t, p.IsEmpty())
	assert.Equal(t, models.NewPortfolio(), p)
}

func TestNew_FillsDefaults(t *testing.T) {
	n := New(nil, Options{})
	assert.NotNil(t, n.logger)
	assert.Equal(t, DefaultOptions().Dates, n.opts.Dates)
	assert.NotNil(t, n.opts.GeographyNames)
}

func TestNormalize_ConfiguredLedgerConvention(t *testing.T) {
	opts := DefaultOptions()
	opts.Dates.Ledger = "MDY"
	n := New(logging.NewMockLogger(), opts)

	got := n.Ledger(doc(map[string]interface{}{
		"accountMovementsReport": rows(row{"accountName": "A", "tradeDate": "02/03/2024", "amount3": "1"}),
	}))

	require.Len(t, got, 1)
	assert.Equal(t, date(2024, time.February, 3), got[0].TradeDate)
}
