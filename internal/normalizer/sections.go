package normalizer

import (
	"errors"
	"sort"

	"fjacquet/portfolio-report/internal/currencyutils"
	"fjacquet/portfolio-report/internal/logging"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/parsererror"
	"fjacquet/portfolio-report/internal/rawdoc"
)

// Discriminator values used by the export.
const (
	accountKindPrimary = 0
	historyKindMonthly = 1
)

// historyPlaceholderYear is the year of the placeholder date written on
// unused monthly rows ("01/01/2500").
const historyPlaceholderYear = 2500

// MarketIndices normalizes the benchmark indices. Rows are not filtered; the
// display limit is applied by the report.
func (n *Normalizer) MarketIndices(doc rawdoc.Document) []models.MarketIndexRecord {
	c := models.CategoryMarketIndices
	return collect(n, doc, c, func(row rawdoc.Row) (models.MarketIndexRecord, error) {
		mtd, err := optionalDecimal(c, row, "MTD")
		if err != nil {
			return models.MarketIndexRecord{}, err
		}
		ytd, err := optionalDecimal(c, row, "YTD")
		if err != nil {
			return models.MarketIndexRecord{}, err
		}
		return models.MarketIndexRecord{
			Name:        row.String("nechesName"),
			MonthReturn: mtd,
			YearReturn:  ytd,
		}, nil
	})
}

// AccountsPerformance normalizes the primary accounts, best year-to-date
// return first. The total row and sub-account rows are excluded.
func (n *Normalizer) AccountsPerformance(doc rawdoc.Document) []models.AccountPerformanceRecord {
	c := models.CategoryAccountsPerformance
	out := collect(n, doc, c, func(row rawdoc.Row) (models.AccountPerformanceRecord, error) {
		name := row.String("hesh_nameEng")
		if name == "" {
			return models.AccountPerformanceRecord{}, errMalformed
		}
		if isAggregateName(name) || !discriminatorIs(row, accountKindPrimary, "sugdoh", "sugDoh") {
			return models.AccountPerformanceRecord{}, errSkip
		}

		// The converted figure is in the base currency; foreign accounts
		// otherwise report in their own currency.
		valueKeys := []string{"shovi"}
		if !blank(row.Value("shoviShekel")) {
			valueKeys = []string{"shoviShekel"}
		}
		value, err := requiredDecimal(c, row, valueKeys...)
		if err != nil {
			return models.AccountPerformanceRecord{}, err
		}
		mtd, err := optionalDecimal(c, row, "tsuaReportMonth")
		if err != nil {
			return models.AccountPerformanceRecord{}, err
		}
		ytd, err := optionalDecimal(c, row, "tsuaReportYear")
		if err != nil {
			return models.AccountPerformanceRecord{}, err
		}

		return models.AccountPerformanceRecord{
			Name:        name,
			Currency:    row.String("SymbolHalbana"),
			Value:       value,
			Percentage:  currencyutils.OptionalDecimal(row.Value("ahuz")),
			MonthReturn: mtd,
			YearReturn:  ytd,
		}, nil
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].YearReturn.GreaterThan(out[j].YearReturn)
	})
	return out
}

// BondsMaturity normalizes the maturity ladder: ascending years, the
// no-maturity bucket last, the aggregate bucket dropped.
func (n *Normalizer) BondsMaturity(doc rawdoc.Document) []models.BondMaturityRecord {
	c := models.CategoryBondsMaturity
	out := collect(n, doc, c, func(row rawdoc.Row) (models.BondMaturityRecord, error) {
		raw := row.Value("years")
		if blank(raw) {
			return models.BondMaturityRecord{}, errMalformed
		}
		yd, err := currencyutils.ToDecimal(raw)
		if err != nil || !yd.IsInteger() {
			if err == nil {
				err = parsererror.ErrUnparseable
			}
			return models.BondMaturityRecord{}, parsererror.NewParseError(string(c), "years", row.String("years"), err)
		}

		year := models.MaturityYear{Year: int(yd.IntPart())}
		switch year.Year {
		case models.MaturityYearAggregate:
			return models.BondMaturityRecord{}, errSkip
		case models.MaturityYearNone:
			year = models.MaturityYear{NoMaturity: true}
		}

		value, err := requiredDecimal(c, row, "shovi")
		if err != nil {
			return models.BondMaturityRecord{}, err
		}
		return models.BondMaturityRecord{
			Year:       year,
			Value:      value,
			Percentage: currencyutils.OptionalDecimal(row.Value("ahuz")),
		}, nil
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Year.Less(out[j].Year)
	})
	return out
}

// PerformanceHistory normalizes the monthly portfolio history in date order.
// Only monthly rows are kept; placeholder rows are dropped.
func (n *Normalizer) PerformanceHistory(doc rawdoc.Document) []models.PerformanceHistoryRecord {
	c := models.CategoryPerformanceHistory
	out := collect(n, doc, c, func(row rawdoc.Row) (models.PerformanceHistoryRecord, error) {
		if !discriminatorIs(row, historyKindMonthly, "sugDoh", "sugdoh") {
			return models.PerformanceHistoryRecord{}, errSkip
		}
		return n.historyPoint(c, row)
	})
	sortByDate(out)
	return out
}

// historyPoint reads one dated valuation. Placeholder dates are errSkip.
func (n *Normalizer) historyPoint(c models.Category, row rawdoc.Row) (models.PerformanceHistoryRecord, error) {
	date, err := requiredDate(c, row, n.opts.Dates.PerformanceHistory, "ddate", "date")
	if err != nil {
		return models.PerformanceHistoryRecord{}, err
	}
	if date.Year() >= historyPlaceholderYear {
		return models.PerformanceHistoryRecord{}, errSkip
	}
	value, err := requiredDecimal(c, row, "shovi", "value")
	if err != nil {
		return models.PerformanceHistoryRecord{}, err
	}
	flow, err := optionalDecimal(c, row, "netoDeposit")
	if err != nil {
		return models.PerformanceHistoryRecord{}, err
	}
	profit, err := optionalDecimal(c, row, "revachNominBruto")
	if err != nil {
		return models.PerformanceHistoryRecord{}, err
	}
	return models.PerformanceHistoryRecord{Date: date, Value: value, NetFlow: flow, Profit: profit}, nil
}

func sortByDate(history []models.PerformanceHistoryRecord) {
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.Before(history[j].Date)
	})
}

// AccountHistory normalizes the per-account value histories in source order.
// Unreadable points are dropped from their account, which is kept even when
// none of its points survive.
func (n *Normalizer) AccountHistory(doc rawdoc.Document) []models.AccountHistoryRecord {
	c := models.CategoryAccountHistory
	return collect(n, doc, c, func(row rawdoc.Row) (models.AccountHistoryRecord, error) {
		name := row.String("accountName", "account_name")
		if name == "" {
			return models.AccountHistoryRecord{}, errMalformed
		}
		if isAggregateName(name) {
			return models.AccountHistoryRecord{}, errSkip
		}

		points, _ := row.Value("history").([]interface{})
		history := make([]models.PerformanceHistoryRecord, 0, len(points))
		dropped := 0
		for _, v := range points {
			point, ok := rawdoc.AsRow(v)
			if !ok {
				dropped++
				continue
			}
			rec, err := n.historyPoint(c, point)
			switch {
			case err == nil:
				history = append(history, rec)
			case errors.Is(err, errSkip):
			default:
				dropped++
			}
		}
		if dropped > 0 {
			n.logger.Debug("Dropped unreadable account history points",
				logging.F(logging.FieldAccount, name),
				logging.F(logging.FieldDropped, dropped))
		}
		sortByDate(history)
		return models.AccountHistoryRecord{Name: name, History: history}, nil
	})
}

// AccountExposure normalizes the sparse account by asset-class fact table.
// Zero positions are not facts and are dropped.
func (n *Normalizer) AccountExposure(doc rawdoc.Document) []models.AccountExposureCell {
	c := models.CategoryAccountExposure
	return collect(n, doc, c, func(row rawdoc.Row) (models.AccountExposureCell, error) {
		account := row.String("account")
		asset := row.String("asset_class", "assetClass")
		if account == "" || asset == "" {
			return models.AccountExposureCell{}, errMalformed
		}
		if isAggregateName(account) || isAggregateName(asset) {
			return models.AccountExposureCell{}, errSkip
		}
		value, err := requiredDecimal(c, row, "shovi", "value")
		if err != nil {
			return models.AccountExposureCell{}, err
		}
		if value.IsZero() {
			return models.AccountExposureCell{}, errSkip
		}
		return models.AccountExposureCell{Account: account, AssetClass: asset, Value: value}, nil
	})
}
