package normalizer

import (
	"sort"

	"fjacquet/portfolio-report/internal/currencyutils"
	"fjacquet/portfolio-report/internal/logging"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/rawdoc"

	"github.com/shopspring/decimal"
)

// allocationLayout describes how one allocation-like section maps onto
// AllocationRecord.
type allocationLayout struct {
	category  models.Category
	nameKeys  []string
	valueKeys []string
	pctKeys   []string
	// nonZero drops rows whose value is zero; the export lists empty
	// buckets in some sections.
	nonZero     bool
	sortByValue bool
}

var allocationLayouts = map[models.Category]allocationLayout{
	models.CategoryOverallAssets: {
		nameKeys: []string{"afikname"}, valueKeys: []string{"shovi"}, pctKeys: []string{"ahuz"},
		nonZero: true, sortByValue: true,
	},
	models.CategoryFinancialAssets: {
		nameKeys: []string{"name"}, valueKeys: []string{"value"}, pctKeys: []string{"pct", "percentage"},
	},
	models.CategoryGeography: {
		nameKeys: []string{"CountryName", "countryName"}, valueKeys: []string{"Shovi", "shovi"}, pctKeys: []string{"Ahuz", "ahuz"},
		nonZero: true, sortByValue: true,
	},
	models.CategoryCurrencyExposure: {
		nameKeys: []string{"hatzmadaName"}, valueKeys: []string{"Shovi", "shovi"}, pctKeys: []string{"Ahuz", "ahuz"},
		sortByValue: true,
	},
	models.CategoryLiquidity: {
		nameKeys: []string{"SugName"}, valueKeys: []string{"Shovi", "shovi"}, pctKeys: []string{"Ahuz", "ahuz"},
	},
	models.CategoryEquitiesBySector: {
		nameKeys: []string{"Anafim"}, valueKeys: []string{"shovi"}, pctKeys: []string{"ahuz"},
		sortByValue: true,
	},
	models.CategoryEquitiesByCountry: {
		nameKeys: []string{"countryName", "CountryName"}, valueKeys: []string{"shovi"}, pctKeys: []string{"ahuz"},
	},
	models.CategoryEquitiesByCurrency: {
		nameKeys: []string{"SugName"}, valueKeys: []string{"shovi"}, pctKeys: []string{"ahuz"},
	},
	models.CategoryBondsRating: {
		nameKeys: []string{"DerugName"}, valueKeys: []string{"shovi"}, pctKeys: []string{"ahuz"},
		sortByValue: true,
	},
	models.CategoryBondsCurrency: {
		nameKeys: []string{"hatzmadaName"}, valueKeys: []string{"shovi"}, pctKeys: []string{"ahuz"},
		sortByValue: true,
	},
}

// allocations normalizes an allocation-like category. rename, when non-nil,
// maps source names to display names.
func (n *Normalizer) allocations(doc rawdoc.Document, c models.Category, rename func(string) string) []models.AllocationRecord {
	layout := allocationLayouts[c]
	out := collect(n, doc, c, func(row rawdoc.Row) (models.AllocationRecord, error) {
		name := row.String(layout.nameKeys...)
		if name == "" {
			return models.AllocationRecord{}, errMalformed
		}
		// Aggregate rows carry a total marker or a synthetic grouping id.
		if isAggregateName(name) || currencyutils.Truthy(row.Value("sugId")) {
			return models.AllocationRecord{}, errSkip
		}
		value, err := requiredDecimal(c, row, layout.valueKeys...)
		if err != nil {
			return models.AllocationRecord{}, err
		}
		if layout.nonZero && value.IsZero() {
			return models.AllocationRecord{}, errSkip
		}
		if rename != nil {
			name = rename(name)
		}
		return models.AllocationRecord{
			Name:       name,
			Value:      value,
			Percentage: n.optionalPercentage(c, row, layout.pctKeys...),
		}, nil
	})
	if layout.sortByValue {
		sortByValueDesc(out)
	}
	return out
}

// optionalPercentage reads a row's share. A present but unreadable value is
// reported as null, like an absent one.
func (n *Normalizer) optionalPercentage(c models.Category, row rawdoc.Row, keys ...string) decimal.NullDecimal {
	raw := row.String(keys...)
	if raw == "" {
		return decimal.NullDecimal{}
	}
	pct := currencyutils.OptionalDecimal(row.Value(keys...))
	if !pct.Valid {
		n.logger.Debug("Ignoring unreadable percentage",
			logging.F(logging.FieldCategory, string(c)),
			logging.F(logging.FieldReason, raw))
	}
	return pct
}

// sortByValueDesc orders records by value, largest first; ties keep input order.
func sortByValueDesc(records []models.AllocationRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Value.GreaterThan(records[j].Value)
	})
}

// OverallAssets normalizes the asset-class allocation.
func (n *Normalizer) OverallAssets(doc rawdoc.Document) []models.AllocationRecord {
	return n.allocations(doc, models.CategoryOverallAssets, nil)
}

// FinancialAssets normalizes the financial-instrument allocation.
func (n *Normalizer) FinancialAssets(doc rawdoc.Document) []models.AllocationRecord {
	return n.allocations(doc, models.CategoryFinancialAssets, nil)
}

// Geography normalizes the geographic exposure, mapping country codes to
// display names.
func (n *Normalizer) Geography(doc rawdoc.Document) []models.AllocationRecord {
	return n.allocations(doc, models.CategoryGeography, func(code string) string {
		if display, ok := n.opts.GeographyNames[code]; ok {
			return display
		}
		return code
	})
}

// CurrencyExposure normalizes the exposure by currency.
func (n *Normalizer) CurrencyExposure(doc rawdoc.Document) []models.AllocationRecord {
	return n.allocations(doc, models.CategoryCurrencyExposure, nil)
}

// Liquidity normalizes the liquidity breakdown.
func (n *Normalizer) Liquidity(doc rawdoc.Document) []models.AllocationRecord {
	return n.allocations(doc, models.CategoryLiquidity, nil)
}

// EquitiesBySector normalizes the equity sectors, largest first so that a
// Rollup keeps the biggest ones.
func (n *Normalizer) EquitiesBySector(doc rawdoc.Document) []models.AllocationRecord {
	return n.allocations(doc, models.CategoryEquitiesBySector, nil)
}

func (n *Normalizer) EquitiesByCountry(doc rawdoc.Document) []models.AllocationRecord {
	return n.allocations(doc, models.CategoryEquitiesByCountry, nil)
}

func (n *Normalizer) EquitiesByCurrency(doc rawdoc.Document) []models.AllocationRecord {
	return n.allocations(doc, models.CategoryEquitiesByCurrency, nil)
}

func (n *Normalizer) BondsRating(doc rawdoc.Document) []models.AllocationRecord {
	return n.allocations(doc, models.CategoryBondsRating, nil)
}

func (n *Normalizer) BondsCurrency(doc rawdoc.Document) []models.AllocationRecord {
	return n.allocations(doc, models.CategoryBondsCurrency, nil)
}
