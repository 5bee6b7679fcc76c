package rawdoc

import "fjacquet/portfolio-report/internal/models"

// sectionAliases lists, per category, the source keys the export has been seen
// to use, in priority order. Some spellings are not valid identifiers in the
// exporting system and get rewritten with underscores on the way out.
var sectionAliases = map[models.Category][]string{
	models.CategoryMarketIndices:       {"market_indices"},
	models.CategoryOverallAssets:       {"overall_assets"},
	models.CategoryFinancialAssets:     {"financial_assets"},
	models.CategoryGeography:           {"geography_exposure"},
	models.CategoryCurrencyExposure:    {"currency_exposure"},
	models.CategoryLiquidity:           {"liquidity"},
	models.CategoryAccountsPerformance: {"multi-account_performance", "multi_account_performance"},
	models.CategoryEquitiesBySector:    {"equities_by_sector", "equities_sectors"},
	models.CategoryEquitiesByCountry:   {"equities_by_country"},
	models.CategoryEquitiesByCurrency:  {"equities_by_currency"},
	models.CategoryBondsMaturity:       {"bonds_maturity"},
	models.CategoryBondsRating:         {"bonds_rating"},
	models.CategoryBondsCurrency:       {"bonds_currency"},
	models.CategoryPerformanceHistory:  {"performance_by_month", "performance_history"},
	models.CategoryAccountHistory:      {"account_performance_history"},
	models.CategoryAccountExposure:     {"account_exposure"},
	models.CategoryLedger:              {"accountMovementsReport", "account_movements_report"},
	models.CategoryIncomeExpenses:      {"income_expenses"},
}

// Aliases returns the accepted source keys of c in priority order.
func Aliases(c models.Category) []string {
	keys := sectionAliases[c]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}
