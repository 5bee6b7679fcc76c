package models

// Category names the normalized record sequences of a Portfolio.
type Category string

// Report categories
const (
	CategoryOverallAssets       Category = "overall_assets"
	CategoryFinancialAssets     Category = "financial_assets"
	CategoryGeography           Category = "geography_exposure"
	CategoryCurrencyExposure    Category = "currency_exposure"
	CategoryLiquidity           Category = "liquidity"
	CategoryAccountsPerformance Category = "accounts_performance"
	CategoryMarketIndices       Category = "market_indices"
	CategoryEquitiesBySector    Category = "equities_by_sector"
	CategoryEquitiesByCountry   Category = "equities_by_country"
	CategoryEquitiesByCurrency  Category = "equities_by_currency"
	CategoryBondsMaturity       Category = "bonds_maturity"
	CategoryBondsRating         Category = "bonds_rating"
	CategoryBondsCurrency       Category = "bonds_currency"
	CategoryPerformanceHistory  Category = "performance_history"
	CategoryAccountHistory      Category = "account_performance_history"
	CategoryAccountExposure     Category = "account_exposure"
	CategoryLedger              Category = "account_movements"
	CategoryIncomeExpenses      Category = "income_expenses"
)

// AllCategories lists every category in report order.
var AllCategories = []Category{
	CategoryMarketIndices,
	CategoryOverallAssets,
	CategoryFinancialAssets,
	CategoryGeography,
	CategoryCurrencyExposure,
	CategoryLiquidity,
	CategoryAccountsPerformance,
	CategoryEquitiesBySector,
	CategoryEquitiesByCountry,
	CategoryEquitiesByCurrency,
	CategoryBondsMaturity,
	CategoryBondsRating,
	CategoryBondsCurrency,
	CategoryPerformanceHistory,
	CategoryAccountHistory,
	CategoryAccountExposure,
	CategoryLedger,
	CategoryIncomeExpenses,
}

// Sentinel tokens used by the export for aggregate rows.
const (
	TotalToken       = "Total"
	TotalTokenHebrew = "סה\"כ"
	OtherLabel       = "אחר"
	NoMaturityLabel  = "ללא"
)

// Reserved bond maturity years.
const (
	MaturityYearNone      = 9999
	MaturityYearAggregate = 99999
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
