package models

// Portfolio is the canonical portfolio model: one normalized record sequence
// per report category. It is built once per document load and is read-only
// afterwards; a new load replaces it entirely.
type Portfolio struct {
	MarketIndices       []MarketIndexRecord        `json:"market_indices" yaml:"market_indices"`
	OverallAssets       []AllocationRecord         `json:"overall_assets" yaml:"overall_assets"`
	FinancialAssets     []AllocationRecord         `json:"financial_assets" yaml:"financial_assets"`
	Geography           []AllocationRecord         `json:"geography_exposure" yaml:"geography_exposure"`
	CurrencyExposure    []AllocationRecord         `json:"currency_exposure" yaml:"currency_exposure"`
	Liquidity           []AllocationRecord         `json:"liquidity" yaml:"liquidity"`
	AccountsPerformance []AccountPerformanceRecord `json:"accounts_performance" yaml:"accounts_performance"`
	EquitiesBySector    []AllocationRecord         `json:"equities_by_sector" yaml:"equities_by_sector"`
	EquitiesByCountry   []AllocationRecord         `json:"equities_by_country" yaml:"equities_by_country"`
	EquitiesByCurrency  []AllocationRecord         `json:"equities_by_currency" yaml:"equities_by_currency"`
	BondsMaturity       []BondMaturityRecord       `json:"bonds_maturity" yaml:"bonds_maturity"`
	BondsRating         []AllocationRecord         `json:"bonds_rating" yaml:"bonds_rating"`
	BondsCurrency       []AllocationRecord         `json:"bonds_currency" yaml:"bonds_currency"`
	PerformanceHistory  []PerformanceHistoryRecord `json:"performance_history" yaml:"performance_history"`
	AccountHistory      []AccountHistoryRecord     `json:"account_performance_history" yaml:"account_performance_history"`
	AccountExposure     []AccountExposureCell      `json:"account_exposure" yaml:"account_exposure"`
	Ledger              []LedgerTransaction        `json:"account_movements" yaml:"account_movements"`
	IncomeExpenses      []IncomeExpenseRecord      `json:"income_expenses" yaml:"income_expenses"`
}

// NewPortfolio returns an empty model with every sequence non-nil, the state a
// report starts from before (or instead of) a successful load.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		MarketIndices:       []MarketIndexRecord{},
		OverallAssets:       []AllocationRecord{},
		FinancialAssets:     []AllocationRecord{},
		Geography:           []AllocationRecord{},
		CurrencyExposure:    []AllocationRecord{},
		Liquidity:           []AllocationRecord{},
		AccountsPerformance: []AccountPerformanceRecord{},
		EquitiesBySector:    []AllocationRecord{},
		EquitiesByCountry:   []AllocationRecord{},
		EquitiesByCurrency:  []AllocationRecord{},
		BondsMaturity:       []BondMaturityRecord{},
		BondsRating:         []AllocationRecord{},
		BondsCurrency:       []AllocationRecord{},
		PerformanceHistory:  []PerformanceHistoryRecord{},
		AccountHistory:      []AccountHistoryRecord{},
		AccountExposure:     []AccountExposureCell{},
		Ledger:              []LedgerTransaction{},
		IncomeExpenses:      []IncomeExpenseRecord{},
	}
}

// Allocations returns the allocation-like sequence of c, if c is one.
func (p *Portfolio) Allocations(c Category) ([]AllocationRecord, bool) {
	switch c {
	case CategoryOverallAssets:
		return p.OverallAssets, true
	case CategoryFinancialAssets:
		return p.FinancialAssets, true
	case CategoryGeography:
		return p.Geography, true
	case CategoryCurrencyExposure:
		return p.CurrencyExposure, true
	case CategoryLiquidity:
		return p.Liquidity, true
	case CategoryEquitiesBySector:
		return p.EquitiesBySector, true
	case CategoryEquitiesByCountry:
		return p.EquitiesByCountry, true
	case CategoryEquitiesByCurrency:
		return p.EquitiesByCurrency, true
	case CategoryBondsRating:
		return p.BondsRating, true
	case CategoryBondsCurrency:
		return p.BondsCurrency, true
	default:
		return nil, false
	}
}

// Len returns the number of records of category c.
func (p *Portfolio) Len(c Category) int {
	if recs, ok := p.Allocations(c); ok {
		return len(recs)
	}
	switch c {
	case CategoryMarketIndices:
		return len(p.MarketIndices)
	case CategoryAccountsPerformance:
		return len(p.AccountsPerformance)
	case CategoryBondsMaturity:
		return len(p.BondsMaturity)
	case CategoryPerformanceHistory:
		return len(p.PerformanceHistory)
	case CategoryAccountHistory:
		return len(p.AccountHistory)
	case CategoryAccountExposure:
		return len(p.AccountExposure)
	case CategoryLedger:
		return len(p.Ledger)
	case CategoryIncomeExpenses:
		return len(p.IncomeExpenses)
	default:
		return 0
	}
}

// Counts returns the record count of every category.
func (p *Portfolio) Counts() map[Category]int {
	counts := make(map[Category]int, len(AllCategories))
	for _, c := range AllCategories {
		counts[c] = p.Len(c)
	}
	return counts
}

// IsEmpty reports whether no category holds any record.
func (p *Portfolio) IsEmpty() bool {
	for _, c := range AllCategories {
		if p.Len(c) > 0 {
			return false
		}
	}
	return true
}
