// Package report renders the canonical portfolio model as a markdown
// document for the terminal.
package report

import (
	"fmt"
	"strings"

	"fjacquet/portfolio-report/internal/dateutils"
	"fjacquet/portfolio-report/internal/exposure"
	"fjacquet/portfolio-report/internal/ledger"
	"fjacquet/portfolio-report/internal/logging"
	"fjacquet/portfolio-report/internal/metrics"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/normalizer"
)

// emptySection is written in place of a table when a category has no rows.
const emptySection = "_No data._"

// Options controls what the report shows.
type Options struct {
	BaseCurrency       string
	SectorTopN         int
	MarketIndicesLimit int
}

// Input is everything the report is rendered from.
type Input struct {
	Portfolio *models.Portfolio
	Metrics   metrics.Metrics
	Matrix    exposure.Matrix
	// Ledger is the ledger view to show; the full ledger when unfiltered.
	Ledger ledger.View
}

// Generator renders reports.
type Generator struct {
	logger logging.Logger
	opts   Options
}

// NewReportGenerator creates a Generator.
func NewReportGenerator(logger logging.Logger, opts Options) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.BaseCurrency == "" {
		opts.BaseCurrency = "ILS"
	}
	return &Generator{logger: logger, opts: opts}
}

type table struct {
	header []string
	rows   [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(b *strings.Builder) {
	if len(t.rows) == 0 {
		b.WriteString(emptySection + "\n\n")
		return
	}
	writeRow(b, t.header)
	sep := make([]string, len(t.header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(b, sep)
	for _, r := range t.rows {
		writeRow(b, r)
	}
	b.WriteString("\n")
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" " + c + " |")
	}
	b.WriteString("\n")
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "## %s\n\n", title)
}

// Markdown renders the full report.
func (g *Generator) Markdown(in Input) string {
	p := in.Portfolio
	if p == nil {
		p = models.NewPortfolio()
	}
	g.logger.Debug("Rendering report", logging.F(logging.FieldCount, len(p.Counts())))

	var b strings.Builder
	b.WriteString("# Portfolio report\n\n")

	g.writeMetrics(&b, in.Metrics)
	g.writeIndices(&b, p.MarketIndices)

	g.writeAllocation(&b, "Asset allocation", p.OverallAssets)
	g.writeAllocation(&b, "Financial assets", p.FinancialAssets)
	g.writeAllocation(&b, "Geography", p.Geography)
	g.writeAllocation(&b, "Currency exposure", p.CurrencyExposure)
	g.writeAllocation(&b, "Liquidity", p.Liquidity)
	g.writeAccounts(&b, p.AccountsPerformance)
	g.writeAllocation(&b, "Equities by sector", normalizer.Rollup(p.EquitiesBySector, g.opts.SectorTopN, models.OtherLabel))
	g.writeAllocation(&b, "Equities by country", p.EquitiesByCountry)
	g.writeAllocation(&b, "Equities by currency", p.EquitiesByCurrency)
	g.writeMaturity(&b, p.BondsMaturity)
	g.writeAllocation(&b, "Bonds by rating", p.BondsRating)
	g.writeAllocation(&b, "Bonds by currency", p.BondsCurrency)
	g.writeHistory(&b, p.PerformanceHistory)
	g.writeAccountHistory(&b, p.AccountHistory)
	g.writeMatrix(&b, in.Matrix)
	g.writeLedger(&b, in.Ledger)
	g.writeIncome(&b, p.IncomeExpenses)

	return b.String()
}

func (g *Generator) money(v models.SignedValue) string {
	return Signed(v.Sign, FormatMoney(v.Value, g.opts.BaseCurrency))
}

func (g *Generator) writeMetrics(b *strings.Builder, m metrics.Metrics) {
	section(b, "Summary")
	ytd := SignedPercent(m.YTDReturn.Value)
	if !m.YTDFound {
		ytd += " (no total row)"
	}
	t := table{header: []string{"Metric", "Value"}}
	t.add("Total value", FormatMoney(m.TotalValue.Value, g.opts.BaseCurrency))
	t.add("YTD return", ytd)
	t.add("Net flow", g.money(m.NetFlow))
	t.write(b)
}

func (g *Generator) writeIndices(b *strings.Builder, indices []models.MarketIndexRecord) {
	section(b, "Market indices")
	t := table{header: []string{"Index", "MTD", "YTD"}}
	for _, i := range Limit(indices, g.opts.MarketIndicesLimit) {
		t.add(cell(i.Name), SignedPercent(i.MonthReturn), SignedPercent(i.YearReturn))
	}
	t.write(b)
}

func (g *Generator) writeAllocation(b *strings.Builder, title string, records []models.AllocationRecord) {
	section(b, title)
	t := table{header: []string{"Name", "Value", "%"}}
	for _, r := range records {
		t.add(cell(r.Name), FormatMoney(r.Value, g.opts.BaseCurrency), FormatOptionalPercent(r.Percentage))
	}
	t.write(b)
}

func (g *Generator) writeAccounts(b *strings.Builder, accounts []models.AccountPerformanceRecord) {
	section(b, "Accounts performance")
	t := table{header: []string{"Account", "Currency", "Value", "%", "MTD", "YTD"}}
	for _, a := range accounts {
		t.add(cell(a.Name), cell(a.Currency), FormatMoney(a.Value, g.opts.BaseCurrency),
			FormatOptionalPercent(a.Percentage), SignedPercent(a.MonthReturn), SignedPercent(a.YearReturn))
	}
	t.write(b)
}

func (g *Generator) writeMaturity(b *strings.Builder, buckets []models.BondMaturityRecord) {
	section(b, "Bonds by maturity")
	t := table{header: []string{"Year", "Value", "%"}}
	for _, m := range buckets {
		t.add(cell(m.Year.Label()), FormatMoney(m.Value, g.opts.BaseCurrency), FormatOptionalPercent(m.Percentage))
	}
	t.write(b)
}

func (g *Generator) writeHistory(b *strings.Builder, history []models.PerformanceHistoryRecord) {
	section(b, "Performance history")
	t := table{header: []string{"Date", "Value", "Net flow", "Profit"}}
	for _, h := range history {
		t.add(dateutils.ToISODate(h.Date), FormatMoney(h.Value, g.opts.BaseCurrency),
			g.money(models.NewSignedValue(h.NetFlow)), g.money(models.NewSignedValue(h.Profit)))
	}
	t.write(b)
}

// writeAccountHistory shows one line per account with its first and latest
// points; accounts without a readable point are still listed.
func (g *Generator) writeAccountHistory(b *strings.Builder, accounts []models.AccountHistoryRecord) {
	section(b, "Account history")
	t := table{header: []string{"Account", "Points", "From", "To", "Latest value"}}
	for _, a := range accounts {
		if len(a.History) == 0 {
			t.add(cell(a.Name), "0", "-", "-", "-")
			continue
		}
		first, last := a.History[0], a.History[len(a.History)-1]
		t.add(cell(a.Name), fmt.Sprintf("%d", len(a.History)), dateutils.ToISODate(first.Date),
			dateutils.ToISODate(last.Date), FormatMoney(last.Value, g.opts.BaseCurrency))
	}
	t.write(b)
}

func (g *Generator) writeMatrix(b *strings.Builder, m exposure.Matrix) {
	section(b, "Exposure by account")
	header := []string{"Asset class"}
	for _, a := range m.Accounts {
		header = append(header, cell(a.Label()))
	}
	header = append(header, models.TotalTokenHebrew)

	t := table{header: header}
	for i, asset := range m.AssetClasses {
		row := []string{cell(asset)}
		for _, v := range m.Cells[i] {
			if v.IsPositive() {
				row = append(row, FormatMoney(v, g.opts.BaseCurrency))
			} else {
				row = append(row, "-")
			}
		}
		row = append(row, FormatMoney(m.RowTotals[i], g.opts.BaseCurrency))
		t.add(row...)
	}
	if len(t.rows) > 0 {
		totals := []string{"**" + models.TotalTokenHebrew + "**"}
		for _, v := range m.ColumnTotals {
			totals = append(totals, FormatMoney(v, g.opts.BaseCurrency))
		}
		totals = append(totals, "**"+FormatMoney(m.GrandTotal, g.opts.BaseCurrency)+"**")
		t.add(totals...)
	}
	t.write(b)
}

func (g *Generator) writeLedger(b *strings.Builder, v ledger.View) {
	section(b, "Account movements")
	if !v.Criteria.IsZero() {
		fmt.Fprintf(b, "Filter: %s\n\n", describeCriteria(v.Criteria))
	}
	t := table{header: []string{"Account", "Trade date", "Settlement", "Security", "Type", "Quantity", "Price", "Amount"}}
	for _, tx := range v.Transactions {
		t.add(cell(tx.Account), dateutils.ToISODate(tx.TradeDate), cell(dateutils.ToISODate(tx.SettlementDate)),
			cell(tx.SecurityName), cell(tx.TransactionType), tx.Quantity.String(), tx.Price.String(),
			g.money(models.NewSignedValue(tx.Amount)))
	}
	t.write(b)
	fmt.Fprintf(b, "Total: %s (%d movements)\n\n", g.money(v.Total), len(v.Transactions))
}

func describeCriteria(c ledger.Criteria) string {
	var parts []string
	if c.Category != "" {
		parts = append(parts, "type="+c.Category)
	}
	if c.Account != "" {
		parts = append(parts, "account="+c.Account)
	}
	if !c.From.IsZero() {
		parts = append(parts, "from="+dateutils.ToISODate(c.From))
	}
	if !c.To.IsZero() {
		parts = append(parts, "to="+dateutils.ToISODate(c.To))
	}
	return strings.Join(parts, ", ")
}

func (g *Generator) writeIncome(b *strings.Builder, records []models.IncomeExpenseRecord) {
	section(b, "Income and expenses")
	t := table{header: []string{"Date", "Description", "Category", "Account", "Asset class", "Amount"}}
	for _, r := range records {
		t.add(dateutils.ToISODate(r.Date), cell(r.Description), cell(r.Category), cell(r.Account),
			cell(r.AssetClass), g.money(models.NewSignedValue(r.Amount)))
	}
	t.write(b)
}
