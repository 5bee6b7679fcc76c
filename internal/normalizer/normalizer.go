// Package normalizer turns the sections of a raw portfolio export into the
// canonical, typed model.
//
// Every normalizer is fail-soft: a missing or malformed section yields an
// empty sequence and a bad row is dropped on its own. Nothing here returns an
// error; dropped rows are reported through the logger instead.
package normalizer

import (
	"errors"

	"fjacquet/portfolio-report/internal/dateutils"
	"fjacquet/portfolio-report/internal/logging"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/rawdoc"
)

// DateConventions holds the date convention of each dated section.
type DateConventions struct {
	PerformanceHistory dateutils.Convention
	Ledger             dateutils.Convention
	IncomeExpenses     dateutils.Convention
}

// Options tunes the normalizers.
type Options struct {
	// GeographyNames maps country codes to display names. Unmapped codes
	// pass through verbatim.
	GeographyNames map[string]string
	Dates          DateConventions
}

// DefaultGeographyNames is the display-name table used by the report.
func DefaultGeographyNames() map[string]string {
	return map[string]string{
		"Israel": "ישראל",
		"USA":    `ארה"ב`,
		"Europe": "אירופה",
	}
}

// DefaultOptions returns the conventions observed in real exports: monthly
// history is month-first, ledger and cash movements are day-first.
func DefaultOptions() Options {
	return Options{
		GeographyNames: DefaultGeographyNames(),
		Dates: DateConventions{
			PerformanceHistory: dateutils.MDY,
			Ledger:             dateutils.DMY,
			IncomeExpenses:     dateutils.DMY,
		},
	}
}

// Normalizer runs the section normalizers over a document.
type Normalizer struct {
	logger logging.Logger
	opts   Options
}

// New creates a Normalizer. A nil logger falls back to a default logrus one.
func New(logger logging.Logger, opts Options) *Normalizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.GeographyNames == nil {
		opts.GeographyNames = map[string]string{}
	}
	def := DefaultOptions().Dates
	if opts.Dates.PerformanceHistory == "" {
		opts.Dates.PerformanceHistory = def.PerformanceHistory
	}
	if opts.Dates.Ledger == "" {
		opts.Dates.Ledger = def.Ledger
	}
	if opts.Dates.IncomeExpenses == "" {
		opts.Dates.IncomeExpenses = def.IncomeExpenses
	}
	return &Normalizer{logger: logger, opts: opts}
}

// WithLogger returns a copy of n that logs through logger.
func (n *Normalizer) WithLogger(logger logging.Logger) *Normalizer {
	if logger == nil {
		return n
	}
	return &Normalizer{logger: logger, opts: n.opts}
}

// Normalize builds the complete model from doc. An absent document yields
// the empty model.
func (n *Normalizer) Normalize(doc rawdoc.Document) *models.Portfolio {
	p := models.NewPortfolio()
	if doc.IsZero() {
		n.logger.Debug("No document to normalize")
		return p
	}

	p.MarketIndices = n.MarketIndices(doc)
	p.OverallAssets = n.OverallAssets(doc)
	p.FinancialAssets = n.FinancialAssets(doc)
	p.Geography = n.Geography(doc)
	p.CurrencyExposure = n.CurrencyExposure(doc)
	p.Liquidity = n.Liquidity(doc)
	p.AccountsPerformance = n.AccountsPerformance(doc)
	p.EquitiesBySector = n.EquitiesBySector(doc)
	p.EquitiesByCountry = n.EquitiesByCountry(doc)
	p.EquitiesByCurrency = n.EquitiesByCurrency(doc)
	p.BondsMaturity = n.BondsMaturity(doc)
	p.BondsRating = n.BondsRating(doc)
	p.BondsCurrency = n.BondsCurrency(doc)
	p.PerformanceHistory = n.PerformanceHistory(doc)
	p.AccountHistory = n.AccountHistory(doc)
	p.AccountExposure = n.AccountExposure(doc)
	p.Ledger = n.Ledger(doc)
	p.IncomeExpenses = n.IncomeExpenses(doc)

	total := 0
	for _, c := range p.Counts() {
		total += c
	}
	n.logger.Info("Normalized portfolio document",
		logging.F(logging.FieldFile, doc.Source()),
		logging.F(logging.FieldCount, total))
	return p
}

// errSkip marks a row that is filtered out on purpose (aggregate, sentinel,
// wrong discriminator). It is not logged as a failure.
var errSkip = errors.New("row filtered")

// errMalformed marks a row missing a required field or of the wrong shape.
var errMalformed = errors.New("malformed row")

// collect walks the rows of category c and converts each one. convert returns
// errSkip or errMalformed to drop a row quietly; any other error is a parse
// failure and is logged as a warning. The result is never nil.
func collect[T any](n *Normalizer, doc rawdoc.Document, c models.Category, convert func(rawdoc.Row) (T, error)) []T {
	out := []T{}
	raw, key, ok := doc.Section(c)
	if !ok {
		n.logger.Debug("Section missing, normalizing to empty",
			logging.F(logging.FieldCategory, string(c)))
		return out
	}

	skipped, malformed, failed := 0, 0, 0
	for i, v := range raw {
		row, ok := rawdoc.AsRow(v)
		if !ok {
			malformed++
			continue
		}
		rec, err := convert(row)
		switch {
		case err == nil:
			out = append(out, rec)
		case errors.Is(err, errSkip):
			skipped++
		case errors.Is(err, errMalformed):
			malformed++
		default:
			failed++
			n.logger.WithError(err).Warn("Dropping row with unparseable value",
				logging.F(logging.FieldSection, key),
				logging.F(logging.FieldRow, i))
		}
	}

	n.logger.Debug("Normalized section",
		logging.F(logging.FieldCategory, string(c)),
		logging.F(logging.FieldKey, key),
		logging.F(logging.FieldCount, len(out)),
		logging.F(logging.FieldDropped, skipped+malformed+failed))
	return out
}

// isAggregateName reports whether name is one of the total markers.
func isAggregateName(name string) bool {
	return name == models.TotalToken || name == models.TotalTokenHebrew
}
