// Package container provides dependency injection for the portfolio-report
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/portfolio-report/internal/common"
	"fjacquet/portfolio-report/internal/config"
	"fjacquet/portfolio-report/internal/dateutils"
	"fjacquet/portfolio-report/internal/exposure"
	"fjacquet/portfolio-report/internal/logging"
	"fjacquet/portfolio-report/internal/normalizer"
	"fjacquet/portfolio-report/internal/report"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	normalizer *normalizer.Normalizer
	csvWriter  *common.CSVWriter
	reporter   *report.Generator
	accounts   []exposure.Account
}

// NewContainer creates and wires all application dependencies, with a
// logger configured from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	return NewContainerWithLogger(cfg, logger)
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	dates, err := dateConventions(cfg)
	if err != nil {
		return nil, err
	}

	norm := normalizer.New(logger, normalizer.Options{
		GeographyNames: cfg.GeographyNameMap(),
		Dates:          dates,
	})

	var delimiter rune = ','
	if d := []rune(cfg.CSV.Delimiter); len(d) > 0 {
		delimiter = d[0]
	}

	accounts := make([]exposure.Account, len(cfg.Report.Accounts))
	for i, a := range cfg.Report.Accounts {
		accounts[i] = exposure.Account{Name: a.Name, Display: a.Display}
	}

	reporter := report.NewReportGenerator(logger, report.Options{
		BaseCurrency:       cfg.Report.BaseCurrency,
		SectorTopN:         cfg.Report.SectorTopN,
		MarketIndicesLimit: cfg.Report.MarketIndicesLimit,
	})

	logger.Debug("Container initialized successfully",
		logging.F("accounts_count", len(accounts)),
		logging.F(logging.FieldDelimiter, string(delimiter)))

	return &Container{
		logger:     logger,
		config:     cfg,
		normalizer: norm,
		csvWriter:  common.NewCSVWriter(delimiter, logger),
		reporter:   reporter,
		accounts:   accounts,
	}, nil
}

func dateConventions(cfg *config.Config) (normalizer.DateConventions, error) {
	var out normalizer.DateConventions
	for _, f := range []struct {
		key   string
		value string
		dst   *dateutils.Convention
	}{
		{"dates.performance_history", cfg.Dates.PerformanceHistory, &out.PerformanceHistory},
		{"dates.ledger", cfg.Dates.Ledger, &out.Ledger},
		{"dates.income_expenses", cfg.Dates.IncomeExpenses, &out.IncomeExpenses},
	} {
		if f.value == "" {
			continue
		}
		conv, err := dateutils.ParseConvention(f.value)
		if err != nil {
			return out, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = conv
	}
	return out, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetNormalizer returns the section normalizer set.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetCSVWriter returns the CSV writer configured with the delimiter.
func (c *Container) GetCSVWriter() *common.CSVWriter {
	return c.csvWriter
}

// GetReportGenerator returns the markdown report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reporter
}

// GetAccounts returns a copy of the exposure matrix column ordering.
func (c *Container) GetAccounts() []exposure.Account {
	out := make([]exposure.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
