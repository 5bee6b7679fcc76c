// Package common provides the CSV exports shared by the commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/portfolio-report/internal/dateutils"
	"fjacquet/portfolio-report/internal/exposure"
	"fjacquet/portfolio-report/internal/logging"
	"fjacquet/portfolio-report/internal/models"

	"github.com/gocarina/gocsv"
)

// LedgerCSVRow is the CSV layout of one ledger transaction. Dates are ISO
// and amounts are plain decimal strings so the file round-trips exactly.
type LedgerCSVRow struct {
	Account         string `csv:"Account"`
	TradeDate       string `csv:"TradeDate"`
	SettlementDate  string `csv:"SettlementDate"`
	SecurityName    string `csv:"SecurityName"`
	TransactionType string `csv:"TransactionType"`
	Quantity        string `csv:"Quantity"`
	Price           string `csv:"Price"`
	Amount          string `csv:"Amount"`
}

// NewLedgerCSVRow converts a transaction into its CSV layout.
func NewLedgerCSVRow(tx models.LedgerTransaction) LedgerCSVRow {
	return LedgerCSVRow{
		Account:         tx.Account,
		TradeDate:       dateutils.ToISODate(tx.TradeDate),
		SettlementDate:  dateutils.ToISODate(tx.SettlementDate),
		SecurityName:    tx.SecurityName,
		TransactionType: tx.TransactionType,
		Quantity:        tx.Quantity.String(),
		Price:           tx.Price.String(),
		Amount:          tx.Amount.StringFixed(2),
	}
}

// CSVWriter writes report data as delimited text.
type CSVWriter struct {
	Delimiter rune
	logger    logging.Logger
}

// NewCSVWriter creates a writer using delimiter. A nil logger falls back to
// a default one.
func NewCSVWriter(delimiter rune, logger logging.Logger) *CSVWriter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVWriter{Delimiter: delimiter, logger: logger}
}

func (w *CSVWriter) newWriter(out io.Writer) *csv.Writer {
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.Delimiter
	return csvWriter
}

// WriteLedger writes transactions to out, header first.
func (w *CSVWriter) WriteLedger(out io.Writer, txs []models.LedgerTransaction) error {
	if txs == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	rows := make([]LedgerCSVRow, len(txs))
	for i, tx := range txs {
		rows[i] = NewLedgerCSVRow(tx)
	}

	csvWriter := w.newWriter(out)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		w.logger.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteMatrix writes the exposure matrix: a header of account labels plus a
// total column, one line per asset class, and a final totals line.
func (w *CSVWriter) WriteMatrix(out io.Writer, m exposure.Matrix) error {
	csvWriter := w.newWriter(out)

	header := make([]string, 0, len(m.Accounts)+2)
	header = append(header, "AssetClass")
	for _, acc := range m.Accounts {
		header = append(header, acc.Label())
	}
	header = append(header, "Total")
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for i, asset := range m.AssetClasses {
		record := make([]string, 0, len(header))
		record = append(record, asset)
		for _, v := range m.Cells[i] {
			record = append(record, v.StringFixed(2))
		}
		record = append(record, m.RowTotals[i].StringFixed(2))
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	totals := make([]string, 0, len(header))
	totals = append(totals, models.TotalTokenHebrew)
	for _, v := range m.ColumnTotals {
		totals = append(totals, v.StringFixed(2))
	}
	totals = append(totals, m.GrandTotal.StringFixed(2))
	if err := csvWriter.Write(totals); err != nil {
		return fmt.Errorf("error writing CSV totals: %w", err)
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteToFile creates path, with its directory, and hands it to write.
func (w *CSVWriter) WriteToFile(path string, write func(io.Writer) error) error {
	w.logger.Info("Writing CSV file", logging.F(logging.FieldOutput, path),
		logging.F(logging.FieldDelimiter, string(w.Delimiter)))

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		w.logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile)
	if err != nil {
		w.logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return write(file)
}
