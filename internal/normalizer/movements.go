package normalizer

import (
	"time"

	"fjacquet/portfolio-report/internal/dateutils"
	"fjacquet/portfolio-report/internal/logging"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/rawdoc"
)

// Ledger normalizes the account movements report in source order.
//
// Quantity, price and amount arrive as locale-formatted strings. A value that
// does not reduce to a number drops its row and is logged; it is never read
// as zero. Quantity and price may be absent (cash movements), the amount may
// not.
func (n *Normalizer) Ledger(doc rawdoc.Document) []models.LedgerTransaction {
	c := models.CategoryLedger
	return collect(n, doc, c, func(row rawdoc.Row) (models.LedgerTransaction, error) {
		tradeDate, err := requiredDate(c, row, n.opts.Dates.Ledger, "tradeDate", "trade_date")
		if err != nil {
			return models.LedgerTransaction{}, err
		}
		amount, err := requiredDecimal(c, row, "amount3", "amount")
		if err != nil {
			return models.LedgerTransaction{}, err
		}
		quantity, err := optionalDecimal(c, row, "quantity")
		if err != nil {
			return models.LedgerTransaction{}, err
		}
		price, err := optionalDecimal(c, row, "price")
		if err != nil {
			return models.LedgerTransaction{}, err
		}

		return models.LedgerTransaction{
			Account:         row.String("accountName", "account"),
			TradeDate:       tradeDate,
			SettlementDate:  n.optionalDate(row, "settlementDate", "settlement_date"),
			SecurityName:    row.String("securityName", "security_name"),
			TransactionType: row.String("transactionType", "transaction_type"),
			Quantity:        quantity,
			Price:           price,
			Amount:          amount,
		}, nil
	})
}

// optionalDate parses a secondary ledger date; an unreadable value is left
// as the zero time rather than dropping the whole movement.
func (n *Normalizer) optionalDate(row rawdoc.Row, keys ...string) time.Time {
	s := row.String(keys...)
	if s == "" {
		return time.Time{}
	}
	t, err := dateutils.Parse(s, n.opts.Dates.Ledger)
	if err != nil {
		n.logger.Debug("Ignoring unreadable settlement date",
			logging.F(logging.FieldReason, err.Error()))
		return time.Time{}
	}
	return t
}

// IncomeExpenses normalizes the legacy cash movements list in source order.
func (n *Normalizer) IncomeExpenses(doc rawdoc.Document) []models.IncomeExpenseRecord {
	c := models.CategoryIncomeExpenses
	return collect(n, doc, c, func(row rawdoc.Row) (models.IncomeExpenseRecord, error) {
		date, err := requiredDate(c, row, n.opts.Dates.IncomeExpenses, "date")
		if err != nil {
			return models.IncomeExpenseRecord{}, err
		}
		amount, err := requiredDecimal(c, row, "amount")
		if err != nil {
			return models.IncomeExpenseRecord{}, err
		}
		return models.IncomeExpenseRecord{
			Date:        date,
			Description: row.String("description"),
			Category:    row.String("category"),
			Account:     row.String("account"),
			AssetClass:  row.String("afik"),
			Amount:      amount,
		}, nil
	})
}
