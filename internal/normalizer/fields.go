package normalizer

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/portfolio-report/internal/currencyutils"
	"fjacquet/portfolio-report/internal/dateutils"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/parsererror"
	"fjacquet/portfolio-report/internal/rawdoc"

	"github.com/shopspring/decimal"
)

// blank reports whether v carries no value at all.
func blank(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// requiredDecimal reads a numeric field that must be present. A missing field
// is errMalformed; a present but unparseable one is a ParseError.
func requiredDecimal(c models.Category, row rawdoc.Row, keys ...string) (decimal.Decimal, error) {
	v := row.Value(keys...)
	if blank(v) {
		return decimal.Zero, errMalformed
	}
	d, err := currencyutils.ToDecimal(v)
	if err != nil {
		return decimal.Zero, parsererror.NewParseError(string(c), keys[0], fmt.Sprint(v), err)
	}
	return d, nil
}

// optionalDecimal reads a numeric field whose absence means zero. A present
// but unparseable value is still a ParseError.
func optionalDecimal(c models.Category, row rawdoc.Row, keys ...string) (decimal.Decimal, error) {
	if blank(row.Value(keys...)) {
		return decimal.Zero, nil
	}
	return requiredDecimal(c, row, keys...)
}

// requiredDate reads a date field with the given convention.
func requiredDate(c models.Category, row rawdoc.Row, conv dateutils.Convention, keys ...string) (time.Time, error) {
	s := row.String(keys...)
	if s == "" {
		return time.Time{}, errMalformed
	}
	t, err := dateutils.Parse(s, conv)
	if err != nil {
		return time.Time{}, parsererror.NewParseError(string(c), keys[0], s, err)
	}
	return t, nil
}

// discriminatorIs reports whether the numeric discriminator under keys equals
// want. The export writes it as a number or as a numeric string.
func discriminatorIs(row rawdoc.Row, want int64, keys ...string) bool {
	d, err := currencyutils.ToDecimal(row.Value(keys...))
	return err == nil && d.Equal(decimal.NewFromInt(want))
}
