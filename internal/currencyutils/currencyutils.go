// Package currencyutils coerces the loosely typed numeric values of a portfolio
// export into decimal values.
//
// Monetary and quantity fields arrive either as JSON numbers or as strings
// carrying grouping separators ("103,000.00", "-1,250.5"). Values that do not
// reduce to a finite number are reported as parsererror.ErrUnparseable and are
// never silently turned into zero.
package currencyutils

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"fjacquet/portfolio-report/internal/parsererror"

	"github.com/shopspring/decimal"
)

var plainNumberRe = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)$`)

// groupingReplacer strips the thousands separators seen in exports: commas,
// apostrophes (1'234.56), regular and non-breaking spaces.
var groupingReplacer = strings.NewReplacer(",", "", "'", "", " ", "", "\u00a0", "", "\u202f", "")

// StandardizeAmount removes grouping separators from a numeric string.
// It does not validate the result.
func StandardizeAmount(amountStr string) string {
	return groupingReplacer.Replace(strings.TrimSpace(amountStr))
}

// ParseAmount parses a locale formatted numeric string such as "99,477.40" or
// "-1,000". Empty and malformed strings return an error wrapping
// parsererror.ErrUnparseable.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount: %w", parsererror.ErrUnparseable)
	}
	if !plainNumberRe.MatchString(standardized) {
		return decimal.Zero, fmt.Errorf("malformed amount '%s': %w", amountStr, parsererror.ErrUnparseable)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w: %v", amountStr, parsererror.ErrUnparseable, err)
	}
	return amount, nil
}

// ToDecimal coerces a decoded JSON value into a decimal.
//
// json.Number and numeric strings keep their exact textual precision; float64
// values (documents built in memory) go through decimal.NewFromFloat. A nil
// value, a boolean, a non-finite float or a malformed string is an error.
func ToDecimal(v interface{}) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("missing value: %w", parsererror.ErrUnparseable)
	case decimal.Decimal:
		return n, nil
	case json.Number:
		return ParseAmount(n.String())
	case string:
		return ParseAmount(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, fmt.Errorf("non-finite number %v: %w", n, parsererror.ErrUnparseable)
		}
		return decimal.NewFromFloat(n), nil
	case float32:
		return ToDecimal(float64(n))
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported numeric type %T: %w", v, parsererror.ErrUnparseable)
	}
}

// OptionalDecimal coerces v when present. Absent or unparseable values yield an
// invalid NullDecimal.
func OptionalDecimal(v interface{}) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	d, err := ToDecimal(v)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Truthy mirrors the export's notion of a populated numeric field: present,
// parseable and non-zero.
func Truthy(v interface{}) bool {
	d, err := ToDecimal(v)
	return err == nil && !d.IsZero()
}

// Sum adds up a list of decimals. An empty list sums to zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
