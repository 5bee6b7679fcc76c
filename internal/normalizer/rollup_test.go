package normalizer

import (
	"testing"

	"fjacquet/portfolio-report/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alloc(name string, value, pct int64) models.AllocationRecord {
	return models.AllocationRecord{
		Name:       name,
		Value:      decimal.NewFromInt(value),
		Percentage: decimal.NewNullDecimal(decimal.NewFromInt(pct)),
	}
}

func TestRollup(t *testing.T) {
	records := []models.AllocationRecord{
		alloc("c", 30, 30),
		alloc("a", 50, 50),
		alloc("d", 5, 5),
		alloc("b", 10, 10),
		{Name: "e", Value: decimal.NewFromInt(5)},
	}

	tests := []struct {
		name      string
		topN      int
		wantNames []string
		wantOther string
		wantPct   string
	}{
		{"Top two", 2, []string{"a", "c", models.OtherLabel}, "20", "15"},
		{"Top four", 4, []string{"a", "c", "b", "d", models.OtherLabel}, "5", ""},
		{"Exactly all", 5, []string{"a", "c", "b", "d", "e"}, "", ""},
		{"More than all", 10, []string{"a", "c", "b", "d", "e"}, "", ""},
		{"Disabled", 0, []string{"a", "c", "b", "d", "e"}, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Rollup(records, tc.topN, models.OtherLabel)

			names := make([]string, len(got))
			for i, r := range got {
				names[i] = r.Name
			}
			require.Equal(t, tc.wantNames, names)

			if tc.wantOther == "" {
				return
			}
			other := got[len(got)-1]
			assert.True(t, decimal.RequireFromString(tc.wantOther).Equal(other.Value))
			if tc.wantPct == "" {
				assert.False(t, other.Percentage.Valid)
			} else {
				require.True(t, other.Percentage.Valid)
				assert.True(t, decimal.RequireFromString(tc.wantPct).Equal(other.Percentage.Decimal))
			}
		})
	}

	assert.Equal(t, "c", records[0].Name, "input must not be reordered")
}

func TestRollup_ConservesTotal(t *testing.T) {
	records := []models.AllocationRecord{alloc("a", 7, 1), alloc("b", 3, 1), alloc("c", 11, 1), alloc("d", 2, 1)}
	before := decimal.Zero
	for _, r := range records {
		before = before.Add(r.Value)
	}
	after := decimal.Zero
	for _, r := range Rollup(records, 1, models.OtherLabel) {
		after = after.Add(r.Value)
	}
	assert.True(t, before.Equal(after))
}
