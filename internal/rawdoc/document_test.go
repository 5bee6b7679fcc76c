package rawdoc

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		keys    int
	}{
		{"Object of sections", `{"overall_assets": [], "market_indices": []}`, false, 2},
		{"Empty object", `{}`, false, 0},
		{"Top-level array", `[1, 2]`, true, 0},
		{"Top-level string", `"nope"`, true, 0},
		{"Malformed", `{"overall_assets": [`, true, 0},
		{"Empty input", ``, true, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Decode(strings.NewReader(tc.input), "test.json")
			if tc.wantErr {
				require.Error(t, err)
				var invalid *parsererror.InvalidDocumentError
				assert.True(t, errors.As(err, &invalid))
				assert.True(t, doc.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.keys, doc.Keys())
			assert.Equal(t, "test.json", doc.Source())
		})
	}
}

func TestDecode_KeepsNumberPrecision(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"overall_assets": [{"shovi": 12765009.123456789}]}`), "t")
	require.NoError(t, err)

	rows, _, ok := doc.Section(models.CategoryOverallAssets)
	require.True(t, ok)
	row, ok := AsRow(rows[0])
	require.True(t, ok)
	assert.Equal(t, json.Number("12765009.123456789"), row["shovi"])
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"liquidity": [{"SugName": "Cash"}]}`), 0600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source())
	rows, key, ok := doc.Section(models.CategoryLiquidity)
	require.True(t, ok)
	assert.Equal(t, "liquidity", key)
	assert.Len(t, rows, 1)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFromMap_MatchesDecodedShape(t *testing.T) {
	doc := MustFromMap(map[string]interface{}{
		"overall_assets": []map[string]interface{}{
			{"afikname": "Cash", "shovi": 100.5},
		},
	})

	rows, _, ok := doc.Section(models.CategoryOverallAssets)
	require.True(t, ok)
	row, ok := AsRow(rows[0])
	require.True(t, ok)
	assert.Equal(t, json.Number("100.5"), row["shovi"])
	assert.Equal(t, "Cash", row.String("afikname"))
}

func TestFromMap_Nil(t *testing.T) {
	doc, err := FromMap(nil)
	require.NoError(t, err)
	assert.True(t, doc.IsZero())
	_, _, ok := doc.Section(models.CategoryOverallAssets)
	assert.False(t, ok)
}

func TestSection_KeyVariants(t *testing.T) {
	rows := []interface{}{
		map[string]interface{}{"hesh_nameEng": "Account A", "sugdoh": 0, "shovi": 10},
	}

	hyphen := MustFromMap(map[string]interface{}{"multi-account_performance": rows})
	underscore := MustFromMap(map[string]interface{}{"multi_account_performance": rows})

	a, keyA, okA := hyphen.Section(models.CategoryAccountsPerformance)
	b, keyB, okB := underscore.Section(models.CategoryAccountsPerformance)

	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, "multi-account_performance", keyA)
	assert.Equal(t, "multi_account_performance", keyB)
	assert.Equal(t, a, b)
}

func TestSection_PriorityAndMalformed(t *testing.T) {
	t.Run("Primary key wins when both present", func(t *testing.T) {
		doc := MustFromMap(map[string]interface{}{
			"multi-account_performance": []interface{}{map[string]interface{}{"hesh_nameEng": "first"}},
			"multi_account_performance": []interface{}{map[string]interface{}{"hesh_nameEng": "second"}},
		})
		rows, key, ok := doc.Section(models.CategoryAccountsPerformance)
		require.True(t, ok)
		assert.Equal(t, "multi-account_performance", key)
		row, _ := AsRow(rows[0])
		assert.Equal(t, "first", row.String("hesh_nameEng"))
	})

	t.Run("Non-array primary falls through to alias", func(t *testing.T) {
		doc := MustFromMap(map[string]interface{}{
			"equities_by_sector": "broken",
			"equities_sectors":   []interface{}{map[string]interface{}{"Anafim": "Tech"}},
		})
		_, key, ok := doc.Section(models.CategoryEquitiesBySector)
		require.True(t, ok)
		assert.Equal(t, "equities_sectors", key)
	})

	t.Run("Non-array only", func(t *testing.T) {
		doc := MustFromMap(map[string]interface{}{"overall_assets": map[string]interface{}{"x": 1}})
		_, _, ok := doc.Section(models.CategoryOverallAssets)
		assert.False(t, ok)
	})

	t.Run("Missing", func(t *testing.T) {
		doc := MustFromMap(map[string]interface{}{})
		_, _, ok := doc.Section(models.CategoryLedger)
		assert.False(t, ok)
	})
}

func TestAliases_CoverEveryCategory(t *testing.T) {
	for _, c := range models.AllCategories {
		assert.NotEmpty(t, Aliases(c), "category %s has no source key", c)
	}
}

func TestAliases_ReturnsCopy(t *testing.T) {
	keys := Aliases(models.CategoryAccountsPerformance)
	keys[0] = "mutated"
	assert.Equal(t, "multi-account_performance", Aliases(models.CategoryAccountsPerformance)[0])
}
