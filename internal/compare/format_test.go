package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		TaxYear:     "2024-25",
		RuleVersion: "2024-25.1",
		PlanPath:    "/path/to/plan.yaml",
		BaseResult: &ComparisonResult{
			StrategyName:   "Current",
			TaxableIncome:  d("90000"),
			TotalTax:       d("19588"),
			AfterTaxIncome: d("70412"),
			MarginalRate:   d("0.32"),
			AverageRate:    d("0.2176"),
		},
		AlternativeResults: []ComparisonResult{
			{
				StrategyName:         "Salary sacrifice",
				TaxableIncome:        d("80000"),
				TotalTax:             d("16388"),
				AfterTaxIncome:       d("63612"),
				MarginalRate:         d("0.32"),
				AverageRate:          d("0.2049"),
				TaxDiffFromBase:      d("-3200"),
				TaxPctFromBase:       d("-16.34"),
				AfterTaxDiffFromBase: d("-6800"),
				AppliedStrategies:    []string{"salary sacrifice of 10000.00"},
			},
		},
		Recommendations: []string{"Lowest Tax: Salary sacrifice saves $3200 in tax for 2024-25"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleComparisonSet())

	assert.Contains(t, out, "TAX STRATEGY COMPARISON")
	assert.Contains(t, out, "Tax Year: 2024-25 (rules 2024-25.1)")
	assert.Contains(t, out, "Plan: /path/to/plan.yaml")
	assert.Contains(t, out, "Current (base)")
	assert.Contains(t, out, "$19.6K")
	assert.Contains(t, out, "32.0%")
	assert.Contains(t, out, "Tax Saving:       +$3.2K (16.3%)")
	assert.Contains(t, out, "Take-home:        -$6.8K")
	assert.Contains(t, out, "- salary sacrifice of 10000.00")
	assert.Contains(t, out, "• Lowest Tax")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(sampleComparisonSet())
	assert.Equal(t, "Current tax $19.6K | Salary sacrifice: +$3.2K", out)
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}

	assert.Equal(t, "2.50M", tf.formatDecimal(d("2500000")))
	assert.Equal(t, "45.0K", tf.formatDecimal(d("45000")))
	assert.Equal(t, "999", tf.formatDecimal(d("999")))

	assert.Equal(t, "+", tf.deltaSymbol(d("1")))
	assert.Equal(t, "-", tf.deltaSymbol(d("-1")))
	assert.Equal(t, " ", tf.deltaSymbol(d("0")))

	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "a very ...", tf.truncate("a very long name", 10))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleComparisonSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Strategy", records[0][0])
	assert.Equal(t, []string{"Current", "base", "90000.00", "19588.00", "70412.00", "0.3200", "0.2176", "0.00", "0.00", "0.00", ""}, records[1])
	assert.Equal(t, "alternative", records[2][1])
	assert.Equal(t, "-3200.00", records[2][7])
	assert.Equal(t, "salary sacrifice of 10000.00", records[2][10])
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(sampleComparisonSet())
		require.NoError(t, err)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))

		var decoded ComparisonSet
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "2024-25", decoded.TaxYear)
		require.Len(t, decoded.AlternativeResults, 1)
		assert.True(t, decoded.AlternativeResults[0].TotalTax.Equal(d("16388")))
	}
}
