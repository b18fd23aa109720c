package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Strategy",
		"Type",
		"Taxable Income",
		"Total Tax",
		"After Tax Income",
		"Marginal Rate",
		"Average Rate",
		"Tax Diff from Base",
		"Tax % Change",
		"After Tax Diff from Base",
		"Applied",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, strategyType string) []string {
	return []string{
		result.StrategyName,
		strategyType,
		result.TaxableIncome.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.AfterTaxIncome.StringFixed(2),
		result.MarginalRate.StringFixed(4),
		result.AverageRate.StringFixed(4),
		result.TaxDiffFromBase.StringFixed(2),
		result.TaxPctFromBase.StringFixed(2),
		result.AfterTaxDiffFromBase.StringFixed(2),
		strings.Join(result.AppliedStrategies, "; "),
	}
}
