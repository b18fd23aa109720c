package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing strategies
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("TAX STRATEGY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Tax Year: %s (rules %s)\n", compSet.TaxYear, compSet.RuleVersion))
	if compSet.PlanPath != "" {
		sb.WriteString(fmt.Sprintf("Plan: %s\n", compSet.PlanPath))
	}
	sb.WriteString("\n")

	nameWidth := 25
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Strategy",
		numWidth, "Taxable",
		numWidth, "Total Tax",
		numWidth, "After Tax",
		numWidth, "Marginal"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO CURRENT\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.StrategyName))

			savings := alt.Savings()
			sb.WriteString(fmt.Sprintf("  Tax Saving:       %s$%s (%s%%)\n",
				tf.deltaSymbol(savings),
				tf.formatDecimal(savings.Abs()),
				alt.TaxPctFromBase.Neg().StringFixed(1)))

			if !alt.AfterTaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Take-home:        %s$%s\n",
					signOf(alt.AfterTaxDiffFromBase),
					tf.formatDecimal(alt.AfterTaxDiffFromBase.Abs())))
			}

			for _, applied := range alt.AppliedStrategies {
				sb.WriteString(fmt.Sprintf("    - %s\n", applied))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single strategy row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.StrategyName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.TaxableIncome),
		numWidth, "$"+tf.formatDecimal(result.TotalTax),
		numWidth, "$"+tf.formatDecimal(result.AfterTaxIncome),
		numWidth, result.MarginalRate.Mul(decimal.NewFromInt(100)).StringFixed(1)+"%")
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas where positive is good
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	return signOf(delta)
}

func signOf(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each strategy
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Current tax $%s | ", tf.formatDecimal(compSet.BaseResult.TotalTax)))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if savings := alt.Savings(); !savings.IsZero() {
			change = fmt.Sprintf("%s$%s", signOf(savings), tf.formatDecimal(savings.Abs()))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.StrategyName, change))
	}

	return sb.String()
}
