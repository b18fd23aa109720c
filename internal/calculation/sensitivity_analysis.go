package calculation

import (
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// AnalyzeRetirementSensitivity re-runs ProjectRetirement once per value of a
// single parameter, holding everything else at the base input, and reports
// how the balance at retirement moves.
func AnalyzeRetirementSensitivity(input domain.RetirementInput, table *domain.TaxRuleTable, param domain.SensitivityParameter, values []decimal.Decimal) (*domain.SensitivityAnalysis, error) {
	if len(values) == 0 {
		return nil, domain.NewInvalidInputError("sensitivity.values", "must contain at least one value")
	}

	base, err := ProjectRetirement(input, table)
	if err != nil {
		return nil, fmt.Errorf("base projection: %w", err)
	}
	baseFinal := base[len(base)-1]

	analysis := &domain.SensitivityAnalysis{
		Parameter:   param,
		BaseBalance: baseFinal.EndingBalance,
	}
	switch param {
	case domain.SensitivityAnnualReturn:
		analysis.BaseValue = input.AnnualReturn
	case domain.SensitivityMonthlyContribution:
		analysis.BaseValue = input.MonthlyContribution
	case domain.SensitivityInflationRate:
		analysis.BaseValue = input.InflationRate
	case domain.SensitivityRetirementAge:
		analysis.BaseValue = decimal.NewFromInt(int64(input.RetirementAge))
	default:
		return nil, &domain.InvalidInputError{
			Field:      "sensitivity.parameter",
			Constraint: fmt.Sprintf("must be one of %v", domain.SensitivityParameters),
			Value:      string(param),
		}
	}

	for i, v := range values {
		varied := input
		switch param {
		case domain.SensitivityAnnualReturn:
			varied.AnnualReturn = v
		case domain.SensitivityMonthlyContribution:
			varied.MonthlyContribution = v
		case domain.SensitivityInflationRate:
			varied.InflationRate = v
		case domain.SensitivityRetirementAge:
			if !v.Equal(v.Truncate(0)) {
				return nil, domain.InvalidDecimal(fmt.Sprintf("sensitivity.values[%d]", i), "must be a whole age", v)
			}
			varied.RetirementAge = int(v.IntPart())
		}

		projection, err := ProjectRetirement(varied, table)
		if err != nil {
			return nil, fmt.Errorf("sensitivity value %s: %w", v.String(), err)
		}
		final := projection[len(projection)-1]

		change := final.EndingBalance.Sub(baseFinal.EndingBalance)
		changePct := decimal.Zero
		if !baseFinal.EndingBalance.IsZero() {
			changePct = roundRatio(change.Div(baseFinal.EndingBalance))
		}
		analysis.Results = append(analysis.Results, domain.SensitivityResult{
			Value:             v,
			RetirementBalance: final.EndingBalance,
			RealValue:         final.RealValue,
			ChangeFromBase:    change,
			ChangePct:         changePct,
		})
	}

	analysis.MostFavourable = analysis.Results[0].RetirementBalance
	analysis.LeastFavourable = analysis.Results[0].RetirementBalance
	for _, r := range analysis.Results[1:] {
		analysis.MostFavourable = decimal.Max(analysis.MostFavourable, r.RetirementBalance)
		analysis.LeastFavourable = decimal.Min(analysis.LeastFavourable, r.RetirementBalance)
	}
	analysis.RangeOfOutcomes = analysis.MostFavourable.Sub(analysis.LeastFavourable)
	return analysis, nil
}
