package compare

import (
	"context"
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/calculation"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
)

// CombinedStrategyName labels the alternative that applies every strategy.
const CombinedStrategyName = "All strategies"

// CompareEngine orchestrates tax strategy comparison
type CompareEngine struct {
	MetricsCalculator *MetricsCalculator
	Logger            calculation.Logger
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine() *CompareEngine {
	return &CompareEngine{
		MetricsCalculator: NewMetricsCalculator(),
		Logger:            calculation.NopLogger{},
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	IncludeCombined bool   // Also evaluate every strategy applied together
	PlanPath        string // Shown in reports only
}

// CompareStrategies evaluates each strategy on its own against base and,
// when requested and there is more than one, all of them together.
// Alternatives are ranked by saving.
func (ce *CompareEngine) CompareStrategies(
	ctx context.Context,
	base domain.TaxCalculationInput,
	strategies []domain.NamedStrategy,
	table *domain.TaxRuleTable,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseTax, err := calculation.CalculateTax(base, table)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base position: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics("Current", baseTax)

	candidates := append([]domain.NamedStrategy(nil), strategies...)
	if options.IncludeCombined && len(strategies) > 1 {
		candidates = append(candidates, domain.NamedStrategy{
			Name:        CombinedStrategyName,
			Description: "Every strategy applied together",
			Deltas:      domain.CombineStrategies(strategies),
		})
	}

	alternatives := make([]ComparisonResult, 0, len(candidates))
	for _, strategy := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cmp, err := calculation.CompareOptimization(base, strategy.Deltas, table)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate strategy %s: %w", strategy.Name, err)
		}

		alt := ce.MetricsCalculator.CalculateMetrics(strategy.Name, cmp.Optimized)
		alt.Description = strategy.Description
		alt.AppliedStrategies = cmp.AppliedStrategies
		alt = ce.MetricsCalculator.CalculateComparison(alt, baseResult)
		alternatives = append(alternatives, alt)

		ce.Logger.Debugf("op=compare_strategies strategy=%q savings=%s", strategy.Name, cmp.Savings.StringFixed(2))
	}
	rankBySavings(alternatives)

	compSet := &ComparisonSet{
		TaxYear:            table.TaxYear,
		RuleVersion:        table.Version,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		PlanPath:           options.PlanPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
