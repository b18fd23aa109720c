package compare

import (
	"fmt"
	"sort"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one tax strategy evaluated against the base
type ComparisonResult struct {
	StrategyName string                       `json:"strategyName"`
	Description  string                       `json:"description"`
	Result       *domain.TaxCalculationResult `json:"result"`

	// Key Metrics
	TaxableIncome  decimal.Decimal `json:"taxableIncome"`
	TotalTax       decimal.Decimal `json:"totalTax"`
	AfterTaxIncome decimal.Decimal `json:"afterTaxIncome"`
	MarginalRate   decimal.Decimal `json:"marginalRate"`
	AverageRate    decimal.Decimal `json:"averageRate"`

	// Comparison to Base
	TaxDiffFromBase      decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase       decimal.Decimal `json:"taxPctFromBase"`
	AfterTaxDiffFromBase decimal.Decimal `json:"afterTaxDiffFromBase"`

	AppliedStrategies []string `json:"appliedStrategies,omitempty"`
}

// Savings is the tax saved relative to the base (negative when tax rises).
func (r ComparisonResult) Savings() decimal.Decimal {
	return r.TaxDiffFromBase.Neg()
}

// ComparisonSet represents a base tax position and its alternatives
type ComparisonSet struct {
	TaxYear            string             `json:"taxYear"`
	RuleVersion        string             `json:"ruleVersion"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	PlanPath           string             `json:"planPath,omitempty"`
}

// Best returns the alternative with the largest saving, or nil when no
// alternative beats the base.
func (cs *ComparisonSet) Best() *ComparisonResult {
	var best *ComparisonResult
	for i := range cs.AlternativeResults {
		alt := &cs.AlternativeResults[i]
		if !alt.Savings().IsPositive() {
			continue
		}
		if best == nil || alt.Savings().GreaterThan(best.Savings()) {
			best = alt
		}
	}
	return best
}

// MetricsCalculator extracts key metrics from tax results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics copies the headline figures out of a tax result
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.TaxCalculationResult) ComparisonResult {
	return ComparisonResult{
		StrategyName:   name,
		Result:         result,
		TaxableIncome:  result.TaxableIncome,
		TotalTax:       result.TotalTax,
		AfterTaxIncome: result.AfterTaxIncome,
		MarginalRate:   result.MarginalRate,
		AverageRate:    result.AverageRate,
	}
}

// CalculateComparison computes deltas between a strategy and the base
func (mc *MetricsCalculator) CalculateComparison(strategy, base ComparisonResult) ComparisonResult {
	strategy.TaxDiffFromBase = strategy.TotalTax.Sub(base.TotalTax)
	strategy.AfterTaxDiffFromBase = strategy.AfterTaxIncome.Sub(base.AfterTaxIncome)

	if !base.TotalTax.IsZero() {
		strategy.TaxPctFromBase = strategy.TaxDiffFromBase.
			Div(base.TotalTax).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return strategy
}

// rankBySavings orders alternatives from largest to smallest saving; ties
// keep their input order.
func rankBySavings(results []ComparisonResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TaxDiffFromBase.LessThan(results[j].TaxDiffFromBase)
	})
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	if best := compSet.Best(); best != nil {
		recommendations = append(recommendations,
			"Lowest Tax: "+best.StrategyName+" saves $"+best.Savings().StringFixed(0)+
				" in tax for "+compSet.TaxYear)
		if best.MarginalRate.LessThan(compSet.BaseResult.MarginalRate) {
			recommendations = append(recommendations,
				fmt.Sprintf("Marginal Rate: %s lowers the marginal rate from %s%% to %s%%",
					best.StrategyName,
					compSet.BaseResult.MarginalRate.Mul(decimal.NewFromInt(100)).StringFixed(1),
					best.MarginalRate.Mul(decimal.NewFromInt(100)).StringFixed(1)))
		}
	} else {
		recommendations = append(recommendations, "No strategy reduces tax below the current position")
	}

	// Salary sacrifice lowers take-home pay even when it saves tax.
	for _, alt := range compSet.AlternativeResults {
		if alt.Savings().IsPositive() && alt.AfterTaxDiffFromBase.IsNegative() {
			recommendations = append(recommendations,
				"Cash Flow: "+alt.StrategyName+" reduces take-home income by $"+
					alt.AfterTaxDiffFromBase.Abs().StringFixed(0)+" while saving tax")
		}
	}

	return recommendations
}
