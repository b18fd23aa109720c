package calculation

import (
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateTax produces a complete result for one year's income:
//
//	taxable = gross - deductions - negative gearing (if allowed)
//	        + discounted capital gains + franked dividends + franking credits
//
// Franking credits then offset income tax down to zero but never below it.
func CalculateTax(input domain.TaxCalculationInput, table *domain.TaxRuleTable) (*domain.TaxCalculationResult, error) {
	if err := validateTaxInput(input, table); err != nil {
		return nil, err
	}

	totalDeductions := input.TotalDeductions()
	taxable := input.GrossIncome.Sub(totalDeductions)

	negativeGearing := decimal.Zero
	if table.NegativeGearingAllowed {
		negativeGearing = input.NegativeGearingLoss
		taxable = taxable.Sub(negativeGearing)
	}

	netCapitalGain := roundMoney(input.CapitalGains.Mul(one.Sub(table.CapitalGainsDiscount)))
	taxable = taxable.Add(netCapitalGain)

	frankingCredits := roundMoney(input.FrankedDividends.Mul(table.FrankingCreditRate))
	grossedUp := input.FrankedDividends.Add(frankingCredits)
	taxable = taxable.Add(grossedUp)

	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	taxable = roundMoney(taxable)

	incomeTax, err := CalculateIncomeTax(taxable, table)
	if err != nil {
		return nil, err
	}
	levy := CalculateLevy(taxable, table, input.LeviesExempt)
	debtRepayment := CalculateDebtRepayment(input.GrossIncome, table, input.OutstandingDebtBalance)

	adjustedTax := incomeTax.Sub(frankingCredits)
	if adjustedTax.IsNegative() {
		adjustedTax = decimal.Zero
	}

	totalTax := adjustedTax.Add(levy).Add(debtRepayment)
	marginal := stackedMarginalRate(taxable, input.GrossIncome, table,
		!input.LeviesExempt, input.OutstandingDebtBalance.IsPositive())

	return &domain.TaxCalculationResult{
		TaxYear:        table.TaxYear,
		GrossIncome:    roundMoney(input.GrossIncome),
		TaxableIncome:  taxable,
		IncomeTax:      adjustedTax,
		LevyAmount:     levy,
		DebtRepayment:  debtRepayment,
		TotalTax:       totalTax,
		AfterTaxIncome: roundMoney(input.GrossIncome.Sub(totalTax)),
		MarginalRate:   marginal,
		AverageRate:    CalculateAverageRate(totalTax, input.GrossIncome),
		Breakdown: domain.TaxBreakdown{
			Deductions:             roundMoney(totalDeductions),
			DeductionItems:         append([]domain.Deduction(nil), input.Deductions...),
			NegativeGearing:        roundMoney(negativeGearing),
			NetCapitalGain:         netCapitalGain,
			GrossedUpDividends:     roundMoney(grossedUp),
			FrankingCredits:        frankingCredits,
			FrankingCreditsApplied: incomeTax.Sub(adjustedTax),
		},
	}, nil
}

func validateTaxInput(input domain.TaxCalculationInput, table *domain.TaxRuleTable) error {
	if err := requireTable(table); err != nil {
		return err
	}
	checks := []struct {
		field string
		value decimal.Decimal
	}{
		{"gross_income", input.GrossIncome},
		{"negative_gearing_loss", input.NegativeGearingLoss},
		{"capital_gains", input.CapitalGains},
		{"franked_dividends", input.FrankedDividends},
		{"outstanding_debt_balance", input.OutstandingDebtBalance},
	}
	for _, c := range checks {
		if err := requireNonNegative(c.field, c.value); err != nil {
			return err
		}
	}
	for i, d := range input.Deductions {
		field := fmt.Sprintf("deductions[%d]", i)
		if err := requireNonNegative(field+".amount", d.Amount); err != nil {
			return err
		}
		if d.Category == "" {
			continue
		}
		if _, ok := table.Category(d.Category); !ok {
			return &domain.InvalidInputError{
				Field:      field + ".category",
				Constraint: "must be a deduction category of rule table " + table.Version,
				Value:      d.Category,
			}
		}
	}
	return nil
}

// CompareOptimization recomputes tax with the deltas applied on top of base
// and reports the saving. The base input is never modified.
func CompareOptimization(base domain.TaxCalculationInput, deltas domain.StrategyDeltas, table *domain.TaxRuleTable) (*domain.OptimizationComparison, error) {
	if err := requireNonNegative("strategy.additional_negative_gearing_loss", deltas.AdditionalNegativeGearingLoss); err != nil {
		return nil, err
	}
	if err := requireNonNegative("strategy.salary_sacrifice", deltas.SalarySacrifice); err != nil {
		return nil, err
	}
	if deltas.SalarySacrifice.GreaterThan(base.GrossIncome) {
		return nil, domain.InvalidDecimal("strategy.salary_sacrifice", "must not exceed gross income", deltas.SalarySacrifice)
	}

	current, err := CalculateTax(base, table)
	if err != nil {
		return nil, fmt.Errorf("current scenario: %w", err)
	}

	adjusted := base
	adjusted.Deductions = make([]domain.Deduction, 0, len(base.Deductions)+len(deltas.AdditionalDeductions))
	adjusted.Deductions = append(adjusted.Deductions, base.Deductions...)
	adjusted.Deductions = append(adjusted.Deductions, deltas.AdditionalDeductions...)
	adjusted.NegativeGearingLoss = base.NegativeGearingLoss.Add(deltas.AdditionalNegativeGearingLoss)
	adjusted.GrossIncome = base.GrossIncome.Sub(deltas.SalarySacrifice)

	optimized, err := CalculateTax(adjusted, table)
	if err != nil {
		return nil, fmt.Errorf("optimized scenario: %w", err)
	}

	return &domain.OptimizationComparison{
		Current:           current,
		Optimized:         optimized,
		Savings:           current.TotalTax.Sub(optimized.TotalTax),
		AppliedStrategies: describeDeltas(deltas),
	}, nil
}

func describeDeltas(deltas domain.StrategyDeltas) []string {
	applied := []string{}
	for _, d := range deltas.AdditionalDeductions {
		applied = append(applied, fmt.Sprintf("additional deduction %q of %s", d.Name, d.Amount.StringFixed(2)))
	}
	if deltas.AdditionalNegativeGearingLoss.IsPositive() {
		applied = append(applied, fmt.Sprintf("additional negative gearing loss of %s", deltas.AdditionalNegativeGearingLoss.StringFixed(2)))
	}
	if deltas.SalarySacrifice.IsPositive() {
		applied = append(applied, fmt.Sprintf("salary sacrifice of %s", deltas.SalarySacrifice.StringFixed(2)))
	}
	return applied
}
