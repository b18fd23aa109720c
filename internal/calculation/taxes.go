package calculation

import (
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX EVALUATION RULES:
//
// 1. Brackets are half-open [Min, Max). Income sitting exactly on a boundary
//    is taxed in the upper bracket; the amount is the same either side because
//    each BaseAmount equals the tax owed at that edge.
// 2. The levy is a flat step: nothing up to the threshold, Rate x income above it.
// 3. Debt repayments are assessed on gross income and never exceed the balance.

// CalculateIncomeTax returns BaseAmount + (income - Min) x Rate for the bracket
// containing taxableIncome.
func CalculateIncomeTax(taxableIncome decimal.Decimal, table *domain.TaxRuleTable) (decimal.Decimal, error) {
	if err := requireTable(table); err != nil {
		return decimal.Zero, err
	}
	if err := requireNonNegative("taxable_income", taxableIncome); err != nil {
		return decimal.Zero, err
	}

	bracket, ok := table.BracketFor(taxableIncome)
	if !ok {
		return decimal.Zero, domain.InvalidDecimal("taxable_income", "is not covered by any bracket", taxableIncome)
	}
	tax := bracket.BaseAmount.Add(taxableIncome.Sub(bracket.Min).Mul(bracket.Rate))
	return roundMoney(tax), nil
}

// CalculateLevy returns the flat levy owed on taxableIncome.
func CalculateLevy(taxableIncome decimal.Decimal, table *domain.TaxRuleTable, exempt bool) decimal.Decimal {
	if table == nil || exempt || !taxableIncome.GreaterThan(table.Levy.Threshold) {
		return decimal.Zero
	}
	return roundMoney(taxableIncome.Mul(table.Levy.Rate))
}

// CalculateDebtRepayment returns the compulsory repayment on grossIncome,
// capped at the outstanding balance.
func CalculateDebtRepayment(grossIncome decimal.Decimal, table *domain.TaxRuleTable, balance decimal.Decimal) decimal.Decimal {
	if table == nil || !balance.IsPositive() {
		return decimal.Zero
	}
	band, ok := table.DebtBandFor(grossIncome)
	if !ok {
		return decimal.Zero
	}
	return roundMoney(decimal.Min(grossIncome.Mul(band.Rate), balance))
}

// CalculateMarginalRate returns the rate on the next dollar of taxableIncome:
// bracket rate, plus the levy rate above the threshold, plus the repayment
// band rate.
func CalculateMarginalRate(taxableIncome decimal.Decimal, table *domain.TaxRuleTable) decimal.Decimal {
	return stackedMarginalRate(taxableIncome, taxableIncome, table, true, true)
}

// CalculateAverageRate returns totalTax / grossIncome, or zero for no income.
func CalculateAverageRate(totalTax, grossIncome decimal.Decimal) decimal.Decimal {
	if !grossIncome.IsPositive() {
		return decimal.Zero
	}
	return roundRatio(totalTax.Div(grossIncome))
}

// stackedMarginalRate lets the orchestrator drop the levy for exempt taxpayers
// and the repayment band when no debt is outstanding.
func stackedMarginalRate(taxableIncome, repaymentIncome decimal.Decimal, table *domain.TaxRuleTable, withLevy, withDebt bool) decimal.Decimal {
	if table == nil {
		return decimal.Zero
	}
	if taxableIncome.IsNegative() {
		taxableIncome = decimal.Zero
	}

	rate := decimal.Zero
	if bracket, ok := table.BracketFor(taxableIncome); ok {
		rate = rate.Add(bracket.Rate)
	}
	if withLevy && taxableIncome.GreaterThan(table.Levy.Threshold) {
		rate = rate.Add(table.Levy.Rate)
	}
	if withDebt {
		if band, ok := table.DebtBandFor(repaymentIncome); ok {
			rate = rate.Add(band.Rate)
		}
	}
	return rate
}
