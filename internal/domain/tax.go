package domain

import (
	"github.com/shopspring/decimal"
)

// Deduction is a named deductible amount, optionally tagged with a category
// code from the rule table.
type Deduction struct {
	Name     string          `yaml:"name" json:"name"`
	Category string          `yaml:"category,omitempty" json:"category,omitempty"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
}

// TaxCalculationInput holds everything needed to compute one year's tax.
type TaxCalculationInput struct {
	GrossIncome            decimal.Decimal `yaml:"gross_income" json:"grossIncome"`
	Deductions             []Deduction     `yaml:"deductions" json:"deductions"`
	NegativeGearingLoss    decimal.Decimal `yaml:"negative_gearing_loss" json:"negativeGearingLoss"`
	CapitalGains           decimal.Decimal `yaml:"capital_gains" json:"capitalGains"`
	FrankedDividends       decimal.Decimal `yaml:"franked_dividends" json:"frankedDividends"`
	OutstandingDebtBalance decimal.Decimal `yaml:"outstanding_debt_balance" json:"outstandingDebtBalance"`
	LeviesExempt           bool            `yaml:"levies_exempt" json:"leviesExempt"`
}

// TotalDeductions sums all deduction amounts.
func (in TaxCalculationInput) TotalDeductions() decimal.Decimal {
	total := decimal.Zero
	for _, d := range in.Deductions {
		total = total.Add(d.Amount)
	}
	return total
}

// TaxBreakdown explains how taxable income and offsets were derived.
type TaxBreakdown struct {
	Deductions             decimal.Decimal `json:"deductions"`
	DeductionItems         []Deduction     `json:"deductionItems,omitempty"`
	NegativeGearing        decimal.Decimal `json:"negativeGearing"`
	NetCapitalGain         decimal.Decimal `json:"netCapitalGain"`
	GrossedUpDividends     decimal.Decimal `json:"grossedUpDividends"`
	FrankingCredits        decimal.Decimal `json:"frankingCredits"`
	FrankingCreditsApplied decimal.Decimal `json:"frankingCreditsApplied"`
}

// TaxCalculationResult is produced fresh by every tax calculation.
type TaxCalculationResult struct {
	TaxYear        string          `json:"taxYear"`
	GrossIncome    decimal.Decimal `json:"grossIncome"`
	TaxableIncome  decimal.Decimal `json:"taxableIncome"`
	IncomeTax      decimal.Decimal `json:"incomeTax"`
	LevyAmount     decimal.Decimal `json:"levyAmount"`
	DebtRepayment  decimal.Decimal `json:"debtRepayment"`
	TotalTax       decimal.Decimal `json:"totalTax"`
	AfterTaxIncome decimal.Decimal `json:"afterTaxIncome"`
	MarginalRate   decimal.Decimal `json:"marginalRate"`
	AverageRate    decimal.Decimal `json:"averageRate"`
	Breakdown      TaxBreakdown    `json:"breakdown"`
}

// StrategyDeltas are the what-if adjustments applied on top of a base input.
type StrategyDeltas struct {
	AdditionalDeductions          []Deduction     `yaml:"additional_deductions" json:"additionalDeductions"`
	AdditionalNegativeGearingLoss decimal.Decimal `yaml:"additional_negative_gearing_loss" json:"additionalNegativeGearingLoss"`
	SalarySacrifice               decimal.Decimal `yaml:"salary_sacrifice" json:"salarySacrifice"`
}

// IsZero reports whether the deltas change nothing.
func (s StrategyDeltas) IsZero() bool {
	return len(s.AdditionalDeductions) == 0 &&
		s.AdditionalNegativeGearingLoss.IsZero() &&
		s.SalarySacrifice.IsZero()
}

// OptimizationComparison reports current vs optimized tax for one set of deltas.
type OptimizationComparison struct {
	Current           *TaxCalculationResult `json:"current"`
	Optimized         *TaxCalculationResult `json:"optimized"`
	Savings           decimal.Decimal       `json:"savings"`
	AppliedStrategies []string              `json:"appliedStrategies"`
}
