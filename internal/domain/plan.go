package domain

import (
	"github.com/shopspring/decimal"
)

// NamedStrategy is a labelled set of what-if tax adjustments.
type NamedStrategy struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Deltas      StrategyDeltas `yaml:"deltas" json:"deltas"`
}

// CombineStrategies merges every strategy's deltas into one adjustment.
func CombineStrategies(strategies []NamedStrategy) StrategyDeltas {
	var combined StrategyDeltas
	for _, s := range strategies {
		combined.AdditionalDeductions = append(combined.AdditionalDeductions, s.Deltas.AdditionalDeductions...)
		combined.AdditionalNegativeGearingLoss = combined.AdditionalNegativeGearingLoss.Add(s.Deltas.AdditionalNegativeGearingLoss)
		combined.SalarySacrifice = combined.SalarySacrifice.Add(s.Deltas.SalarySacrifice)
	}
	return combined
}

// ClientProfile holds the ages that bound every projection.
type ClientProfile struct {
	Name           string `yaml:"name" json:"name"`
	CurrentAge     int    `yaml:"current_age" json:"currentAge"`
	RetirementAge  int    `yaml:"retirement_age" json:"retirementAge"`
	LifeExpectancy int    `yaml:"life_expectancy" json:"lifeExpectancy"`
}

// ClientPlan is one client's complete planning input.
type ClientPlan struct {
	Client               ClientProfile         `yaml:"client" json:"client"`
	TaxYear              string                `yaml:"tax_year" json:"taxYear"`
	Income               TaxCalculationInput   `yaml:"income" json:"income"`
	Superannuation       RetirementFunds       `yaml:"superannuation" json:"superannuation"`
	Assets               []Asset               `yaml:"assets" json:"assets"`
	InvestmentProperties []InvestmentProperty  `yaml:"investment_properties" json:"investmentProperties"`
	Liabilities          []Liability           `yaml:"liabilities" json:"liabilities"`
	MonthlySavings       decimal.Decimal       `yaml:"monthly_savings" json:"monthlySavings"`
	Assumptions          ProjectionAssumptions `yaml:"assumptions" json:"assumptions"`
	Strategies           []NamedStrategy       `yaml:"strategies" json:"strategies"`
}

// RetirementInput derives the accumulation input for the plan.
func (p *ClientPlan) RetirementInput() RetirementInput {
	return RetirementInput{
		CurrentAge:          p.Client.CurrentAge,
		RetirementAge:       p.Client.RetirementAge,
		CurrentSavings:      p.Superannuation.Balance,
		MonthlyContribution: p.Superannuation.MonthlyContribution,
		AnnualReturn:        p.Assumptions.SuperReturnRate,
		InflationRate:       p.Assumptions.InflationRate,
		AnnualSalary:        p.Income.GrossIncome,
		SalaryGrowthRate:    p.Assumptions.SalaryGrowthRate,
	}
}

// NetWorthInput derives the balance-sheet input for the plan.
func (p *ClientPlan) NetWorthInput() NetWorthInput {
	return NetWorthInput{
		CurrentAge:           p.Client.CurrentAge,
		RetirementAge:        p.Client.RetirementAge,
		Assets:               p.Assets,
		InvestmentProperties: p.InvestmentProperties,
		Liabilities:          p.Liabilities,
		MonthlySavings:       p.MonthlySavings,
		Retirement:           p.Superannuation,
	}
}

// PlanReport is everything the engine produces for one ClientPlan.
type PlanReport struct {
	Client            ClientProfile           `json:"client"`
	TaxYear           string                  `json:"taxYear"`
	RuleVersion       string                  `json:"ruleVersion"`
	Tax               *TaxCalculationResult   `json:"tax"`
	PropertyCashFlows []PropertyCashFlow      `json:"propertyCashFlows,omitempty"`
	Optimization      *OptimizationComparison `json:"optimization,omitempty"`
	Retirement        []YearlyProjection      `json:"retirement"`
	NetWorth          *NetWorthProjection     `json:"netWorth"`
	Drawdown          *DrawdownProjection     `json:"drawdown,omitempty"`
}
