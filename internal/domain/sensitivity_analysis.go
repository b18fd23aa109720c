package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter names an accumulation input that can be swept.
type SensitivityParameter string

const (
	SensitivityAnnualReturn        SensitivityParameter = "annual_return"
	SensitivityMonthlyContribution SensitivityParameter = "monthly_contribution"
	SensitivityInflationRate       SensitivityParameter = "inflation_rate"
	SensitivityRetirementAge       SensitivityParameter = "retirement_age"
)

// SensitivityParameters lists the supported sweep parameters.
var SensitivityParameters = []SensitivityParameter{
	SensitivityAnnualReturn,
	SensitivityMonthlyContribution,
	SensitivityInflationRate,
	SensitivityRetirementAge,
}

// SensitivityResult is the projection outcome for one swept value.
type SensitivityResult struct {
	Value             decimal.Decimal `json:"value"`
	RetirementBalance decimal.Decimal `json:"retirementBalance"`
	RealValue         decimal.Decimal `json:"realValue"`
	ChangeFromBase    decimal.Decimal `json:"changeFromBase"`
	ChangePct         decimal.Decimal `json:"changePct"`
}

// SensitivityAnalysis is a single-parameter sweep around a base projection.
type SensitivityAnalysis struct {
	Parameter       SensitivityParameter `json:"parameter"`
	BaseValue       decimal.Decimal      `json:"baseValue"`
	BaseBalance     decimal.Decimal      `json:"baseBalance"`
	Results         []SensitivityResult  `json:"results"`
	MostFavourable  decimal.Decimal      `json:"mostFavourable"`
	LeastFavourable decimal.Decimal      `json:"leastFavourable"`
	RangeOfOutcomes decimal.Decimal      `json:"rangeOfOutcomes"`
}
