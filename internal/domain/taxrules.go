package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxBracket is one band of a progressive income tax scale. Max is nil for the
// unbounded top bracket. BaseAmount is the tax owed at Min under the lower
// brackets and is stored in the table, never derived at call time.
type TaxBracket struct {
	Min        decimal.Decimal  `yaml:"min" json:"min"`
	Max        *decimal.Decimal `yaml:"max" json:"max"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
	BaseAmount decimal.Decimal  `yaml:"base_amount" json:"baseAmount"`
}

// Contains reports whether income falls in [Min, Max).
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || income.LessThan(*b.Max)
}

// LevyRule is a flat-rate levy applied once income exceeds the threshold.
type LevyRule struct {
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
}

// DebtRepaymentBand is one step of a HELP-style compulsory repayment schedule.
type DebtRepaymentBand struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Contains reports whether income falls in [Min, Max).
func (b DebtRepaymentBand) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || income.LessThan(*b.Max)
}

// DeductionCategory describes a class of allowable deduction.
type DeductionCategory struct {
	Code        string `yaml:"code" json:"code"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// TaxRuleTable is the complete, versioned rule set for one tax year. Tables are
// built once and only ever read by calculations.
type TaxRuleTable struct {
	Version       string    `yaml:"version" json:"version"`
	EffectiveDate time.Time `yaml:"effective_date" json:"effectiveDate"`
	TaxYear       string    `yaml:"tax_year" json:"taxYear"`
	Jurisdiction  string    `yaml:"jurisdiction" json:"jurisdiction"`

	Brackets                []TaxBracket        `yaml:"brackets" json:"brackets"`
	Levy                    LevyRule            `yaml:"levy" json:"levy"`
	DebtRepaymentThresholds []DebtRepaymentBand `yaml:"debt_repayment_thresholds" json:"debtRepaymentThresholds"`

	NegativeGearingAllowed bool            `yaml:"negative_gearing_allowed" json:"negativeGearingAllowed"`
	FrankingCreditRate     decimal.Decimal `yaml:"franking_credit_rate" json:"frankingCreditRate"`
	CapitalGainsDiscount   decimal.Decimal `yaml:"capital_gains_discount" json:"capitalGainsDiscount"`

	DeductionCategories []DeductionCategory `yaml:"deduction_categories" json:"deductionCategories"`
}

// Category returns the deduction category with the given code.
func (t *TaxRuleTable) Category(code string) (DeductionCategory, bool) {
	for _, c := range t.DeductionCategories {
		if c.Code == code {
			return c, true
		}
	}
	return DeductionCategory{}, false
}

// BracketFor returns the bracket containing income.
func (t *TaxRuleTable) BracketFor(income decimal.Decimal) (TaxBracket, bool) {
	for _, b := range t.Brackets {
		if b.Contains(income) {
			return b, true
		}
	}
	return TaxBracket{}, false
}

// DebtBandFor returns the repayment band containing income.
func (t *TaxRuleTable) DebtBandFor(income decimal.Decimal) (DebtRepaymentBand, bool) {
	for _, b := range t.DebtRepaymentThresholds {
		if b.Contains(income) {
			return b, true
		}
	}
	return DebtRepaymentBand{}, false
}
