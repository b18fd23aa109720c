package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AssetClass tags an asset with the growth assumption that applies to it.
type AssetClass string

const (
	AssetClassShares                AssetClass = "shares"
	AssetClassPropertyOwnerOccupied AssetClass = "property_owner_occupied"
	AssetClassPropertyOther         AssetClass = "property_other"
	AssetClassCash                  AssetClass = "cash"
	AssetClassOther                 AssetClass = "other"
)

// AssetClasses lists every class in reporting order.
var AssetClasses = []AssetClass{
	AssetClassShares,
	AssetClassPropertyOwnerOccupied,
	AssetClassPropertyOther,
	AssetClassCash,
	AssetClassOther,
}

// Valid reports whether c is a known asset class.
func (c AssetClass) Valid() bool {
	for _, known := range AssetClasses {
		if c == known {
			return true
		}
	}
	return false
}

// IsProperty reports whether c is one of the property classes.
func (c AssetClass) IsProperty() bool {
	return c == AssetClassPropertyOwnerOccupied || c == AssetClassPropertyOther
}

// UnmarshalText rejects unknown asset classes at the boundary.
func (c *AssetClass) UnmarshalText(text []byte) error {
	v := AssetClass(text)
	if !v.Valid() {
		return &InvalidInputError{Field: "asset.class", Constraint: fmt.Sprintf("must be one of %v", AssetClasses), Value: string(text)}
	}
	*c = v
	return nil
}

// Asset is a non-investment-property holding at its current value.
type Asset struct {
	Name         string          `yaml:"name" json:"name"`
	Class        AssetClass      `yaml:"class" json:"class"`
	CurrentValue decimal.Decimal `yaml:"current_value" json:"currentValue"`
}

// InvestmentProperty is a rental property with an optional loan against it.
// LoanAmount is the balance outstanding today and LoanTerm the remaining term.
type InvestmentProperty struct {
	Name           string          `yaml:"name" json:"name"`
	PurchasePrice  decimal.Decimal `yaml:"purchase_price" json:"purchasePrice"`
	CurrentValue   decimal.Decimal `yaml:"current_value" json:"currentValue"`
	LoanAmount     decimal.Decimal `yaml:"loan_amount" json:"loanAmount"`
	InterestRate   decimal.Decimal `yaml:"interest_rate" json:"interestRate"`
	LoanTerm       int             `yaml:"loan_term" json:"loanTerm"`
	WeeklyRent     decimal.Decimal `yaml:"weekly_rent" json:"weeklyRent"`
	AnnualExpenses decimal.Decimal `yaml:"annual_expenses" json:"annualExpenses"`
}

// Liability is a debt. TermYears is the remaining term; zero means the debt has
// no defined term and is carried at its current balance.
type Liability struct {
	Name         string          `yaml:"name" json:"name"`
	Balance      decimal.Decimal `yaml:"balance" json:"balance"`
	InterestRate decimal.Decimal `yaml:"interest_rate" json:"interestRate"`
	TermYears    int             `yaml:"term_years" json:"termYears"`
}

// PropertyCashFlow is the first-year rental position of an investment property.
type PropertyCashFlow struct {
	Name                string          `json:"name"`
	AnnualRent          decimal.Decimal `json:"annualRent"`
	AnnualExpenses      decimal.Decimal `json:"annualExpenses"`
	AnnualInterest      decimal.Decimal `json:"annualInterest"`
	NetIncome           decimal.Decimal `json:"netIncome"`
	NegativeGearingLoss decimal.Decimal `json:"negativeGearingLoss"`
}
