package domain

import (
	"github.com/shopspring/decimal"
)

// LoanTerms describes a fixed-rate, monthly-repayment loan.
type LoanTerms struct {
	Principal  decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRate decimal.Decimal `yaml:"annual_rate" json:"annualRate"`
	TermYears  int             `yaml:"term_years" json:"termYears"`
}

// AmortizationEntry is one monthly repayment in a schedule.
type AmortizationEntry struct {
	PaymentNumber    int             `json:"paymentNumber"`
	Payment          decimal.Decimal `json:"payment"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// LoanSummary totals a complete amortization schedule.
type LoanSummary struct {
	Terms          LoanTerms       `json:"terms"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	Payments       int             `json:"payments"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}
