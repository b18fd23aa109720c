package calculation

import (
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// LoanPayment returns the fixed monthly repayment, rounded to cents.
func LoanPayment(principal, annualRate decimal.Decimal, years int) (decimal.Decimal, error) {
	if err := validateLoan(principal, annualRate, years); err != nil {
		return decimal.Zero, err
	}
	return monthlyPayment(principal, annualRate, years), nil
}

func monthlyPayment(principal, annualRate decimal.Decimal, years int) decimal.Decimal {
	periods := years * MonthsPerYear
	level := roundMoney(principal.Div(decimal.NewFromInt(int64(periods))))
	r := annualRate.Div(twelve)
	if r.IsZero() {
		return level
	}
	factor := growthFactor(r, float64(periods))
	growth := factor.Sub(one)
	if !growth.IsPositive() {
		return level
	}
	return roundMoney(principal.Mul(r).Mul(factor).Div(growth))
}

// amortizer steps a loan one month at a time. The schedule and the
// remaining-balance shortcut both drive it so they round identically.
type amortizer struct {
	payment     decimal.Decimal
	monthlyRate decimal.Decimal
	balance     decimal.Decimal
	periods     int
	period      int
}

func newAmortizer(principal, annualRate decimal.Decimal, years int) *amortizer {
	return &amortizer{
		payment:     monthlyPayment(principal, annualRate, years),
		monthlyRate: annualRate.Div(twelve),
		balance:     principal,
		periods:     years * MonthsPerYear,
	}
}

func (a *amortizer) done() bool {
	return a.period >= a.periods || !a.balance.IsPositive()
}

// next applies one repayment. The last scheduled period, or the first one
// whose principal covers the balance, pays the loan off to exactly zero.
func (a *amortizer) next() domain.AmortizationEntry {
	a.period++
	interest := roundMoney(a.balance.Mul(a.monthlyRate))
	principal := a.payment.Sub(interest)
	if principal.LessThan(cent) {
		principal = cent
	}

	if a.period == a.periods || !principal.LessThan(a.balance) {
		principal = a.balance
	}
	a.balance = a.balance.Sub(principal)
	if !a.balance.IsPositive() {
		a.balance = decimal.Zero
	}

	return domain.AmortizationEntry{
		PaymentNumber:    a.period,
		Payment:          principal.Add(interest),
		Principal:        principal,
		Interest:         interest,
		RemainingBalance: a.balance,
	}
}

// AmortizationSchedule lists every monthly repayment until the loan is paid
// off. A zero principal has nothing to amortize and yields an empty schedule.
func AmortizationSchedule(principal, annualRate decimal.Decimal, years int) ([]domain.AmortizationEntry, error) {
	if err := validateLoan(principal, annualRate, years); err != nil {
		return nil, err
	}
	a := newAmortizer(principal, annualRate, years)
	schedule := make([]domain.AmortizationEntry, 0, a.periods)
	for !a.done() {
		schedule = append(schedule, a.next())
	}
	return schedule, nil
}

// RemainingLoanBalance returns the balance after yearsElapsed years of
// scheduled repayments, matching AmortizationSchedule to the cent.
func RemainingLoanBalance(principal, annualRate decimal.Decimal, termYears, yearsElapsed int) (decimal.Decimal, error) {
	if err := validateLoan(principal, annualRate, termYears); err != nil {
		return decimal.Zero, err
	}
	if yearsElapsed <= 0 {
		return principal, nil
	}
	if yearsElapsed >= termYears {
		return decimal.Zero, nil
	}

	a := newAmortizer(principal, annualRate, termYears)
	for elapsed := yearsElapsed * MonthsPerYear; a.period < elapsed && !a.done(); {
		a.next()
	}
	return a.balance, nil
}

// SummarizeLoan totals the full schedule for terms.
func SummarizeLoan(terms domain.LoanTerms) (*domain.LoanSummary, error) {
	schedule, err := AmortizationSchedule(terms.Principal, terms.AnnualRate, terms.TermYears)
	if err != nil {
		return nil, err
	}

	summary := &domain.LoanSummary{
		Terms:          terms,
		MonthlyPayment: monthlyPayment(terms.Principal, terms.AnnualRate, terms.TermYears),
		Payments:       len(schedule),
		TotalPaid:      decimal.Zero,
		TotalInterest:  decimal.Zero,
	}
	for _, e := range schedule {
		summary.TotalPaid = summary.TotalPaid.Add(e.Payment)
		summary.TotalInterest = summary.TotalInterest.Add(e.Interest)
	}
	return summary, nil
}

// firstYearInterest sums the interest over the first twelve repayments.
func firstYearInterest(principal, annualRate decimal.Decimal, years int) decimal.Decimal {
	a := newAmortizer(principal, annualRate, years)
	total := decimal.Zero
	for a.period < MonthsPerYear && !a.done() {
		total = total.Add(a.next().Interest)
	}
	return total
}

func validateLoan(principal, annualRate decimal.Decimal, years int) error {
	if err := requireNonNegative("principal", principal); err != nil {
		return err
	}
	if err := requireRange("annual_rate", annualRate, decimal.Zero, one); err != nil {
		return err
	}
	return requireIntRange("term_years", years, MinLoanTermYears, MaxLoanTermYears)
}
