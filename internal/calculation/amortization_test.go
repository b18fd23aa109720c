package calculation

import (
	"testing"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanPayment(t *testing.T) {
	got, err := LoanPayment(d("300000"), d("0.045"), 30)
	require.NoError(t, err)
	assertMoney(t, "1520.06", got, "30 year mortgage")

	got, err = LoanPayment(d("12000"), decimal.Zero, 1)
	require.NoError(t, err)
	assertMoney(t, "1000", got, "interest free")

	got, err = LoanPayment(decimal.Zero, d("0.05"), 10)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestLoanPayment_TinyRate(t *testing.T) {
	for _, rate := range []string{"0.0000000000000001", "0.000000000001", "0.0000001"} {
		got, err := LoanPayment(d("300000"), d(rate), 30)
		require.NoError(t, err, rate)
		assert.True(t, got.Sub(d("833.33")).Abs().LessThanOrEqual(d("0.02")), "rate %s: %s", rate, got)

		schedule, err := AmortizationSchedule(d("300000"), d(rate), 30)
		require.NoError(t, err, rate)
		require.Len(t, schedule, 360)
		assert.True(t, schedule[359].RemainingBalance.IsZero())

		remaining, err := RemainingLoanBalance(d("300000"), d(rate), 30, 15)
		require.NoError(t, err, rate)
		assert.True(t, remaining.Sub(d("150000")).Abs().LessThanOrEqual(d("10")), "rate %s: %s", rate, remaining)
	}
}

func TestLoanPayment_Invalid(t *testing.T) {
	_, err := LoanPayment(d("-1"), d("0.05"), 10)
	requireInvalid(t, err, "principal")

	_, err = LoanPayment(d("1000"), d("-0.01"), 10)
	requireInvalid(t, err, "annual_rate")

	_, err = LoanPayment(d("1000"), d("1.01"), 10)
	requireInvalid(t, err, "annual_rate")

	_, err = LoanPayment(d("1000"), d("0.05"), 0)
	requireInvalid(t, err, "term_years")

	_, err = LoanPayment(d("1000"), d("0.05"), 51)
	requireInvalid(t, err, "term_years")
}

func TestAmortizationSchedule_Invariants(t *testing.T) {
	loans := []struct {
		principal, rate string
		years           int
	}{
		{"300000", "0.045", 30},
		{"25000", "0.089", 5},
		{"12000", "0", 1},
		{"650000", "0.0625", 25},
		{"1000", "0.20", 10},
	}

	for _, loan := range loans {
		t.Run(loan.principal+"@"+loan.rate, func(t *testing.T) {
			principal := d(loan.principal)
			schedule, err := AmortizationSchedule(principal, d(loan.rate), loan.years)
			require.NoError(t, err)
			require.NotEmpty(t, schedule)
			assert.LessOrEqual(t, len(schedule), loan.years*12)

			last := schedule[len(schedule)-1]
			assert.True(t, last.RemainingBalance.IsZero(), "final balance should be zero, got %s", last.RemainingBalance)

			previous := principal
			repaid := decimal.Zero
			interest := decimal.Zero
			totalPaid := decimal.Zero
			for i, e := range schedule {
				assert.Equal(t, i+1, e.PaymentNumber)
				assert.False(t, e.RemainingBalance.IsNegative())
				assert.True(t, e.RemainingBalance.LessThan(previous), "balance must strictly decrease at payment %d", e.PaymentNumber)
				assert.True(t, e.Payment.Equal(e.Principal.Add(e.Interest)))
				previous = e.RemainingBalance
				repaid = repaid.Add(e.Principal)
				interest = interest.Add(e.Interest)
				totalPaid = totalPaid.Add(e.Payment)
			}
			assert.True(t, repaid.Equal(principal), "principal repaid %s should equal %s", repaid, principal)

			payment, err := LoanPayment(principal, d(loan.rate), loan.years)
			require.NoError(t, err)
			approx := payment.Mul(decimal.NewFromInt(int64(len(schedule))))
			assert.True(t, approx.Sub(principal.Add(interest)).Abs().LessThan(d("10")),
				"%d x %s = %s should be close to principal + interest %s", len(schedule), payment, approx, principal.Add(interest))
			assert.True(t, totalPaid.Equal(principal.Add(interest)))
		})
	}
}

func TestAmortizationSchedule_Mortgage(t *testing.T) {
	schedule, err := AmortizationSchedule(d("300000"), d("0.045"), 30)
	require.NoError(t, err)
	require.Len(t, schedule, 360)

	first := schedule[0]
	assertMoney(t, "1520.06", first.Payment, "first payment")
	assertMoney(t, "1125", first.Interest, "first interest")
	assertMoney(t, "395.06", first.Principal, "first principal")
	assertMoney(t, "299604.94", first.RemainingBalance, "first balance")
}

func TestAmortizationSchedule_InterestFree(t *testing.T) {
	schedule, err := AmortizationSchedule(d("12000"), decimal.Zero, 1)
	require.NoError(t, err)
	require.Len(t, schedule, 12)
	for _, e := range schedule {
		assertMoney(t, "1000", e.Payment, "payment")
		assert.True(t, e.Interest.IsZero())
	}
}

func TestAmortizationSchedule_ZeroPrincipal(t *testing.T) {
	schedule, err := AmortizationSchedule(decimal.Zero, d("0.05"), 10)
	require.NoError(t, err)
	assert.Empty(t, schedule)
}

func TestRemainingLoanBalance(t *testing.T) {
	principal := d("300000")
	rate := d("0.045")

	atTerm, err := RemainingLoanBalance(principal, rate, 30, 30)
	require.NoError(t, err)
	assert.True(t, atTerm.IsZero())

	pastTerm, err := RemainingLoanBalance(principal, rate, 30, 45)
	require.NoError(t, err)
	assert.True(t, pastTerm.IsZero())

	atStart, err := RemainingLoanBalance(principal, rate, 30, 0)
	require.NoError(t, err)
	assert.True(t, atStart.Equal(principal))

	schedule, err := AmortizationSchedule(principal, rate, 30)
	require.NoError(t, err)
	for _, years := range []int{1, 5, 10, 29} {
		got, err := RemainingLoanBalance(principal, rate, 30, years)
		require.NoError(t, err)
		want := schedule[years*12-1].RemainingBalance
		assert.True(t, got.Equal(want), "after %d years: want %s got %s", years, want, got)
	}

	interestFree, err := RemainingLoanBalance(d("12000"), decimal.Zero, 2, 1)
	require.NoError(t, err)
	assertMoney(t, "6000", interestFree, "interest free")

	_, err = RemainingLoanBalance(principal, rate, 0, 5)
	requireInvalid(t, err, "term_years")
}

func TestSummarizeLoan(t *testing.T) {
	terms := domain.LoanTerms{Principal: d("25000"), AnnualRate: d("0.089"), TermYears: 5}
	summary, err := SummarizeLoan(terms)
	require.NoError(t, err)

	assert.Equal(t, terms, summary.Terms)
	assert.Equal(t, 60, summary.Payments)
	assert.True(t, summary.TotalPaid.Equal(terms.Principal.Add(summary.TotalInterest)))
	assert.True(t, summary.TotalInterest.IsPositive())

	payment, err := LoanPayment(terms.Principal, terms.AnnualRate, terms.TermYears)
	require.NoError(t, err)
	assert.True(t, summary.MonthlyPayment.Equal(payment))
}
