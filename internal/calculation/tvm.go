package calculation

import (
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// FutureValue returns pv x (1+rate)^years.
func FutureValue(pv, rate decimal.Decimal, years int) (decimal.Decimal, error) {
	if err := validateGrowth(pv, rate, years); err != nil {
		return decimal.Zero, err
	}
	return roundMoney(pv.Mul(growthFactor(rate, float64(years)))), nil
}

// PresentValue discounts fv back over years at rate.
func PresentValue(fv, rate decimal.Decimal, years int) (decimal.Decimal, error) {
	if err := requireNonNegative("future_value", fv); err != nil {
		return decimal.Zero, err
	}
	if !rate.GreaterThan(negOne) || rate.GreaterThan(one) {
		return decimal.Zero, domain.InvalidDecimal("rate", "must be within (-1, 1]", rate)
	}
	if err := requireIntRange("years", years, 0, MaxProjectionYears); err != nil {
		return decimal.Zero, err
	}
	return roundMoney(fv.Div(growthFactor(rate, float64(years)))), nil
}

// FutureValueOfAnnuity compounds a level payment made paymentsPerYear times a
// year at the end of each period.
func FutureValueOfAnnuity(payment, rate decimal.Decimal, years, paymentsPerYear int) (decimal.Decimal, error) {
	if err := validateAnnuity(payment, rate, years, paymentsPerYear); err != nil {
		return decimal.Zero, err
	}
	periods := years * paymentsPerYear
	periodRate := rate.Div(decimal.NewFromInt(int64(paymentsPerYear)))
	if periodRate.IsZero() {
		return roundMoney(payment.Mul(decimal.NewFromInt(int64(periods)))), nil
	}
	factor := growthFactor(periodRate, float64(periods)).Sub(one).Div(periodRate)
	return roundMoney(payment.Mul(factor)), nil
}

// FutureValueOfGrowingAnnuity is FutureValueOfAnnuity with each payment
// escalated by growthRate (annual, spread per period like rate).
func FutureValueOfGrowingAnnuity(initialPayment, rate, growthRate decimal.Decimal, years, paymentsPerYear int) (decimal.Decimal, error) {
	if err := validateAnnuity(initialPayment, rate, years, paymentsPerYear); err != nil {
		return decimal.Zero, err
	}
	if err := requireRange("growth_rate", growthRate, negOne, one); err != nil {
		return decimal.Zero, err
	}

	ppy := decimal.NewFromInt(int64(paymentsPerYear))
	periods := float64(years * paymentsPerYear)
	i := rate.Div(ppy)
	g := growthRate.Div(ppy)

	if i.Equal(g) {
		// n x P x (1+i)^(n-1)
		if periods == 0 {
			return decimal.Zero, nil
		}
		factor := decimal.NewFromFloat(periods).Mul(growthFactor(i, periods-1))
		return roundMoney(initialPayment.Mul(factor)), nil
	}
	factor := growthFactor(i, periods).Sub(growthFactor(g, periods)).Div(i.Sub(g))
	return roundMoney(initialPayment.Mul(factor)), nil
}

// RealValue expresses a future amount in today's money. The amount may be
// negative (a net-worth deficit, for example).
func RealValue(amount, inflationRate decimal.Decimal, years int) (decimal.Decimal, error) {
	if !inflationRate.GreaterThan(negOne) || inflationRate.GreaterThan(one) {
		return decimal.Zero, domain.InvalidDecimal("inflation_rate", "must be within (-1, 1]", inflationRate)
	}
	if err := requireIntRange("years", years, 0, MaxProjectionYears); err != nil {
		return decimal.Zero, err
	}
	return roundMoney(amount.Div(growthFactor(inflationRate, float64(years)))), nil
}

// SafeWithdrawal returns the first-year income a balance supports at rate.
func SafeWithdrawal(balance, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := requireNonNegative("balance", balance); err != nil {
		return decimal.Zero, err
	}
	if err := requireRange("withdrawal_rate", rate, decimal.Zero, one); err != nil {
		return decimal.Zero, err
	}
	return roundMoney(balance.Mul(rate)), nil
}

func validateGrowth(pv, rate decimal.Decimal, years int) error {
	if err := requireNonNegative("present_value", pv); err != nil {
		return err
	}
	if err := requireRange("rate", rate, negOne, one); err != nil {
		return err
	}
	return requireIntRange("years", years, 0, MaxProjectionYears)
}

func validateAnnuity(payment, rate decimal.Decimal, years, paymentsPerYear int) error {
	if err := requireNonNegative("payment", payment); err != nil {
		return err
	}
	if err := requireRange("rate", rate, negOne, one); err != nil {
		return err
	}
	if err := requireIntRange("years", years, 0, MaxProjectionYears); err != nil {
		return err
	}
	return requireIntRange("payments_per_year", paymentsPerYear, 1, MaxPaymentsPerYear)
}
