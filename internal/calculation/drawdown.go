package calculation

import (
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectDrawdown draws an inflation-indexed income from lumpSum starting at
// startAge. The first withdrawal is lumpSum x WithdrawalRate and rises with
// InflationRate each year; the remainder earns SuperReturnRate. The
// projection stops at endAge or once the balance is exhausted.
func ProjectDrawdown(lumpSum decimal.Decimal, assumptions domain.ProjectionAssumptions, startAge, endAge int) (*domain.DrawdownProjection, error) {
	if err := requireNonNegative("lump_sum", lumpSum); err != nil {
		return nil, err
	}
	if startAge < 0 {
		return nil, domain.InvalidInt("start_age", "must be >= 0", startAge)
	}
	if endAge <= startAge {
		return nil, domain.InvalidInt("end_age", fmt.Sprintf("must be greater than start age %d", startAge), endAge)
	}
	if err := requireIntRange("drawdown_years", endAge-startAge, 1, MaxProjectionYears); err != nil {
		return nil, err
	}
	if err := ValidateAssumptions(assumptions); err != nil {
		return nil, err
	}

	initial, err := SafeWithdrawal(lumpSum, assumptions.WithdrawalRate)
	if err != nil {
		return nil, err
	}

	result := &domain.DrawdownProjection{
		InitialBalance: lumpSum,
		TotalWithdrawn: decimal.Zero,
	}
	balance := lumpSum
	for year := 0; startAge+year < endAge; year++ {
		age := startAge + year
		if !balance.IsPositive() {
			result.Depleted = true
			result.DepletionAge = age
			break
		}

		target := roundMoney(initial.Mul(growthFactor(assumptions.InflationRate, float64(year))))
		withdrawal := decimal.Min(target, balance)
		remaining := balance.Sub(withdrawal)
		growth := roundMoney(remaining.Mul(assumptions.SuperReturnRate))

		result.Years = append(result.Years, domain.DrawdownYear{
			Age:              age,
			Year:             year,
			BeginningBalance: balance,
			Withdrawal:       withdrawal,
			InvestmentReturn: growth,
			EndingBalance:    remaining.Add(growth),
		})
		result.TotalWithdrawn = result.TotalWithdrawn.Add(withdrawal)
		if withdrawal.Equal(target) && target.IsPositive() {
			result.LongevityYears++
		}
		balance = remaining.Add(growth)
	}
	if !result.Depleted && !balance.IsPositive() {
		result.Depleted = true
		result.DepletionAge = endAge
	}
	result.FinalBalance = balance
	return result, nil
}
