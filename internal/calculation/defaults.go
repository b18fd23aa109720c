package calculation

import (
	"math"
	"strconv"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Default growth rates for asset classes that have no caller-supplied
// assumption. These are the only definitions; nothing else hard-codes them.
var (
	DefaultOtherGrowthRate = decimal.RequireFromString("0.03")
	DefaultCashRate        = decimal.RequireFromString("0.025")
)

const (
	MonthsPerYear      = 12
	WeeksPerYear       = 52
	MaxProjectionYears = 100
	MinLoanTermYears   = 1
	MaxLoanTermYears   = 50
	MaxPaymentsPerYear = 365
)

// MaxAssumptionRate bounds every ProjectionAssumptions ratio.
var MaxAssumptionRate = decimal.RequireFromString("0.5")

var (
	one     = decimal.NewFromInt(1)
	negOne  = decimal.NewFromInt(-1)
	twelve  = decimal.NewFromInt(MonthsPerYear)
	cent    = decimal.RequireFromString("0.01")
	hundred = decimal.NewFromInt(100)
)

// roundMoney rounds to cents.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// roundRatio keeps derived ratios (average rates, percentage changes) readable.
func roundRatio(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

// factorDigits is the significant-digit precision kept while raising
// growth factors to a power.
const factorDigits = 34

// growthFactor returns (1+rate)^periods. Whole periods are raised by
// squaring in decimal, so a tiny positive rate still gives a factor above
// one; fractional periods fall back to float64.
func growthFactor(rate decimal.Decimal, periods float64) decimal.Decimal {
	n := int64(periods)
	if float64(n) != periods || n < 0 {
		return decimal.NewFromFloat(math.Pow(1+rate.InexactFloat64(), periods))
	}
	base := one.Add(rate)
	result := one
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = roundSignificant(result.Mul(base), factorDigits)
		}
		base = roundSignificant(base.Mul(base), factorDigits)
	}
	return result
}

func roundSignificant(d decimal.Decimal, digits int) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	return d.Round(int32(digits-d.NumDigits()) - d.Exponent())
}

// CashRate resolves the cash compounding rate for the given assumptions.
func CashRate(a domain.ProjectionAssumptions) decimal.Decimal {
	if a.CashRatePolicy == domain.CashRateAssumption {
		return a.SavingsRate
	}
	return DefaultCashRate
}

// ValidateAssumptions checks every ratio is within [0, MaxAssumptionRate] and
// the cash-rate policy is known.
func ValidateAssumptions(a domain.ProjectionAssumptions) error {
	rates := []struct {
		field string
		value decimal.Decimal
	}{
		{"assumptions.inflation_rate", a.InflationRate},
		{"assumptions.salary_growth_rate", a.SalaryGrowthRate},
		{"assumptions.share_return_rate", a.ShareReturnRate},
		{"assumptions.property_growth_rate", a.PropertyGrowthRate},
		{"assumptions.savings_rate", a.SavingsRate},
		{"assumptions.super_return_rate", a.SuperReturnRate},
		{"assumptions.withdrawal_rate", a.WithdrawalRate},
		{"assumptions.rent_growth_rate", a.RentGrowthRate},
	}
	for _, r := range rates {
		if r.value.IsNegative() || r.value.GreaterThan(MaxAssumptionRate) {
			return domain.InvalidDecimal(r.field, "must be within [0, 0.5]", r.value)
		}
	}
	switch a.CashRatePolicy {
	case "", domain.CashRateFixed, domain.CashRateAssumption:
	default:
		return &domain.InvalidInputError{
			Field:      "assumptions.cash_rate_policy",
			Constraint: `must be "fixed" or "assumption"`,
			Value:      string(a.CashRatePolicy),
		}
	}
	return nil
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.InvalidDecimal(field, "must be >= 0", v)
	}
	return nil
}

func requireRange(field string, v, lo, hi decimal.Decimal) error {
	if v.LessThan(lo) || v.GreaterThan(hi) {
		return domain.InvalidDecimal(field, "must be within ["+lo.String()+", "+hi.String()+"]", v)
	}
	return nil
}

func requireIntRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return domain.InvalidInt(field, "must be within ["+strconv.Itoa(lo)+", "+strconv.Itoa(hi)+"]", v)
	}
	return nil
}

func requireTable(table *domain.TaxRuleTable) error {
	if table == nil {
		return domain.NewInvalidInputError("rule_table", "must not be nil")
	}
	return nil
}
