package calculation

import (
	"testing"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRetirementInput() domain.RetirementInput {
	return domain.RetirementInput{
		CurrentAge:          30,
		RetirementAge:       33,
		CurrentSavings:      d("10000"),
		MonthlyContribution: d("100"),
		AnnualReturn:        d("0.10"),
		InflationRate:       decimal.Zero,
	}
}

func TestProjectRetirement_YearByYear(t *testing.T) {
	projection, err := ProjectRetirement(baseRetirementInput(), nil)
	require.NoError(t, err)
	require.Len(t, projection, 4)

	opening := projection[0]
	assert.Equal(t, 30, opening.Age)
	assert.Equal(t, 0, opening.Year)
	assertMoney(t, "10000", opening.BeginningBalance, "opening balance")
	assertMoney(t, "10000", opening.EndingBalance, "opening ending balance")
	assert.True(t, opening.Contributions.IsZero())
	assert.True(t, opening.InvestmentReturn.IsZero())

	expected := []struct {
		beginning, ret, ending, totalReturns string
	}{
		{"10000", "1120", "12320", "1120"},
		{"12320", "1352", "14872", "2472"},
		{"14872", "1607.20", "17679.20", "4079.20"},
	}
	for i, want := range expected {
		p := projection[i+1]
		assert.Equal(t, 31+i, p.Age)
		assertMoney(t, "1200", p.Contributions, "contributions")
		assertMoney(t, want.beginning, p.BeginningBalance, "beginning")
		assertMoney(t, want.ret, p.InvestmentReturn, "return")
		assertMoney(t, want.ending, p.EndingBalance, "ending")
		assertMoney(t, want.totalReturns, p.TotalReturns, "total returns")
		assert.True(t, p.RealValue.Equal(p.EndingBalance), "no inflation means real equals nominal")
	}
	assertMoney(t, "3600", projection[3].TotalContributions, "total contributions")
}

func TestProjectRetirement_Properties(t *testing.T) {
	inputs := []domain.RetirementInput{
		baseRetirementInput(),
		{CurrentAge: 25, RetirementAge: 67, CurrentSavings: d("35000"), MonthlyContribution: d("850"), AnnualReturn: d("0.065"), InflationRate: d("0.025")},
		{CurrentAge: 59, RetirementAge: 60, CurrentSavings: decimal.Zero, MonthlyContribution: decimal.Zero, AnnualReturn: decimal.Zero, InflationRate: d("0.03")},
	}
	for _, in := range inputs {
		projection, err := ProjectRetirement(in, nil)
		require.NoError(t, err)
		require.Len(t, projection, in.RetirementAge-in.CurrentAge+1)

		assert.True(t, projection[0].BeginningBalance.Equal(in.CurrentSavings))
		assert.True(t, projection[0].Contributions.IsZero())

		for i := 1; i < len(projection); i++ {
			prev, cur := projection[i-1], projection[i]
			assert.True(t, cur.BeginningBalance.Equal(prev.EndingBalance))
			assert.True(t, cur.EndingBalance.Equal(cur.BeginningBalance.Add(cur.Contributions).Add(cur.InvestmentReturn)))
			assert.True(t, cur.TotalContributions.Equal(prev.TotalContributions.Add(cur.Contributions)))
			assert.True(t, cur.RealValue.LessThanOrEqual(cur.EndingBalance))
		}
	}
}

func TestProjectRetirement_Inflation(t *testing.T) {
	in := baseRetirementInput()
	in.InflationRate = d("0.02")

	projection, err := ProjectRetirement(in, nil)
	require.NoError(t, err)
	assertMoney(t, "12078.43", projection[1].RealValue, "real value after one year")
	assertMoney(t, "10000", projection[0].RealValue, "real value today")
}

func TestProjectRetirement_Salary(t *testing.T) {
	in := baseRetirementInput()
	in.AnnualSalary = d("60000")

	projection, err := ProjectRetirement(in, table2024())
	require.NoError(t, err)
	for _, p := range projection {
		assertMoney(t, "60000", p.Salary, "salary")
		assertMoney(t, "9988", p.Tax, "tax")
		assertMoney(t, "50012", p.AfterTaxIncome, "after tax")
	}

	in.SalaryGrowthRate = d("0.03")
	projection, err = ProjectRetirement(in, table2024())
	require.NoError(t, err)
	assertMoney(t, "61800", projection[1].Salary, "grown salary")

	_, err = ProjectRetirement(in, nil)
	requireInvalid(t, err, "rule_table")
}

func TestProjectRetirement_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.RetirementInput)
		field  string
	}{
		{"retirement before current", func(in *domain.RetirementInput) { in.RetirementAge = 29 }, "retirement_age"},
		{"retirement equals current", func(in *domain.RetirementInput) { in.RetirementAge = 30 }, "retirement_age"},
		{"negative age", func(in *domain.RetirementInput) { in.CurrentAge = -1 }, "current_age"},
		{"too long", func(in *domain.RetirementInput) { in.RetirementAge = 131 }, "years_to_retirement"},
		{"negative savings", func(in *domain.RetirementInput) { in.CurrentSavings = d("-1") }, "current_savings"},
		{"negative contribution", func(in *domain.RetirementInput) { in.MonthlyContribution = d("-1") }, "monthly_contribution"},
		{"return out of range", func(in *domain.RetirementInput) { in.AnnualReturn = d("2") }, "annual_return"},
		{"inflation out of range", func(in *domain.RetirementInput) { in.InflationRate = d("-1") }, "inflation_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseRetirementInput()
			tt.mutate(&in)
			projection, err := ProjectRetirement(in, nil)
			assert.Nil(t, projection)
			requireInvalid(t, err, tt.field)
		})
	}
}
