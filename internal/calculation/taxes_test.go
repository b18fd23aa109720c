package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateIncomeTax(t *testing.T) {
	table := table2024()

	tests := []struct {
		name   string
		income string
		want   string
	}{
		{"no income", "0", "0"},
		{"just under tax-free threshold", "18199.99", "0"},
		{"tax-free threshold", "18200", "0"},
		{"second bracket", "30000", "1888"},
		{"second bracket edge", "45000", "4288"},
		{"third bracket", "60000", "8788"},
		{"third bracket edge", "135000", "31288"},
		{"fourth bracket edge", "190000", "51638"},
		{"top bracket", "200000", "56138"},
		{"cents", "18200.50", "0.08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateIncomeTax(d(tt.income), table)
			require.NoError(t, err)
			assertMoney(t, tt.want, got, tt.income)
		})
	}
}

func TestCalculateIncomeTax_ZeroUpToFirstBracket(t *testing.T) {
	table := table2024()
	limit := *table.Brackets[0].Max

	for income := decimal.Zero; income.LessThanOrEqual(limit); income = income.Add(decimal.NewFromInt(700)) {
		got, err := CalculateIncomeTax(income, table)
		require.NoError(t, err)
		assert.True(t, got.IsZero(), "income %s should be tax free, got %s", income, got)
	}
	got, err := CalculateIncomeTax(limit, table)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestCalculateIncomeTax_ContinuousAtBoundaries(t *testing.T) {
	table := table2024()

	for i := 0; i < len(table.Brackets)-1; i++ {
		edge := *table.Brackets[i].Max
		atEdge, err := CalculateIncomeTax(edge, table)
		require.NoError(t, err)
		assert.True(t, atEdge.Equal(table.Brackets[i+1].BaseAmount),
			"tax at %s should equal next base amount %s, got %s", edge, table.Brackets[i+1].BaseAmount, atEdge)

		justBelow, err := CalculateIncomeTax(edge.Sub(d("0.01")), table)
		require.NoError(t, err)
		assert.True(t, atEdge.Sub(justBelow).LessThanOrEqual(d("0.01")),
			"tax should not jump at %s: %s -> %s", edge, justBelow, atEdge)
	}
}

func TestCalculateIncomeTax_Monotonic(t *testing.T) {
	table := table2024()
	previous := decimal.Zero
	for income := int64(0); income <= 250000; income += 2500 {
		got, err := CalculateIncomeTax(decimal.NewFromInt(income), table)
		require.NoError(t, err)
		assert.True(t, got.GreaterThanOrEqual(previous), "tax fell at %d", income)
		previous = got
	}
}

func TestCalculateIncomeTax_Invalid(t *testing.T) {
	_, err := CalculateIncomeTax(d("-1"), table2024())
	requireInvalid(t, err, "taxable_income")

	_, err = CalculateIncomeTax(d("1000"), nil)
	requireInvalid(t, err, "rule_table")
}

func TestCalculateLevy(t *testing.T) {
	table := table2024()

	tests := []struct {
		name   string
		income string
		exempt bool
		want   string
	}{
		{"below threshold", "20000", false, "0"},
		{"at threshold", "26000", false, "0"},
		{"just above threshold", "26000.01", false, "520"},
		{"typical", "60000", false, "1200"},
		{"exempt", "60000", true, "0"},
		{"negative income", "-100", false, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMoney(t, tt.want, CalculateLevy(d(tt.income), table, tt.exempt), tt.name)
		})
	}
}

func TestCalculateDebtRepayment(t *testing.T) {
	table := table2024()

	tests := []struct {
		name    string
		gross   string
		balance string
		want    string
	}{
		{"no balance", "60000", "0", "0"},
		{"negative balance", "60000", "-10", "0"},
		{"below first threshold", "50000", "20000", "0"},
		{"first band", "60000", "20000", "600"},
		{"capped at balance", "60000", "100", "100"},
		{"top band", "200000", "50000", "20000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMoney(t, tt.want, CalculateDebtRepayment(d(tt.gross), table, d(tt.balance)), tt.name)
		})
	}
}

func TestCalculateDebtRepayment_NeverExceedsBalance(t *testing.T) {
	table := table2024()
	for gross := int64(0); gross <= 300000; gross += 10000 {
		for _, balance := range []string{"1", "500", "5000", "100000"} {
			got := CalculateDebtRepayment(decimal.NewFromInt(gross), table, d(balance))
			assert.True(t, got.LessThanOrEqual(d(balance)), "gross %d balance %s repaid %s", gross, balance, got)
			assert.False(t, got.IsNegative())
		}
	}
}

func TestCalculateMarginalRate(t *testing.T) {
	table := table2024()

	tests := []struct {
		income string
		want   string
	}{
		{"10000", "0"},
		{"20000", "0.16"},
		{"30000", "0.18"},
		{"60000", "0.33"},
		{"200000", "0.57"},
	}
	for _, tt := range tests {
		got := CalculateMarginalRate(d(tt.income), table)
		assert.True(t, d(tt.want).Equal(got), "income %s: want %s, got %s", tt.income, tt.want, got)
	}
}

func TestCalculateAverageRate(t *testing.T) {
	assertMoney(t, "0.1665", CalculateAverageRate(d("9988"), d("60000")), "typical")
	assertMoney(t, "0", CalculateAverageRate(d("100"), decimal.Zero), "no income")
}
