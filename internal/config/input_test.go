package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func requireInvalid(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var invalid *domain.InvalidInputError
	require.True(t, errors.As(err, &invalid), "should be an InvalidInputError: %v", err)
	assert.Equal(t, field, invalid.Field)
}

func TestInputParser_LoadPlan(t *testing.T) {
	plan, err := NewInputParser().LoadPlan("testdata/plan.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Alex Citizen", plan.Client.Name)
	assert.Equal(t, 65, plan.Client.RetirementAge)
	assert.Equal(t, "2024-25", plan.TaxYear)
	assert.True(t, plan.Income.GrossIncome.Equal(decimal.NewFromInt(90000)))
	require.Len(t, plan.Income.Deductions, 1)
	assert.Equal(t, "work_related", plan.Income.Deductions[0].Category)

	require.Len(t, plan.Assets, 2)
	assert.Equal(t, domain.AssetClassCash, plan.Assets[1].Class)
	require.Len(t, plan.InvestmentProperties, 1)
	assert.True(t, plan.InvestmentProperties[0].InterestRate.Equal(decimal.RequireFromString("0.062")))
	assert.Equal(t, 25, plan.InvestmentProperties[0].LoanTerm)
	assert.Equal(t, domain.CashRateAssumption, plan.Assumptions.CashRatePolicy)

	require.Len(t, plan.Strategies, 2)
	assert.True(t, plan.Strategies[0].Deltas.SalarySacrifice.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "home_office", plan.Strategies[1].Deltas.AdditionalDeductions[0].Category)
}

func TestInputParser_LoadPlan_Errors(t *testing.T) {
	ip := NewInputParser()

	_, err := ip.LoadPlan("testdata/missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ip.LoadPlan(writeFile(t, "bad.yaml", "client: [not, a, map]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	_, err = ip.ParsePlan([]byte("client: {name: A}\ntax_year: '2024-25'\nassets:\n  - {name: Gold, class: bullion, current_value: 1}\n"))
	requireInvalid(t, err, "asset.class")
}

func TestInputParser_ValidatePlan(t *testing.T) {
	valid := func() *domain.ClientPlan {
		return &domain.ClientPlan{
			Client:  domain.ClientProfile{Name: "A", CurrentAge: 40, RetirementAge: 65, LifeExpectancy: 90},
			TaxYear: "2024-25",
		}
	}
	ip := NewInputParser()
	require.NoError(t, ip.ValidatePlan(valid()))

	tests := []struct {
		name   string
		mutate func(*domain.ClientPlan)
		field  string
	}{
		{"missing name", func(p *domain.ClientPlan) { p.Client.Name = "" }, "client.name"},
		{"missing tax year", func(p *domain.ClientPlan) { p.TaxYear = "" }, "tax_year"},
		{"life expectancy before retirement", func(p *domain.ClientPlan) { p.Client.LifeExpectancy = 60 }, "client.life_expectancy"},
		{"assumption out of range", func(p *domain.ClientPlan) { p.Assumptions.InflationRate = decimal.RequireFromString("0.6") }, "assumptions.inflation_rate"},
		{"unnamed strategy", func(p *domain.ClientPlan) { p.Strategies = []domain.NamedStrategy{{}} }, "strategies[0].name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := valid()
			tt.mutate(plan)
			requireInvalid(t, ip.ValidatePlan(plan), tt.field)
		})
	}
}

func TestInputParser_LoadBatch(t *testing.T) {
	ip := NewInputParser()

	plans, err := ip.LoadBatch("testdata/batch.yaml")
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Jordan", plans[0].Client.Name)
	assert.Equal(t, "2023-24", plans[1].TaxYear)

	_, err = ip.LoadBatch(writeFile(t, "empty.yaml", "plans: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no plans")

	_, err = ip.LoadBatch(writeFile(t, "invalid.yaml", "plans:\n  - client: {name: ''}\n    tax_year: '2024-25'\n"))
	requireInvalid(t, err, "client.name")
	assert.Contains(t, err.Error(), "plan 0")
}

func TestInputParser_LoadTaxInput(t *testing.T) {
	path := writeFile(t, "income.yaml", "gross_income: 60000\ncapital_gains: 2000\nlevies_exempt: true\n")

	input, err := NewInputParser().LoadTaxInput(path)
	require.NoError(t, err)
	assert.True(t, input.GrossIncome.Equal(decimal.NewFromInt(60000)))
	assert.True(t, input.CapitalGains.Equal(decimal.NewFromInt(2000)))
	assert.True(t, input.LeviesExempt)
}

func TestInputParser_RejectsUnknownFields(t *testing.T) {
	ip := NewInputParser()

	_, err := ip.LoadTaxInput(writeFile(t, "income.yaml", "gross_incme: 60000\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field gross_incme not found")

	_, err = ip.ParsePlan([]byte("client: {name: A, current_age: 40, retirement_age: 67}\ntax_year: '2024-25'\nincome:\n  gross_incom: 90000\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field gross_incom not found")

	_, err = ip.LoadBatch(writeFile(t, "batch.yaml", "plans:\n  - client: {name: A, retirment_age: 67}\n    tax_year: '2024-25'\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field retirment_age not found")

	_, err = ip.LoadRuleTable(writeFile(t, "rules.yaml", "version: x\ntax_year: '2025-26'\nlevy: {rate: 0.02, treshold: 27222}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field treshold not found")

	input, err := ip.LoadTaxInput(writeFile(t, "blank.yaml", ""))
	require.NoError(t, err)
	assert.True(t, input.GrossIncome.IsZero())
}

func TestInputParser_LoadRuleTable(t *testing.T) {
	ip := NewInputParser()

	table, err := ip.LoadRuleTable("testdata/rules_2025_26.yaml")
	require.NoError(t, err)
	assert.Equal(t, "2025-26", table.TaxYear)
	assert.Equal(t, "AU", table.Jurisdiction)
	assert.Equal(t, 2025, table.EffectiveDate.Year())
	require.Len(t, table.Brackets, 5)
	assert.Nil(t, table.Brackets[4].Max)
	assert.True(t, table.Brackets[1].Max.Equal(decimal.NewFromInt(45000)))

	_, err = ip.LoadRuleTable("testdata/rules_broken.yaml")
	requireInvalid(t, err, "rule_table.brackets[1].base_amount")
	assert.Contains(t, err.Error(), "rules_broken.yaml")
}

func TestInputParser_LoadRegistry(t *testing.T) {
	ip := NewInputParser()

	builtin, err := ip.LoadRegistry("")
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-24", "2024-25"}, builtin.Years())

	extended, err := ip.LoadRegistry("testdata/rules_2025_26.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-24", "2024-25", "2025-26"}, extended.Years())

	table, err := extended.Lookup("2025-26")
	require.NoError(t, err)
	assert.Equal(t, "2025-26.1", table.Version)

	_, err = ip.LoadRegistry("testdata/rules_broken.yaml")
	assert.Error(t, err)
}
