package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdata(name string) string {
	return filepath.Join("..", "..", "internal", "config", "testdata", name)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func executeJSON(t *testing.T, args ...string) output.Report {
	t.Helper()
	out, err := execute(t, append(args, "--format", "json")...)
	require.NoError(t, err)

	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	return report
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s: want %s, got %s", msg, want, got)
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "pwp", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"tax", "optimize", "compare", "loan", "project", "networth", "drawdown", "sensitivity", "plan", "batch", "rules", "tvm", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestTaxCommand(t *testing.T) {
	report := executeJSON(t, "tax", "--gross", "90000", "--tax-year", "2024-25")
	require.NotNil(t, report.Tax)
	assert.Equal(t, "2024-25", report.Tax.TaxYear)
	assertMoney(t, "19588", report.Tax.TotalTax, "total tax")

	report = executeJSON(t, "tax", "--gross", "90000", "--deduction", "Tools:work_related=5000", "--tax-year", "2024-25")
	assertMoney(t, "17988", report.Tax.TotalTax, "total tax after deduction")
	assertMoney(t, "5000", report.Tax.Breakdown.Deductions, "deductions")
}

func TestTaxCommand_Console(t *testing.T) {
	out, err := execute(t, "tax", "--gross", "90000", "--tax-year", "2024-25")
	require.NoError(t, err)
	assert.Contains(t, out, "TAX ESTIMATE")
	assert.Contains(t, out, "INCOME TAX 2024-25")
	assert.Contains(t, out, "Total tax:")
}

func TestTaxCommand_Errors(t *testing.T) {
	_, err := execute(t, "tax", "--gross", "-5", "--tax-year", "2024-25")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "tax", "--gross", "1000", "--tax-year", "1999-00")
	assert.Error(t, err)

	_, err = execute(t, "tax", "--gross", "1000", "--tax-year", "2024-25", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	_, err = execute(t, "tax", "--gross", "abc")
	assert.Error(t, err)

	_, err = execute(t, "tax", "--gross", "1000", "--deduction", "work_related")
	assert.Error(t, err)
}

func TestOptimizeCommand(t *testing.T) {
	report := executeJSON(t, "optimize", "--gross", "90000", "--salary-sacrifice", "10000", "--tax-year", "2024-25")
	require.NotNil(t, report.Optimization)
	assertMoney(t, "3200", report.Optimization.Savings, "salary sacrifice saving")
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", testdata("plan.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "TAX STRATEGY COMPARISON")
	assert.Contains(t, out, "Tax Year: 2024-25")
	assert.Contains(t, out, "Salary sacrifice")
	assert.Contains(t, out, "All strategies")

	out, err = execute(t, "compare", testdata("plan.yaml"), "--no-combined", "--format", "csv")
	require.NoError(t, err)
	assert.NotContains(t, out, "All strategies")
	assert.Contains(t, out, "Strategy,Type")

	out, err = execute(t, "compare", testdata("plan.yaml"), "--format", "compact")
	require.NoError(t, err)
	assert.Contains(t, out, "Salary sacrifice: ")
}

func TestLoanCommands(t *testing.T) {
	report := executeJSON(t, "loan", "payment", "--principal", "300000", "--rate", "0.06", "--years", "30")
	require.NotNil(t, report.Loan)
	assertMoney(t, "1798.65", report.Loan.MonthlyPayment, "monthly payment")
	assert.Equal(t, 360, report.Loan.Payments)

	report = executeJSON(t, "loan", "schedule", "--principal", "10000", "--rate", "0.05", "--years", "1")
	assert.Len(t, report.Schedule, 12)
	assert.True(t, report.Schedule[11].RemainingBalance.IsZero())

	report = executeJSON(t, "loan", "balance", "--principal", "10000", "--rate", "0.05", "--years", "2", "--elapsed", "1")
	require.NotNil(t, report.Balance)
	assert.Equal(t, 12, report.Balance.PaymentsMade)
	assert.True(t, report.Balance.RemainingBalance.IsPositive())
	assert.True(t, report.Balance.RemainingBalance.LessThan(decimal.NewFromInt(10000)))
}

func TestProjectionCommands(t *testing.T) {
	report := executeJSON(t, "project", "--current-age", "40", "--retirement-age", "45",
		"--savings", "10000", "--monthly", "500", "--return", "0.05", "--inflation", "0.02")
	assert.Len(t, report.Retirement, 6)
	assert.True(t, report.Retirement[0].Tax.IsZero())

	report = executeJSON(t, "project", "--plan", testdata("plan.yaml"))
	assert.Len(t, report.Retirement, 21)
	assert.True(t, report.Retirement[0].Tax.IsPositive(), "plan salary adds yearly tax")

	report = executeJSON(t, "networth", testdata("plan.yaml"))
	require.NotNil(t, report.NetWorth)
	assert.Equal(t, 20, report.NetWorth.YearsToRetirement)

	report = executeJSON(t, "drawdown", "--lump-sum", "1000000", "--start-age", "65", "--end-age", "95", "--withdrawal-rate", "0.04")
	require.NotNil(t, report.Drawdown)
	assert.True(t, report.Drawdown.Depleted)
	assert.Equal(t, 90, report.Drawdown.DepletionAge)

	report = executeJSON(t, "sensitivity", testdata("plan.yaml"), "--parameter", "annual_return", "--values", "0.05,0.065,0.08")
	require.NotNil(t, report.Sensitivity)
	assert.Len(t, report.Sensitivity.Results, 3)
}

func TestPlanCommands(t *testing.T) {
	report := executeJSON(t, "plan", testdata("plan.yaml"))
	require.Len(t, report.Plans, 1)
	assert.Equal(t, "Alex Citizen", report.Plans[0].Client.Name)
	assert.Equal(t, "2024-25", report.Plans[0].TaxYear)
	assert.NotEmpty(t, report.Assumptions)

	report = executeJSON(t, "batch", testdata("batch.yaml"), "--concurrency", "2")
	require.Len(t, report.Plans, 2)
	assert.Equal(t, "Jordan", report.Plans[0].Client.Name)
	assert.Equal(t, "2024-25", report.Plans[0].TaxYear)
	assert.Equal(t, "Casey", report.Plans[1].Client.Name)
	assert.Equal(t, "2023-24", report.Plans[1].TaxYear)

	report = executeJSON(t, "batch", testdata("batch.yaml"), "--tax-year", "2024-25")
	require.Len(t, report.Plans, 2)
	assert.Equal(t, "2024-25", report.Plans[1].TaxYear, "configured year overrides the plan's")
}

func TestRulesCommands(t *testing.T) {
	report := executeJSON(t, "rules", "list")
	assert.Equal(t, []string{"2023-24", "2024-25"}, report.RuleYears)

	report = executeJSON(t, "rules", "show", "2023-24")
	require.NotNil(t, report.Rules)
	assert.Equal(t, "2023-24", report.Rules.TaxYear)

	report = executeJSON(t, "rules", "show", "latest")
	require.NotNil(t, report.Rules)
	assert.Equal(t, "2024-25", report.Rules.TaxYear)

	report = executeJSON(t, "rules", "list", "--rules", testdata("rules_2025_26.yaml"))
	assert.Equal(t, []string{"2023-24", "2024-25", "2025-26"}, report.RuleYears)

	_, err := execute(t, "rules", "list", "--rules", testdata("rules_broken.yaml"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	report = executeJSON(t, "rules", "show", "latest", "--rules", testdata("rules_2025_26.yaml"))
	require.NotNil(t, report.Rules)
	assert.Equal(t, "2025-26", report.Rules.TaxYear)
}

func TestTimeValueCommands(t *testing.T) {
	report := executeJSON(t, "tvm", "pv", "--amount", "19671.51", "--rate", "0.07", "--years", "10")
	require.NotNil(t, report.TimeValue)
	assert.Equal(t, "present_value", report.TimeValue.Operation)
	assertMoney(t, "10000", report.TimeValue.Result, "present value")

	report = executeJSON(t, "tvm", "fv", "--amount", "10000", "--rate", "0.07", "--years", "10")
	assertMoney(t, "19671.51", report.TimeValue.Result, "future value")

	report = executeJSON(t, "tvm", "annuity", "--amount", "100", "--rate", "0", "--years", "10")
	assertMoney(t, "12000", report.TimeValue.Result, "zero-rate annuity")

	report = executeJSON(t, "tvm", "real", "--amount", "10000", "--rate", "0", "--years", "5")
	assertMoney(t, "10000", report.TimeValue.Result, "no inflation")

	out, err := execute(t, "tvm", "pv", "--amount", "19671.51", "--rate", "0.07")
	require.NoError(t, err)
	assert.Contains(t, out, "Present value")

	_, err = execute(t, "tvm", "pv", "--amount", "-1", "--rate", "0.07")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOutputFormats(t *testing.T) {
	out, err := execute(t, "rules", "list", "-f", "json-compact")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"), "compact JSON is one line")
	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"2023-24", "2024-25"}, report.RuleYears)

	out, err = execute(t, "rules", "list", "-f", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-25")

	root := newRootCmd()
	usage := root.PersistentFlags().Lookup("format").Usage
	assert.Contains(t, usage, "json-compact")
	assert.Contains(t, usage, "yml")
}

func TestOutputDir(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "tax", "--gross", "90000", "--tax-year", "2024-25", "--output-dir", dir, "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	var report output.Report
	require.NoError(t, json.Unmarshal(data, &report))
	require.NotNil(t, report.Tax)
	assertMoney(t, "19588", report.Tax.TotalTax, "saved tax")

	t.Setenv("PWP_OUTPUT_DIR", filepath.Join(dir, "missing"))
	_, err = execute(t, "rules", "list")
	assert.Error(t, err)
}

func TestSettingsFile(t *testing.T) {
	out, err := execute(t, "rules", "list", "--config", testdata("settings.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Tax Year\n2023-24\n2024-25\n", "settings.yaml selects csv output")

	t.Setenv("PWP_OUTPUT_FORMAT", "yaml")
	out, err = execute(t, "rules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ruleYears:")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pwp dev (commit none, built unknown)")
}
