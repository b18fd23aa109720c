package main

import (
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/calculation"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func registerRetirementFlags(fs *pflag.FlagSet, in *domain.RetirementInput) {
	fs.IntVar(&in.CurrentAge, "current-age", 0, "age today")
	fs.IntVar(&in.RetirementAge, "retirement-age", 67, "age at retirement")
	fs.Var(decimalValue{&in.CurrentSavings}, "savings", "current retirement savings balance")
	fs.Var(decimalValue{&in.MonthlyContribution}, "monthly", "monthly contribution")
	fs.Var(decimalValue{&in.AnnualReturn}, "return", "annual investment return as a decimal")
	fs.Var(decimalValue{&in.InflationRate}, "inflation", "annual inflation as a decimal")
	fs.Var(decimalValue{&in.AnnualSalary}, "salary", "current salary; adds yearly tax when set")
	fs.Var(decimalValue{&in.SalaryGrowthRate}, "salary-growth", "annual salary growth as a decimal")
}

func (a *app) projectCmd() *cobra.Command {
	var (
		planFile string
		input    domain.RetirementInput
	)

	cmd := &cobra.Command{
		Use:     "project",
		Short:   "Year-by-year retirement savings projection",
		Example: "  pwp project --current-age 40 --retirement-age 67 --savings 120000 --monthly 1000 --return 0.07 --inflation 0.025",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			planYear := ""
			if planFile != "" {
				plan, err := a.parser.LoadPlan(planFile)
				if err != nil {
					return err
				}
				input = plan.RetirementInput()
				planYear = plan.TaxYear
			}

			var table *domain.TaxRuleTable
			if input.AnnualSalary.IsPositive() {
				t, err := a.ruleTable(planYear)
				if err != nil {
					return err
				}
				table = t
			}

			years, err := calculation.ProjectRetirement(input, table)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{Title: "Retirement projection", Retirement: years})
		},
	}
	cmd.Flags().StringVar(&planFile, "plan", "", "take the inputs from a plan file instead of flags")
	registerRetirementFlags(cmd.Flags(), &input)
	return cmd
}

func (a *app) netWorthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networth [plan-file]",
		Short: "Project assets, properties and liabilities to retirement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.parser.LoadPlan(args[0])
			if err != nil {
				return err
			}
			projection, err := calculation.ProjectNetWorth(plan.NetWorthInput(), plan.Assumptions)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{Title: "Net worth: " + plan.Client.Name, NetWorth: projection})
		},
	}
}

func (a *app) drawdownCmd() *cobra.Command {
	var (
		lumpSum     decimal.Decimal
		assumptions domain.ProjectionAssumptions
		startAge    int
		endAge      int
	)

	cmd := &cobra.Command{
		Use:     "drawdown",
		Short:   "Inflation-indexed withdrawals from a retirement lump sum",
		Example: "  pwp drawdown --lump-sum 900000 --start-age 67 --end-age 95 --return 0.06 --withdrawal-rate 0.045 --inflation 0.025",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projection, err := calculation.ProjectDrawdown(lumpSum, assumptions, startAge, endAge)
			if err != nil {
				return err
			}
			if projection.Depleted {
				a.logger.Sugar().Warnf("op=drawdown depleted_at=%d", projection.DepletionAge)
			}
			return a.render(cmd, &output.Report{Title: "Drawdown", Drawdown: projection})
		},
	}
	fs := cmd.Flags()
	fs.Var(decimalValue{&lumpSum}, "lump-sum", "balance at the start of retirement")
	fs.IntVar(&startAge, "start-age", 67, "age withdrawals begin")
	fs.IntVar(&endAge, "end-age", 95, "age the projection ends")
	fs.Var(decimalValue{&assumptions.SuperReturnRate}, "return", "annual return on the remaining balance")
	fs.Var(decimalValue{&assumptions.WithdrawalRate}, "withdrawal-rate", "first-year withdrawal as a share of the lump sum")
	fs.Var(decimalValue{&assumptions.InflationRate}, "inflation", "annual indexation of withdrawals")
	return cmd
}

func (a *app) sensitivityCmd() *cobra.Command {
	var (
		parameter string
		values    string
	)

	cmd := &cobra.Command{
		Use:     "sensitivity [plan-file]",
		Short:   "Sweep one projection input and compare retirement balances",
		Example: "  pwp sensitivity plan.yaml --parameter annual_return --values 0.05,0.06,0.07,0.08",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.parser.LoadPlan(args[0])
			if err != nil {
				return err
			}
			sweep, err := parseDecimals(values)
			if err != nil {
				return err
			}

			input := plan.RetirementInput()
			var table *domain.TaxRuleTable
			if input.AnnualSalary.IsPositive() {
				if table, err = a.ruleTable(plan.TaxYear); err != nil {
					return err
				}
			}

			analysis, err := calculation.AnalyzeRetirementSensitivity(input, table, domain.SensitivityParameter(parameter), sweep)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{Title: "Sensitivity: " + plan.Client.Name, Sensitivity: analysis})
		},
	}
	cmd.Flags().StringVar(&parameter, "parameter", string(domain.SensitivityAnnualReturn), fmt.Sprintf("input to sweep %v", domain.SensitivityParameters))
	cmd.Flags().StringVar(&values, "values", "", "comma-separated values to try")
	return cmd
}
