package main

import (
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/calculation"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/compare"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// taxInputFlags collects a TaxCalculationInput from an optional file plus
// per-field flag overrides.
type taxInputFlags struct {
	inputFile  string
	deductions []string
	input      domain.TaxCalculationInput
}

func (f *taxInputFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.inputFile, "input", "", "tax input file (YAML); flags override its values")
	fs.Var(decimalValue{&f.input.GrossIncome}, "gross", "gross assessable income")
	fs.StringArrayVar(&f.deductions, "deduction", nil, "deduction as category=amount or name:category=amount (repeatable)")
	fs.Var(decimalValue{&f.input.NegativeGearingLoss}, "ng-loss", "net rental loss to offset")
	fs.Var(decimalValue{&f.input.CapitalGains}, "capital-gains", "gross capital gains")
	fs.Var(decimalValue{&f.input.FrankedDividends}, "franked", "fully franked dividends received")
	fs.Var(decimalValue{&f.input.OutstandingDebtBalance}, "debt-balance", "outstanding study loan balance")
	fs.BoolVar(&f.input.LeviesExempt, "levy-exempt", false, "exempt from the levy")
}

func (f *taxInputFlags) resolve(a *app, fs *pflag.FlagSet) (domain.TaxCalculationInput, error) {
	flagged := f.input
	in := flagged
	if f.inputFile != "" {
		loaded, err := a.parser.LoadTaxInput(f.inputFile)
		if err != nil {
			return in, err
		}
		in = *loaded
		overrides := map[string]func(){
			"gross":         func() { in.GrossIncome = flagged.GrossIncome },
			"ng-loss":       func() { in.NegativeGearingLoss = flagged.NegativeGearingLoss },
			"capital-gains": func() { in.CapitalGains = flagged.CapitalGains },
			"franked":       func() { in.FrankedDividends = flagged.FrankedDividends },
			"debt-balance":  func() { in.OutstandingDebtBalance = flagged.OutstandingDebtBalance },
			"levy-exempt":   func() { in.LeviesExempt = flagged.LeviesExempt },
		}
		for name, apply := range overrides {
			if fs.Changed(name) {
				apply()
			}
		}
	}

	extra, err := parseDeductions(f.deductions)
	if err != nil {
		return in, err
	}
	in.Deductions = append(append([]domain.Deduction(nil), in.Deductions...), extra...)
	return in, nil
}

func (a *app) taxCmd() *cobra.Command {
	var flags taxInputFlags

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Calculate income tax for one year",
		Example: "  pwp tax --gross 95000 --deduction work_related=1200 --franked 3000\n" +
			"  pwp tax --input income.yaml --tax-year 2023-24",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.resolve(a, cmd.Flags())
			if err != nil {
				return err
			}
			table, err := a.ruleTable("")
			if err != nil {
				return err
			}

			result, err := calculation.CalculateTax(input, table)
			if err != nil {
				return err
			}
			a.logger.Sugar().Infof("op=tax tax_year=%s total_tax=%s", table.TaxYear, result.TotalTax.StringFixed(2))
			return a.render(cmd, &output.Report{Title: "Tax estimate", Tax: result})
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func (a *app) optimizeCmd() *cobra.Command {
	var (
		flags  taxInputFlags
		extra  []string
		deltas domain.StrategyDeltas
	)

	cmd := &cobra.Command{
		Use:     "optimize",
		Aliases: []string{"optimise"},
		Short:   "Compare current tax with tax after optimisation strategies",
		Example: "  pwp optimize --gross 120000 --salary-sacrifice 10000 --extra-deduction home_office=2400",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.resolve(a, cmd.Flags())
			if err != nil {
				return err
			}
			deltas.AdditionalDeductions, err = parseDeductions(extra)
			if err != nil {
				return err
			}
			table, err := a.ruleTable("")
			if err != nil {
				return err
			}

			result, err := calculation.CompareOptimization(input, deltas, table)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{Title: "Tax optimisation", Optimization: result})
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringArrayVar(&extra, "extra-deduction", nil, "additional deduction as category=amount (repeatable)")
	cmd.Flags().Var(decimalValue{&deltas.AdditionalNegativeGearingLoss}, "extra-ng-loss", "additional negative gearing loss")
	cmd.Flags().Var(decimalValue{&deltas.SalarySacrifice}, "salary-sacrifice", "salary packaged into super")
	return cmd
}

func (a *app) compareCmd() *cobra.Command {
	var noCombined bool

	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Rank a plan's tax strategies against its current position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.parser.LoadPlan(args[0])
			if err != nil {
				return err
			}
			if len(plan.Strategies) == 0 {
				return fmt.Errorf("plan %s has no strategies to compare", args[0])
			}
			table, err := a.ruleTable(plan.TaxYear)
			if err != nil {
				return err
			}

			engine := compare.NewCompareEngine()
			engine.Logger = a.logger.Sugar()
			compSet, err := engine.CompareStrategies(cmd.Context(), plan.Income, plan.Strategies, table,
				compare.CompareOptions{IncludeCombined: !noCombined, PlanPath: args[0]})
			if err != nil {
				return err
			}

			var out string
			switch a.settings.Output.Format {
			case "console", "table", "text":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			case "json-compact":
				out, err = (&compare.JSONFormatter{}).Format(compSet)
			default:
				return fmt.Errorf("compare does not support output format %q", a.settings.Output.Format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&noCombined, "no-combined", false, "skip the all-strategies alternative")
	return cmd
}
