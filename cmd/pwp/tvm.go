package main

import (
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/calculation"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) tvmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tvm",
		Short: "Time value of money calculations",
	}

	cmd.AddCommand(
		tvmSubCmd(a, "fv", "Future value of a lump sum", "future_value", "present amount",
			func(amount, rate decimal.Decimal, years, _ int) (decimal.Decimal, error) {
				return calculation.FutureValue(amount, rate, years)
			}),
		tvmSubCmd(a, "pv", "Present value of a future lump sum", "present_value", "future amount",
			func(amount, rate decimal.Decimal, years, _ int) (decimal.Decimal, error) {
				return calculation.PresentValue(amount, rate, years)
			}),
		tvmSubCmd(a, "real", "Value of a future amount in today's dollars", "real_value", "future amount",
			func(amount, rate decimal.Decimal, years, _ int) (decimal.Decimal, error) {
				return calculation.RealValue(amount, rate, years)
			}),
		tvmSubCmd(a, "annuity", "Future value of a level payment stream", "annuity_future_value", "payment each period",
			calculation.FutureValueOfAnnuity),
	)
	return cmd
}

type tvmFunc func(amount, rate decimal.Decimal, years, paymentsPerYear int) (decimal.Decimal, error)

func tvmSubCmd(a *app, use, short, operation, amountHelp string, fn tvmFunc) *cobra.Command {
	var (
		amount, rate   decimal.Decimal
		years, perYear int
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := fn(amount, rate, years, perYear)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{
				Title: short,
				TimeValue: &output.TimeValue{
					Operation: operation,
					Amount:    amount,
					Rate:      rate,
					Years:     years,
					Result:    result,
				},
			})
		},
	}

	fs := cmd.Flags()
	fs.Var(decimalValue{&amount}, "amount", amountHelp)
	if operation == "real_value" {
		fs.Var(decimalValue{&rate}, "rate", "annual inflation as a decimal")
	} else {
		fs.Var(decimalValue{&rate}, "rate", "annual rate as a decimal")
	}
	fs.IntVar(&years, "years", 10, "number of years")
	if operation == "annuity_future_value" {
		fs.IntVar(&perYear, "payments-per-year", 12, "payments made each year")
	}
	return cmd
}
