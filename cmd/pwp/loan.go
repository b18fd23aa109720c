package main

import (
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/calculation"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func registerLoanFlags(fs *pflag.FlagSet, terms *domain.LoanTerms) {
	fs.Var(decimalValue{&terms.Principal}, "principal", "amount borrowed")
	fs.Var(decimalValue{&terms.AnnualRate}, "rate", "annual interest rate as a decimal, e.g. 0.062")
	fs.IntVar(&terms.TermYears, "years", 30, "loan term in years")
}

func (a *app) loanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan repayment calculations",
	}

	var payTerms domain.LoanTerms
	payment := &cobra.Command{
		Use:     "payment",
		Short:   "Monthly repayment and lifetime interest",
		Example: "  pwp loan payment --principal 600000 --rate 0.0614 --years 30",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := calculation.SummarizeLoan(payTerms)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{Title: "Loan", Loan: summary})
		},
	}
	registerLoanFlags(payment.Flags(), &payTerms)

	var schedTerms domain.LoanTerms
	schedule := &cobra.Command{
		Use:   "schedule",
		Short: "Full monthly amortization schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := calculation.SummarizeLoan(schedTerms)
			if err != nil {
				return err
			}
			entries, err := calculation.AmortizationSchedule(schedTerms.Principal, schedTerms.AnnualRate, schedTerms.TermYears)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{Title: "Amortization", Loan: summary, Schedule: entries})
		},
	}
	registerLoanFlags(schedule.Flags(), &schedTerms)

	var (
		balTerms domain.LoanTerms
		elapsed  int
	)
	balance := &cobra.Command{
		Use:   "balance",
		Short: "Outstanding balance after a number of years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			remaining, err := calculation.RemainingLoanBalance(balTerms.Principal, balTerms.AnnualRate, balTerms.TermYears, elapsed)
			if err != nil {
				return err
			}
			made := elapsed * calculation.MonthsPerYear
			if made < 0 {
				made = 0
			}
			if limit := balTerms.TermYears * calculation.MonthsPerYear; made > limit {
				made = limit
			}
			return a.render(cmd, &output.Report{Title: "Loan balance", Balance: &output.LoanBalance{
				Terms:            balTerms,
				PaymentsMade:     made,
				RemainingBalance: remaining,
			}})
		},
	}
	registerLoanFlags(balance.Flags(), &balTerms)
	balance.Flags().IntVar(&elapsed, "elapsed", 0, "years of repayments already made")

	cmd.AddCommand(payment, schedule, balance)
	return cmd
}
