package main

import (
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the tax rule tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the tax years with a rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, &output.Report{Title: "Rule tables", RuleYears: a.registry.Years()})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [tax-year|latest]",
		Short: "Show the brackets, levies and offsets for a tax year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				table *domain.TaxRuleTable
				err   error
			)
			switch {
			case len(args) == 1 && args[0] == "latest":
				table, err = a.registry.Latest()
			case len(args) == 1:
				table, err = a.registry.Lookup(args[0])
			default:
				table, err = a.ruleTable("")
			}
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{Title: "Rules " + table.TaxYear, Rules: table})
		},
	})
	return cmd
}
