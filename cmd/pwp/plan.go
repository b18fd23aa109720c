package main

import (
	"context"
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/calculation"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(a.logger.Sugar())
	return engine
}

func (a *app) planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [plan-file]",
		Short: "Run the full plan: tax, strategies, retirement, net worth and drawdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.parser.LoadPlan(args[0])
			if err != nil {
				return err
			}
			table, err := a.ruleTable(plan.TaxYear)
			if err != nil {
				return err
			}

			report, err := a.engine().RunPlan(cmd.Context(), plan, table)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{
				Title:       "Plan: " + plan.Client.Name,
				Plans:       []*domain.PlanReport{report},
				Assumptions: output.DefaultAssumptions,
			})
		},
	}
}

func (a *app) batchCmd() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch [batch-file]",
		Short: "Run many client plans in parallel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := a.parser.LoadBatch(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("concurrency") {
				concurrency = a.settings.Concurrency
			}

			reports, err := a.runBatchByYear(cmd.Context(), plans, concurrency)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{
				Title:       fmt.Sprintf("Batch: %d plans", len(reports)),
				Plans:       reports,
				Assumptions: output.DefaultAssumptions,
			})
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "plans evaluated at once (0 for unlimited)")
	return cmd
}

// runBatchByYear groups plans by the rule table they resolve to and runs each
// group through RunBatch. Reports keep the input order.
func (a *app) runBatchByYear(ctx context.Context, plans []*domain.ClientPlan, concurrency int) ([]*domain.PlanReport, error) {
	type group struct {
		table   *domain.TaxRuleTable
		indexes []int
		plans   []*domain.ClientPlan
	}

	var order []string
	groups := make(map[string]*group)
	for i, plan := range plans {
		table, err := a.ruleTable(plan.TaxYear)
		if err != nil {
			return nil, fmt.Errorf("plan %d (%s): %w", i, plan.Client.Name, err)
		}
		g, ok := groups[table.TaxYear]
		if !ok {
			g = &group{table: table}
			groups[table.TaxYear] = g
			order = append(order, table.TaxYear)
		}
		g.indexes = append(g.indexes, i)
		g.plans = append(g.plans, plan)
	}

	engine := a.engine()
	reports := make([]*domain.PlanReport, len(plans))
	for _, year := range order {
		g := groups[year]
		results, err := engine.RunBatch(ctx, g.plans, g.table, concurrency)
		if err != nil {
			return nil, fmt.Errorf("tax year %s: %w", year, err)
		}
		for j, r := range results {
			reports[g.indexes[j]] = r
		}
	}
	return reports, nil
}
