package calculation

import (
	"context"
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CalculationEngine runs complete client plans against a caller-selected rule
// table. It holds no state besides its logger, so one engine can serve many
// goroutines.
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates an engine that logs nowhere.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger replaces the logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
}

// RunPlan evaluates tax (with investment-property losses negatively geared),
// the combined strategy comparison, the retirement accumulation, net worth at
// retirement and, when a life expectancy is given, the drawdown.
func (ce *CalculationEngine) RunPlan(ctx context.Context, plan *domain.ClientPlan, table *domain.TaxRuleTable) (*domain.PlanReport, error) {
	if plan == nil {
		return nil, domain.NewInvalidInputError("plan", "must not be nil")
	}
	if err := requireTable(table); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ce.Logger.Debugf("op=run_plan client=%q tax_year=%s rules=%s", plan.Client.Name, table.TaxYear, table.Version)

	report := &domain.PlanReport{
		Client:      plan.Client,
		TaxYear:     table.TaxYear,
		RuleVersion: table.Version,
	}

	income := plan.Income
	for i, p := range plan.InvestmentProperties {
		cf, err := InvestmentPropertyCashFlow(p)
		if err != nil {
			return nil, fmt.Errorf("investment_properties[%d]: %w", i, err)
		}
		report.PropertyCashFlows = append(report.PropertyCashFlows, *cf)
		income.NegativeGearingLoss = income.NegativeGearingLoss.Add(cf.NegativeGearingLoss)
	}

	tax, err := CalculateTax(income, table)
	if err != nil {
		return nil, fmt.Errorf("tax: %w", err)
	}
	report.Tax = tax
	ce.Logger.Debugf("op=run_plan client=%q total_tax=%s marginal_rate=%s", plan.Client.Name, tax.TotalTax.StringFixed(2), tax.MarginalRate.String())

	if len(plan.Strategies) > 0 {
		combined := domain.CombineStrategies(plan.Strategies)
		cmp, err := CompareOptimization(income, combined, table)
		if err != nil {
			return nil, fmt.Errorf("optimization: %w", err)
		}
		report.Optimization = cmp
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	retirement, err := ProjectRetirement(plan.RetirementInput(), table)
	if err != nil {
		return nil, fmt.Errorf("retirement projection: %w", err)
	}
	report.Retirement = retirement

	netWorth, err := ProjectNetWorth(plan.NetWorthInput(), plan.Assumptions)
	if err != nil {
		return nil, fmt.Errorf("net worth projection: %w", err)
	}
	report.NetWorth = netWorth

	if plan.Client.LifeExpectancy > plan.Client.RetirementAge {
		drawdown, err := ProjectDrawdown(netWorth.RetirementLumpSum, plan.Assumptions, plan.Client.RetirementAge, plan.Client.LifeExpectancy)
		if err != nil {
			return nil, fmt.Errorf("drawdown: %w", err)
		}
		report.Drawdown = drawdown
		if drawdown.Depleted {
			ce.Logger.Warnf("op=run_plan client=%q retirement funds depleted at age %d", plan.Client.Name, drawdown.DepletionAge)
		}
	}

	ce.Logger.Infof("op=run_plan client=%q net_worth_at_retirement=%s", plan.Client.Name, netWorth.NetWorthAtRetirement.StringFixed(2))
	return report, nil
}

// RunBatch runs independent plans in parallel, at most concurrency at a time
// (unlimited when concurrency <= 0). Reports come back in input order. The
// first failure cancels the plans that have not started.
func (ce *CalculationEngine) RunBatch(ctx context.Context, plans []*domain.ClientPlan, table *domain.TaxRuleTable, concurrency int) ([]*domain.PlanReport, error) {
	if err := requireTable(table); err != nil {
		return nil, err
	}

	reports := make([]*domain.PlanReport, len(plans))
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, plan := range plans {
		i, plan := i, plan
		g.Go(func() error {
			report, err := ce.RunPlan(gctx, plan, table)
			if err != nil {
				ce.Logger.Errorf("op=run_batch index=%d failed: %v", i, err)
				return fmt.Errorf("plan %d: %w", i, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ce.Logger.Infof("op=run_batch plans=%d", len(plans))
	return reports, nil
}
