package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes one header-plus-rows block per populated section,
// separated by blank lines.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	var blocks [][][]string
	if report.Tax != nil {
		blocks = append(blocks, taxRows(report.Tax))
	}
	if report.Optimization != nil {
		blocks = append(blocks, optimizationRows(report.Optimization))
	}
	if report.Loan != nil {
		blocks = append(blocks, loanRows(report.Loan))
	}
	if len(report.Schedule) > 0 {
		blocks = append(blocks, scheduleRows(report.Schedule))
	}
	if report.Balance != nil {
		b := report.Balance
		blocks = append(blocks, [][]string{
			{"Principal", "Annual Rate", "Term Years", "Payments Made", "Remaining Balance"},
			{money(b.Terms.Principal), ratio(b.Terms.AnnualRate), strconv.Itoa(b.Terms.TermYears), strconv.Itoa(b.PaymentsMade), money(b.RemainingBalance)},
		})
	}
	if report.TimeValue != nil {
		tv := report.TimeValue
		blocks = append(blocks, [][]string{
			{"Operation", "Amount", "Annual Rate", "Years", "Result"},
			{tv.Operation, money(tv.Amount), ratio(tv.Rate), strconv.Itoa(tv.Years), money(tv.Result)},
		})
	}
	if len(report.Retirement) > 0 {
		blocks = append(blocks, retirementRows(report.Retirement))
	}
	if report.NetWorth != nil {
		blocks = append(blocks, netWorthRows(report.NetWorth))
	}
	if report.Drawdown != nil {
		blocks = append(blocks, drawdownRows(report.Drawdown))
	}
	if report.Sensitivity != nil {
		blocks = append(blocks, sensitivityRows(report.Sensitivity))
	}
	if len(report.Plans) > 0 {
		blocks = append(blocks, planRows(report.Plans))
	}
	if report.Rules != nil {
		blocks = append(blocks, bracketRows(report.Rules))
	}
	if len(report.RuleYears) > 0 {
		rows := [][]string{{"Tax Year"}}
		for _, y := range report.RuleYears {
			rows = append(rows, []string{y})
		}
		blocks = append(blocks, rows)
	}

	for i, block := range blocks {
		if i > 0 {
			if err := w.Write([]string{}); err != nil {
				return nil, err
			}
		}
		if err := w.WriteAll(block); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func ratio(d decimal.Decimal) string { return d.StringFixed(4) }

func taxRows(r *domain.TaxCalculationResult) [][]string {
	return [][]string{
		{"Tax Year", "Gross Income", "Taxable Income", "Income Tax", "Levy", "Debt Repayment", "Total Tax", "After Tax Income", "Marginal Rate", "Average Rate"},
		{r.TaxYear, money(r.GrossIncome), money(r.TaxableIncome), money(r.IncomeTax), money(r.LevyAmount), money(r.DebtRepayment),
			money(r.TotalTax), money(r.AfterTaxIncome), ratio(r.MarginalRate), ratio(r.AverageRate)},
	}
}

func optimizationRows(o *domain.OptimizationComparison) [][]string {
	return [][]string{
		{"Scenario", "Taxable Income", "Total Tax", "After Tax Income", "Savings"},
		{"current", money(o.Current.TaxableIncome), money(o.Current.TotalTax), money(o.Current.AfterTaxIncome), money(decimal.Zero)},
		{"optimized", money(o.Optimized.TaxableIncome), money(o.Optimized.TotalTax), money(o.Optimized.AfterTaxIncome), money(o.Savings)},
	}
}

func loanRows(l *domain.LoanSummary) [][]string {
	return [][]string{
		{"Principal", "Annual Rate", "Term Years", "Monthly Payment", "Payments", "Total Paid", "Total Interest"},
		{money(l.Terms.Principal), ratio(l.Terms.AnnualRate), strconv.Itoa(l.Terms.TermYears), money(l.MonthlyPayment),
			strconv.Itoa(l.Payments), money(l.TotalPaid), money(l.TotalInterest)},
	}
}

func scheduleRows(entries []domain.AmortizationEntry) [][]string {
	rows := [][]string{{"Payment", "Amount", "Principal", "Interest", "Remaining Balance"}}
	for _, e := range entries {
		rows = append(rows, []string{strconv.Itoa(e.PaymentNumber), money(e.Payment), money(e.Principal), money(e.Interest), money(e.RemainingBalance)})
	}
	return rows
}

func retirementRows(years []domain.YearlyProjection) [][]string {
	rows := [][]string{{"Age", "Year", "Contributions", "Beginning Balance", "Investment Return", "Ending Balance",
		"Total Contributions", "Total Returns", "Real Value", "Salary", "Tax", "After Tax Income"}}
	for _, y := range years {
		rows = append(rows, []string{strconv.Itoa(y.Age), strconv.Itoa(y.Year), money(y.Contributions), money(y.BeginningBalance),
			money(y.InvestmentReturn), money(y.EndingBalance), money(y.TotalContributions), money(y.TotalReturns),
			money(y.RealValue), money(y.Salary), money(y.Tax), money(y.AfterTaxIncome)})
	}
	return rows
}

func netWorthRows(n *domain.NetWorthProjection) [][]string {
	rows := [][]string{{"Component", "Kind", "Current Value", "Projected Value"}}
	for _, a := range n.AssetClasses {
		rows = append(rows, []string{string(a.Class), "asset", money(a.CurrentValue), money(a.ProjectedValue)})
	}
	for _, p := range n.InvestmentProperties {
		rows = append(rows, []string{p.Name, "investment_property", money(p.CurrentValue), money(p.ProjectedValue)})
	}
	for _, l := range n.Liabilities {
		rows = append(rows, []string{l.Name, "liability", money(l.CurrentBalance), money(l.RemainingBalance)})
	}
	rows = append(rows,
		[]string{"Retirement lump sum", "superannuation", "", money(n.RetirementLumpSum)},
		[]string{"Net worth", "total", "", money(n.NetWorthAtRetirement)},
		[]string{"Passive income", "annual", "", money(n.PassiveIncome)},
	)
	return rows
}

func drawdownRows(d *domain.DrawdownProjection) [][]string {
	rows := [][]string{{"Age", "Year", "Beginning Balance", "Withdrawal", "Investment Return", "Ending Balance"}}
	for _, y := range d.Years {
		rows = append(rows, []string{strconv.Itoa(y.Age), strconv.Itoa(y.Year), money(y.BeginningBalance), money(y.Withdrawal),
			money(y.InvestmentReturn), money(y.EndingBalance)})
	}
	return rows
}

func sensitivityRows(s *domain.SensitivityAnalysis) [][]string {
	rows := [][]string{{"Parameter", "Value", "Retirement Balance", "Real Value", "Change From Base", "Change %"}}
	for _, r := range s.Results {
		rows = append(rows, []string{string(s.Parameter), r.Value.String(), money(r.RetirementBalance), money(r.RealValue),
			money(r.ChangeFromBase), ratio(r.ChangePct)})
	}
	return rows
}

func planRows(plans []*domain.PlanReport) [][]string {
	rows := [][]string{{"Client", "Tax Year", "Rule Version", "Taxable Income", "Total Tax", "Optimization Savings",
		"Super At Retirement", "Net Worth At Retirement", "Passive Income", "Depleted", "Depletion Age"}}
	for _, p := range plans {
		s := summarizePlan(p)
		rows = append(rows, []string{p.Client.Name, p.TaxYear, p.RuleVersion, money(s.taxable), money(s.totalTax), money(s.savings),
			money(s.lumpSum), money(s.netWorth), money(s.passive), strconv.FormatBool(s.depleted), strconv.Itoa(s.depletionAge)})
	}
	return rows
}

func bracketRows(t *domain.TaxRuleTable) [][]string {
	rows := [][]string{{"Min", "Max", "Rate", "Base Amount"}}
	for _, b := range t.Brackets {
		upper := ""
		if b.Max != nil {
			upper = money(*b.Max)
		}
		rows = append(rows, []string{money(b.Min), upper, ratio(b.Rate), money(b.BaseAmount)})
	}
	return rows
}

type planSummary struct {
	taxable, totalTax, savings decimal.Decimal
	lumpSum, netWorth, passive decimal.Decimal
	depleted                   bool
	depletionAge               int
}

func summarizePlan(p *domain.PlanReport) planSummary {
	var s planSummary
	if p.Tax != nil {
		s.taxable = p.Tax.TaxableIncome
		s.totalTax = p.Tax.TotalTax
	}
	if p.Optimization != nil {
		s.savings = p.Optimization.Savings
	}
	if p.NetWorth != nil {
		s.lumpSum = p.NetWorth.RetirementLumpSum
		s.netWorth = p.NetWorth.NetWorthAtRetirement
		s.passive = p.NetWorth.PassiveIncome
	}
	if p.Drawdown != nil {
		s.depleted = p.Drawdown.Depleted
		s.depletionAge = p.Drawdown.DepletionAge
	}
	return s
}
