package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

const ruleWidth = 72

// ConsoleFormatter renders a human-readable report for the terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	if report.Title != "" {
		fmt.Fprintln(&buf, titleStyle.Render(strings.ToUpper(report.Title)))
		fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	}

	if report.Tax != nil {
		writeTax(&buf, report.Tax)
	}
	if report.Optimization != nil {
		writeOptimization(&buf, report.Optimization)
	}
	if report.Loan != nil {
		writeLoan(&buf, report.Loan)
	}
	if len(report.Schedule) > 0 {
		writeSchedule(&buf, report.Schedule)
	}
	if report.Balance != nil {
		heading(&buf, "Loan Balance")
		kv(&buf, "Principal", FormatCurrency(report.Balance.Terms.Principal))
		kv(&buf, "Payments made", fmt.Sprintf("%d of %d", report.Balance.PaymentsMade, report.Balance.Terms.TermYears*12))
		kv(&buf, "Remaining balance", FormatCurrency(report.Balance.RemainingBalance))
	}
	if report.TimeValue != nil {
		tv := report.TimeValue
		heading(&buf, humanize(tv.Operation))
		kv(&buf, "Amount", FormatCurrency(tv.Amount))
		kv(&buf, "Annual rate", FormatRate(tv.Rate))
		kv(&buf, "Years", fmt.Sprintf("%d", tv.Years))
		kv(&buf, "Result", FormatCurrency(tv.Result))
	}
	if len(report.Retirement) > 0 {
		writeRetirement(&buf, report.Retirement)
	}
	if report.NetWorth != nil {
		writeNetWorth(&buf, report.NetWorth)
	}
	if report.Drawdown != nil {
		writeDrawdown(&buf, report.Drawdown)
	}
	if report.Sensitivity != nil {
		writeSensitivity(&buf, report.Sensitivity)
	}
	switch len(report.Plans) {
	case 0:
	case 1:
		writePlan(&buf, report.Plans[0])
	default:
		writeBatch(&buf, report.Plans)
	}
	if report.Rules != nil {
		writeRules(&buf, report.Rules)
	}
	if len(report.RuleYears) > 0 {
		heading(&buf, "Available Tax Years")
		for _, y := range report.RuleYears {
			fmt.Fprintf(&buf, "• %s\n", y)
		}
	}
	if len(report.Assumptions) > 0 {
		heading(&buf, "Key Assumptions")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", mutedStyle.Render(a))
		}
	}

	return buf.Bytes(), nil
}

func heading(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, headingStyle.Render(strings.ToUpper(title)))
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
}

func kv(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "%-28s %s\n", label+":", value)
}

func writeTax(buf *bytes.Buffer, r *domain.TaxCalculationResult) {
	heading(buf, "Income Tax "+r.TaxYear)
	kv(buf, "Gross income", FormatCurrency(r.GrossIncome))
	if !r.Breakdown.Deductions.IsZero() {
		kv(buf, "Deductions", FormatCurrency(r.Breakdown.Deductions))
	}
	if !r.Breakdown.NegativeGearing.IsZero() {
		kv(buf, "Negative gearing", FormatCurrency(r.Breakdown.NegativeGearing))
	}
	if !r.Breakdown.NetCapitalGain.IsZero() {
		kv(buf, "Net capital gain", FormatCurrency(r.Breakdown.NetCapitalGain))
	}
	if !r.Breakdown.GrossedUpDividends.IsZero() {
		kv(buf, "Grossed-up dividends", FormatCurrency(r.Breakdown.GrossedUpDividends))
	}
	kv(buf, "Taxable income", FormatCurrency(r.TaxableIncome))
	kv(buf, "Income tax", FormatCurrency(r.IncomeTax))
	if !r.Breakdown.FrankingCreditsApplied.IsZero() {
		kv(buf, "Franking credits applied", FormatCurrency(r.Breakdown.FrankingCreditsApplied))
	}
	kv(buf, "Levy", FormatCurrency(r.LevyAmount))
	if !r.DebtRepayment.IsZero() {
		kv(buf, "Debt repayment", FormatCurrency(r.DebtRepayment))
	}
	kv(buf, "Total tax", FormatCurrency(r.TotalTax))
	kv(buf, "After-tax income", FormatCurrency(r.AfterTaxIncome))
	kv(buf, "Marginal rate", FormatRate(r.MarginalRate))
	kv(buf, "Average rate", FormatRate(r.AverageRate))
}

func writeOptimization(buf *bytes.Buffer, o *domain.OptimizationComparison) {
	heading(buf, "Tax Optimisation")
	kv(buf, "Current tax", FormatCurrency(o.Current.TotalTax))
	kv(buf, "Optimised tax", FormatCurrency(o.Optimized.TotalTax))
	kv(buf, "Savings", FormatCurrency(o.Savings))
	for _, s := range o.AppliedStrategies {
		fmt.Fprintf(buf, "• %s\n", s)
	}
}

func writeLoan(buf *bytes.Buffer, l *domain.LoanSummary) {
	heading(buf, "Loan Repayments")
	kv(buf, "Principal", FormatCurrency(l.Terms.Principal))
	kv(buf, "Interest rate", FormatRate(l.Terms.AnnualRate))
	kv(buf, "Term", fmt.Sprintf("%d years", l.Terms.TermYears))
	kv(buf, "Monthly payment", FormatCurrency(l.MonthlyPayment))
	kv(buf, "Payments", fmt.Sprintf("%d", l.Payments))
	kv(buf, "Total paid", FormatCurrency(l.TotalPaid))
	kv(buf, "Total interest", FormatCurrency(l.TotalInterest))
}

func writeSchedule(buf *bytes.Buffer, entries []domain.AmortizationEntry) {
	heading(buf, "Amortization Schedule")
	fmt.Fprintf(buf, "%6s %14s %14s %14s %16s\n", "No.", "Payment", "Principal", "Interest", "Balance")
	for _, e := range entries {
		fmt.Fprintf(buf, "%6d %14s %14s %14s %16s\n", e.PaymentNumber,
			FormatCurrency(e.Payment), FormatCurrency(e.Principal), FormatCurrency(e.Interest), FormatCurrency(e.RemainingBalance))
	}
}

func writeRetirement(buf *bytes.Buffer, years []domain.YearlyProjection) {
	heading(buf, "Retirement Savings Projection")
	withSalary := false
	for _, y := range years {
		if !y.Salary.IsZero() {
			withSalary = true
			break
		}
	}

	if withSalary {
		fmt.Fprintf(buf, "%4s %14s %14s %16s %16s %14s %12s\n", "Age", "Contrib.", "Return", "Balance", "Real Value", "Salary", "Tax")
	} else {
		fmt.Fprintf(buf, "%4s %14s %14s %16s %16s\n", "Age", "Contrib.", "Return", "Balance", "Real Value")
	}
	for _, y := range years {
		line := fmt.Sprintf("%4d %14s %14s %16s %16s", y.Age,
			FormatCurrency(y.Contributions), FormatCurrency(y.InvestmentReturn), FormatCurrency(y.EndingBalance), FormatCurrency(y.RealValue))
		if withSalary {
			line += fmt.Sprintf(" %14s %12s", FormatCurrency(y.Salary), FormatCurrency(y.Tax))
		}
		fmt.Fprintln(buf, line)
	}

	last := years[len(years)-1]
	kv(buf, "Balance at retirement", FormatCurrency(last.EndingBalance))
	kv(buf, "In today's dollars", FormatCurrency(last.RealValue))
	kv(buf, "Total contributions", FormatCurrency(last.TotalContributions))
	kv(buf, "Total returns", FormatCurrency(last.TotalReturns))
}

func writeNetWorth(buf *bytes.Buffer, n *domain.NetWorthProjection) {
	heading(buf, fmt.Sprintf("Net Worth At Retirement (%d years)", n.YearsToRetirement))
	for _, a := range n.AssetClasses {
		kv(buf, humanize(string(a.Class)), fmt.Sprintf("%s -> %s", FormatCurrency(a.CurrentValue), FormatCurrency(a.ProjectedValue)))
	}
	for _, p := range n.InvestmentProperties {
		kv(buf, p.Name, fmt.Sprintf("%s -> %s (loan %s)", FormatCurrency(p.CurrentValue), FormatCurrency(p.ProjectedValue), FormatCurrency(p.RemainingLoan)))
	}
	if !n.RetirementLumpSum.IsZero() {
		kv(buf, "Superannuation", FormatCurrency(n.RetirementLumpSum))
	}
	for _, l := range n.Liabilities {
		kv(buf, l.Name, fmt.Sprintf("%s -> %s", FormatCurrency(l.CurrentBalance), FormatCurrency(l.RemainingBalance)))
	}
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	kv(buf, "Total assets", FormatCurrency(n.TotalAssets))
	kv(buf, "Total liabilities", FormatCurrency(n.TotalLiabilities))
	kv(buf, "Net worth", FormatCurrency(n.NetWorthAtRetirement))
	kv(buf, "In today's dollars", FormatCurrency(n.RealNetWorth))
	kv(buf, "Withdrawal income", FormatCurrency(n.WithdrawalIncome))
	kv(buf, "Rental income", FormatCurrency(n.ProjectedRentalIncome))
	kv(buf, "Property expenses", FormatCurrency(n.ProjectedExpenses))
	kv(buf, "Debt service", FormatCurrency(n.RemainingDebtService))
	kv(buf, "Passive income", FormatCurrency(n.PassiveIncome))
}

func writeDrawdown(buf *bytes.Buffer, d *domain.DrawdownProjection) {
	heading(buf, "Retirement Drawdown")
	kv(buf, "Starting balance", FormatCurrency(d.InitialBalance))
	kv(buf, "Total withdrawn", FormatCurrency(d.TotalWithdrawn))
	kv(buf, "Final balance", FormatCurrency(d.FinalBalance))
	kv(buf, "Years fully funded", fmt.Sprintf("%d", d.LongevityYears))
	if d.Depleted {
		fmt.Fprintln(buf, warnStyle.Render(fmt.Sprintf("Funds are exhausted at age %d", d.DepletionAge)))
	}
	if len(d.Years) == 0 {
		return
	}
	fmt.Fprintf(buf, "%4s %16s %14s %14s %16s\n", "Age", "Opening", "Withdrawal", "Return", "Closing")
	for _, y := range d.Years {
		fmt.Fprintf(buf, "%4d %16s %14s %14s %16s\n", y.Age,
			FormatCurrency(y.BeginningBalance), FormatCurrency(y.Withdrawal), FormatCurrency(y.InvestmentReturn), FormatCurrency(y.EndingBalance))
	}
}

func writeSensitivity(buf *bytes.Buffer, s *domain.SensitivityAnalysis) {
	heading(buf, "Sensitivity: "+humanize(string(s.Parameter)))
	kv(buf, "Base value", s.BaseValue.String())
	kv(buf, "Base balance", FormatCurrency(s.BaseBalance))
	fmt.Fprintf(buf, "%12s %16s %16s %14s %9s\n", "Value", "Balance", "Real Value", "Change", "Change %")
	for _, r := range s.Results {
		fmt.Fprintf(buf, "%12s %16s %16s %14s %9s\n", r.Value.String(),
			FormatCurrency(r.RetirementBalance), FormatCurrency(r.RealValue), FormatCurrency(r.ChangeFromBase), FormatRate(r.ChangePct))
	}
	kv(buf, "Most favourable", FormatCurrency(s.MostFavourable))
	kv(buf, "Least favourable", FormatCurrency(s.LeastFavourable))
	kv(buf, "Range of outcomes", FormatCurrency(s.RangeOfOutcomes))
}

func writePlan(buf *bytes.Buffer, p *domain.PlanReport) {
	heading(buf, "Client: "+p.Client.Name)
	kv(buf, "Age", fmt.Sprintf("%d (retiring at %d)", p.Client.CurrentAge, p.Client.RetirementAge))
	kv(buf, "Rules", p.RuleVersion)

	if p.Tax != nil {
		writeTax(buf, p.Tax)
	}
	for _, cf := range p.PropertyCashFlows {
		heading(buf, "Rental Property: "+cf.Name)
		kv(buf, "Rent", FormatCurrency(cf.AnnualRent))
		kv(buf, "Expenses", FormatCurrency(cf.AnnualExpenses))
		kv(buf, "Interest", FormatCurrency(cf.AnnualInterest))
		kv(buf, "Net income", FormatCurrency(cf.NetIncome))
	}
	if p.Optimization != nil {
		writeOptimization(buf, p.Optimization)
	}
	if len(p.Retirement) > 0 {
		last := p.Retirement[len(p.Retirement)-1]
		heading(buf, "Superannuation")
		kv(buf, "Balance at retirement", FormatCurrency(last.EndingBalance))
		kv(buf, "In today's dollars", FormatCurrency(last.RealValue))
	}
	if p.NetWorth != nil {
		writeNetWorth(buf, p.NetWorth)
	}
	if p.Drawdown != nil {
		writeDrawdown(buf, p.Drawdown)
	}
}

func writeBatch(buf *bytes.Buffer, plans []*domain.PlanReport) {
	heading(buf, fmt.Sprintf("Batch Summary (%d clients)", len(plans)))
	fmt.Fprintf(buf, "%-20s %8s %12s %14s %16s %10s\n", "Client", "Year", "Total Tax", "Super", "Net Worth", "Depleted")
	for _, p := range plans {
		s := summarizePlan(p)
		depleted := "no"
		if s.depleted {
			depleted = fmt.Sprintf("at %d", s.depletionAge)
		}
		fmt.Fprintf(buf, "%-20s %8s %12s %14s %16s %10s\n", truncate(p.Client.Name, 20), p.TaxYear,
			FormatCurrency(s.totalTax), FormatCurrency(s.lumpSum), FormatCurrency(s.netWorth), depleted)
	}
}

func writeRules(buf *bytes.Buffer, t *domain.TaxRuleTable) {
	heading(buf, fmt.Sprintf("Tax Rules %s (version %s)", t.TaxYear, t.Version))
	kv(buf, "Effective", t.EffectiveDate.Format("2006-01-02"))
	fmt.Fprintf(buf, "%14s %14s %8s %14s\n", "From", "To", "Rate", "Base")
	for _, b := range t.Brackets {
		upper := "and over"
		if b.Max != nil {
			upper = FormatCurrency(*b.Max)
		}
		fmt.Fprintf(buf, "%14s %14s %8s %14s\n", FormatCurrency(b.Min), upper, FormatRate(b.Rate), FormatCurrency(b.BaseAmount))
	}
	kv(buf, "Levy", fmt.Sprintf("%s above %s", FormatRate(t.Levy.Rate), FormatCurrency(t.Levy.Threshold)))
	kv(buf, "Repayment bands", fmt.Sprintf("%d", len(t.DebtRepaymentThresholds)))
	kv(buf, "Negative gearing", fmt.Sprintf("%t", t.NegativeGearingAllowed))
	kv(buf, "Franking credit rate", t.FrankingCreditRate.String())
	kv(buf, "CGT discount", FormatRate(t.CapitalGainsDiscount))
	for _, c := range t.DeductionCategories {
		fmt.Fprintf(buf, "• %-20s %s\n", c.Code, c.Name)
	}
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// FormatRate formats a ratio such as 0.325 as a percentage
func FormatRate(r decimal.Decimal) string {
	return r.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func humanize(code string) string {
	s := strings.ReplaceAll(code, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
