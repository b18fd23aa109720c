package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything a single CLI command produces. Only the populated
// sections are rendered.
type Report struct {
	Title        string                         `json:"title"`
	Tax          *domain.TaxCalculationResult   `json:"tax,omitempty"`
	Optimization *domain.OptimizationComparison `json:"optimization,omitempty"`
	Loan         *domain.LoanSummary            `json:"loan,omitempty"`
	Schedule     []domain.AmortizationEntry     `json:"schedule,omitempty"`
	Balance      *LoanBalance                   `json:"balance,omitempty"`
	TimeValue    *TimeValue                     `json:"timeValue,omitempty"`
	Retirement   []domain.YearlyProjection      `json:"retirement,omitempty"`
	NetWorth     *domain.NetWorthProjection     `json:"netWorth,omitempty"`
	Drawdown     *domain.DrawdownProjection     `json:"drawdown,omitempty"`
	Sensitivity  *domain.SensitivityAnalysis    `json:"sensitivity,omitempty"`
	Plans        []*domain.PlanReport           `json:"plans,omitempty"`
	Rules        *domain.TaxRuleTable           `json:"rules,omitempty"`
	RuleYears    []string                       `json:"ruleYears,omitempty"`
	Assumptions  []string                       `json:"assumptions,omitempty"`
}

// LoanBalance is the outstanding principal after some payments.
type LoanBalance struct {
	Terms            domain.LoanTerms `json:"terms"`
	PaymentsMade     int              `json:"paymentsMade"`
	RemainingBalance decimal.Decimal  `json:"remainingBalance"`
}

// TimeValue is a single time value of money calculation. Amount is the
// present amount, future amount or annual payment depending on Operation.
type TimeValue struct {
	Operation string          `json:"operation"`
	Amount    decimal.Decimal `json:"amount"`
	Rate      decimal.Decimal `json:"rate"`
	Years     int             `json:"years"`
	Result    decimal.Decimal `json:"result"`
}

// Formatter renders a report in one output format.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"csv":          CSVFormatter{},
	"json":         JSONFormatter{Pretty: true},
	"json-compact": FormatterFunc{ID: "json-compact", F: JSONFormatter{}.Format},
	"yaml":         YAMLFormatter{},
}

var aliases = map[string]string{
	"table": "console",
	"text":  "console",
	"yml":   "yaml",
}

// GetFormatterByName returns the formatter for name or one of its aliases, or
// nil when there is none.
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// FileExtension is the extension used when a formatter's output is saved.
func FileExtension(f Formatter) string {
	switch f.Name() {
	case "console":
		return "txt"
	case "json-compact":
		return "json"
	default:
		return f.Name()
	}
}

// AvailableFormatterNames lists the registered formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alternative names.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write renders report with the named formatter to w.
func Write(w io.Writer, format string, report *Report) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format %q (available: %v)", format, AvailableFormatterNames())
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFormatted saves the rendered report to a timestamped file in dir and
// returns its path.
func WriteFormatted(f Formatter, report *Report, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("pwp_report_%s.%s", time.Now().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
