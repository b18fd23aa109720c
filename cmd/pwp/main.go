package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/config"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/output"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/taxrules"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand once settings are loaded.
type app struct {
	configFile string
	format     string
	logLevel   string
	taxYear    string
	rulesFile  string
	outputDir  string

	settings *config.Settings
	logger   *zap.Logger
	parser   *config.InputParser
	registry *taxrules.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{parser: config.NewInputParser()}

	root := &cobra.Command{
		Use:   "pwp",
		Short: "Australian personal wealth planning calculator",
		Long: "Income tax, tax optimisation, loan, retirement, net worth and drawdown " +
			"calculations for Australian financial planning clients",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "settings file (YAML); PWP_* environment variables override it")
	pf.StringVarP(&a.format, "format", "f", "console", fmt.Sprintf("output format %v, or an alias %v",
		output.AvailableFormatterNames(), output.AvailableFormatAliases()))
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.StringVar(&a.taxYear, "tax-year", "", "tax year to apply, e.g. 2024-25 (default: the plan's year, else the year in force)")
	pf.StringVar(&a.rulesFile, "rules", "", "additional rule table file (YAML)")
	pf.StringVar(&a.outputDir, "output-dir", "", "save the report to a timestamped file in this directory instead of printing it")

	root.AddCommand(
		a.taxCmd(),
		a.optimizeCmd(),
		a.compareCmd(),
		a.loanCmd(),
		a.projectCmd(),
		a.netWorthCmd(),
		a.drawdownCmd(),
		a.sensitivityCmd(),
		a.planCmd(),
		a.batchCmd(),
		a.rulesCmd(),
		a.tvmCmd(),
		versionCmd(),
	)
	return root
}

// setup loads settings, applies flag overrides and builds the logger and
// rule registry.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(a.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		settings.Output.Format = a.format
	}
	if flags.Changed("log-level") {
		settings.Logging.Level = a.logLevel
	}
	if flags.Changed("tax-year") {
		settings.TaxYear = a.taxYear
	}
	if flags.Changed("rules") {
		settings.RulesFile = a.rulesFile
	}
	if flags.Changed("output-dir") {
		settings.Output.Dir = a.outputDir
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	a.settings = settings

	logger, err := initializeLogger(settings.Logging)
	if err != nil {
		return err
	}
	a.logger = logger

	registry, err := a.parser.LoadRegistry(settings.RulesFile)
	if err != nil {
		return err
	}
	a.registry = registry

	a.logger.Debug("settings loaded",
		zap.String("format", settings.Output.Format),
		zap.String("tax_year", settings.TaxYear),
		zap.Strings("rule_years", registry.Years()))
	return nil
}

// ruleTable resolves the table for a command: the configured year wins, then
// the plan's own year, then whichever table is in force today.
func (a *app) ruleTable(planYear string) (*domain.TaxRuleTable, error) {
	year := a.settings.TaxYear
	if year == "" {
		year = planYear
	}
	if year == "" {
		return a.registry.InForce(time.Now())
	}
	return a.registry.Lookup(year)
}

func (a *app) render(cmd *cobra.Command, report *output.Report) error {
	if a.settings.Output.Dir == "" {
		return output.Write(cmd.OutOrStdout(), a.settings.Output.Format, report)
	}

	f := output.GetFormatterByName(a.settings.Output.Format)
	if f == nil {
		return fmt.Errorf("unknown output format %q (available: %v)", a.settings.Output.Format, output.AvailableFormatterNames())
	}
	path, err := output.WriteFormatted(f, report, a.settings.Output.Dir, output.FileExtension(f))
	if err != nil {
		return err
	}
	a.logger.Info("report saved", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
