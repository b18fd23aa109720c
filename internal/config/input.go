package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/calculation"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/taxrules"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan, batch and rule table files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// BatchFile is a list of client plans evaluated together.
type BatchFile struct {
	Plans []*domain.ClientPlan `yaml:"plans"`
}

// decodeStrict decodes YAML, rejecting keys that match no field so a typo
// cannot silently become a zero value. An empty document decodes to out's
// zero value.
func decodeStrict(data []byte, out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadPlan loads and validates a client plan from a YAML file
func (ip *InputParser) LoadPlan(filename string) (*domain.ClientPlan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParsePlan(data)
}

// ParsePlan decodes and validates a client plan
func (ip *InputParser) ParsePlan(data []byte) (*domain.ClientPlan, error) {
	var plan domain.ClientPlan
	if err := decodeStrict(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// LoadBatch loads every plan listed in a batch file
func (ip *InputParser) LoadBatch(filename string) ([]*domain.ClientPlan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var batch BatchFile
	if err := decodeStrict(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(batch.Plans) == 0 {
		return nil, fmt.Errorf("no plans provided in %s", filename)
	}
	for i, plan := range batch.Plans {
		if plan == nil {
			return nil, fmt.Errorf("plan %d is empty", i)
		}
		if err := ip.ValidatePlan(plan); err != nil {
			return nil, fmt.Errorf("plan %d (%s) validation failed: %w", i, plan.Client.Name, err)
		}
	}
	return batch.Plans, nil
}

// LoadTaxInput loads a single year's tax input
func (ip *InputParser) LoadTaxInput(filename string) (*domain.TaxCalculationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input domain.TaxCalculationInput
	if err := decodeStrict(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &input, nil
}

// LoadRuleTable loads a rule table and rejects it unless it is internally
// consistent.
func (ip *InputParser) LoadRuleTable(filename string) (*domain.TaxRuleTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var table domain.TaxRuleTable
	if err := decodeStrict(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if table.Jurisdiction == "" {
		table.Jurisdiction = taxrules.Jurisdiction
	}
	if err := taxrules.Validate(&table); err != nil {
		return nil, fmt.Errorf("rule table %s: %w", filename, err)
	}
	return &table, nil
}

// LoadRegistry returns the built-in rule tables, replaced or extended by the
// table in rulesFile when one is given.
func (ip *InputParser) LoadRegistry(rulesFile string) (*taxrules.Registry, error) {
	if rulesFile == "" {
		return taxrules.DefaultRegistry(), nil
	}

	custom, err := ip.LoadRuleTable(rulesFile)
	if err != nil {
		return nil, err
	}

	tables := []*domain.TaxRuleTable{custom}
	for _, builtin := range []*domain.TaxRuleTable{taxrules.AU2024_25(), taxrules.AU2023_24()} {
		if builtin.TaxYear != custom.TaxYear {
			tables = append(tables, builtin)
		}
	}
	return taxrules.NewRegistry(tables...)
}

// ValidatePlan checks the parts of a plan that have no calculation-time check.
func (ip *InputParser) ValidatePlan(plan *domain.ClientPlan) error {
	if plan.Client.Name == "" {
		return domain.NewInvalidInputError("client.name", "is required")
	}
	if plan.TaxYear == "" {
		return domain.NewInvalidInputError("tax_year", "is required")
	}
	if plan.Client.LifeExpectancy != 0 && plan.Client.LifeExpectancy <= plan.Client.RetirementAge {
		return domain.InvalidInt("client.life_expectancy", "must be greater than retirement_age", plan.Client.LifeExpectancy)
	}
	if err := calculation.ValidateAssumptions(plan.Assumptions); err != nil {
		return err
	}
	for i, s := range plan.Strategies {
		if s.Name == "" {
			return domain.NewInvalidInputError(fmt.Sprintf("strategies[%d].name", i), "is required")
		}
	}
	return nil
}
