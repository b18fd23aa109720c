package taxrules

import (
	"fmt"
	"sort"
	"time"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Registry is an immutable set of validated rule tables keyed by tax year.
// Lookups hand out deep copies so callers can never alter a registered table.
type Registry struct {
	byYear map[string]*domain.TaxRuleTable
	// ordered by EffectiveDate ascending
	ordered []*domain.TaxRuleTable
}

// NewRegistry validates each table and rejects duplicate tax years.
func NewRegistry(tables ...*domain.TaxRuleTable) (*Registry, error) {
	r := &Registry{byYear: make(map[string]*domain.TaxRuleTable, len(tables))}
	for _, t := range tables {
		if err := Validate(t); err != nil {
			return nil, fmt.Errorf("rule table %q: %w", tableName(t), err)
		}
		if _, dup := r.byYear[t.TaxYear]; dup {
			return nil, &domain.InvalidInputError{Field: "rule_table.tax_year", Constraint: "must be unique within a registry", Value: t.TaxYear}
		}
		c := Clone(t)
		r.byYear[c.TaxYear] = c
		r.ordered = append(r.ordered, c)
	}
	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].EffectiveDate.Before(r.ordered[j].EffectiveDate)
	})
	return r, nil
}

// DefaultRegistry holds the built-in Australian tables.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(AU2023_24(), AU2024_25())
	if err != nil {
		panic(fmt.Sprintf("built-in rule tables are invalid: %v", err))
	}
	return r
}

// Lookup returns the table for an explicit tax year such as "2024-25".
func (r *Registry) Lookup(taxYear string) (*domain.TaxRuleTable, error) {
	t, ok := r.byYear[taxYear]
	if !ok {
		return nil, &domain.InvalidInputError{
			Field:      "tax_year",
			Constraint: fmt.Sprintf("must be one of %v", r.Years()),
			Value:      taxYear,
		}
	}
	return Clone(t), nil
}

// InForce returns the table with the latest effective date on or before at.
func (r *Registry) InForce(at time.Time) (*domain.TaxRuleTable, error) {
	var found *domain.TaxRuleTable
	for _, t := range r.ordered {
		if t.EffectiveDate.After(at) {
			break
		}
		found = t
	}
	if found == nil {
		return nil, &domain.InvalidInputError{
			Field:      "as_of",
			Constraint: "must be on or after the earliest registered effective date",
			Value:      at.Format("2006-01-02"),
		}
	}
	return Clone(found), nil
}

// Latest returns the most recently effective table.
func (r *Registry) Latest() (*domain.TaxRuleTable, error) {
	if len(r.ordered) == 0 {
		return nil, domain.NewInvalidInputError("registry", "must contain at least one rule table")
	}
	return Clone(r.ordered[len(r.ordered)-1]), nil
}

// Years lists the registered tax years in effective-date order.
func (r *Registry) Years() []string {
	years := make([]string, 0, len(r.ordered))
	for _, t := range r.ordered {
		years = append(years, t.TaxYear)
	}
	return years
}

// Clone deep-copies a rule table.
func Clone(t *domain.TaxRuleTable) *domain.TaxRuleTable {
	if t == nil {
		return nil
	}
	c := *t
	c.Brackets = make([]domain.TaxBracket, len(t.Brackets))
	for i, b := range t.Brackets {
		b.Max = copyBound(b.Max)
		c.Brackets[i] = b
	}
	c.DebtRepaymentThresholds = make([]domain.DebtRepaymentBand, len(t.DebtRepaymentThresholds))
	for i, b := range t.DebtRepaymentThresholds {
		b.Max = copyBound(b.Max)
		c.DebtRepaymentThresholds[i] = b
	}
	c.DeductionCategories = append([]domain.DeductionCategory(nil), t.DeductionCategories...)
	return &c
}

func copyBound(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := *v
	return &d
}

func tableName(t *domain.TaxRuleTable) string {
	if t == nil {
		return "<nil>"
	}
	return t.TaxYear
}
