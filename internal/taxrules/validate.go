package taxrules

import (
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Validate checks that a rule table is internally consistent: brackets and
// repayment bands are contiguous, ascending and exhaustive, every rate is a
// ratio, and each bracket's BaseAmount equals the tax owed at its lower edge.
func Validate(table *domain.TaxRuleTable) error {
	if table == nil {
		return domain.NewInvalidInputError("rule_table", "must not be nil")
	}
	if table.Version == "" {
		return domain.NewInvalidInputError("rule_table.version", "must not be empty")
	}
	if table.TaxYear == "" {
		return domain.NewInvalidInputError("rule_table.tax_year", "must not be empty")
	}
	if table.EffectiveDate.IsZero() {
		return domain.NewInvalidInputError("rule_table.effective_date", "must be set")
	}

	if err := validateBrackets(table.Brackets); err != nil {
		return err
	}
	if err := validateRatio("rule_table.levy.rate", table.Levy.Rate); err != nil {
		return err
	}
	if table.Levy.Threshold.IsNegative() {
		return domain.InvalidDecimal("rule_table.levy.threshold", "must be >= 0", table.Levy.Threshold)
	}
	if err := validateDebtBands(table.DebtRepaymentThresholds); err != nil {
		return err
	}
	if err := validateRatio("rule_table.franking_credit_rate", table.FrankingCreditRate); err != nil {
		return err
	}
	if err := validateRatio("rule_table.capital_gains_discount", table.CapitalGainsDiscount); err != nil {
		return err
	}

	seen := make(map[string]bool, len(table.DeductionCategories))
	for i, c := range table.DeductionCategories {
		if c.Code == "" {
			return domain.NewInvalidInputError(fmt.Sprintf("rule_table.deduction_categories[%d].code", i), "must not be empty")
		}
		if seen[c.Code] {
			return &domain.InvalidInputError{
				Field:      fmt.Sprintf("rule_table.deduction_categories[%d].code", i),
				Constraint: "must be unique",
				Value:      c.Code,
			}
		}
		seen[c.Code] = true
	}
	return nil
}

func validateRatio(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(one) {
		return domain.InvalidDecimal(field, "must be within [0, 1]", v)
	}
	return nil
}

func validateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return domain.NewInvalidInputError("rule_table.brackets", "must contain at least one bracket")
	}
	if !brackets[0].Min.IsZero() {
		return domain.InvalidDecimal("rule_table.brackets[0].min", "must be 0", brackets[0].Min)
	}
	if !brackets[0].BaseAmount.IsZero() {
		return domain.InvalidDecimal("rule_table.brackets[0].base_amount", "must be 0", brackets[0].BaseAmount)
	}
	// The tax-free threshold is the first bracket.
	if !brackets[0].Rate.IsZero() {
		return domain.InvalidDecimal("rule_table.brackets[0].rate", "must be 0", brackets[0].Rate)
	}

	last := len(brackets) - 1
	for i, b := range brackets {
		field := fmt.Sprintf("rule_table.brackets[%d]", i)
		if err := validateRatio(field+".rate", b.Rate); err != nil {
			return err
		}
		if i == last {
			if b.Max != nil {
				return domain.NewInvalidInputError(field+".max", "must be unbounded for the top bracket")
			}
			break
		}
		if b.Max == nil {
			return domain.NewInvalidInputError(field+".max", "may only be unbounded for the top bracket")
		}
		if !b.Max.GreaterThan(b.Min) {
			return domain.InvalidDecimal(field+".max", "must be greater than min", *b.Max)
		}

		next := brackets[i+1]
		nextField := fmt.Sprintf("rule_table.brackets[%d]", i+1)
		if !next.Min.Equal(*b.Max) {
			return domain.InvalidDecimal(nextField+".min", "must equal the previous bracket's max", next.Min)
		}
		expected := b.BaseAmount.Add(b.Max.Sub(b.Min).Mul(b.Rate)).Round(2)
		if !next.BaseAmount.Round(2).Equal(expected) {
			return domain.InvalidDecimal(nextField+".base_amount",
				fmt.Sprintf("must equal the tax owed at its lower edge (%s)", expected.StringFixed(2)), next.BaseAmount)
		}
	}
	return nil
}

func validateDebtBands(bands []domain.DebtRepaymentBand) error {
	// A table without a repayment schedule never charges a repayment.
	if len(bands) == 0 {
		return nil
	}
	if !bands[0].Min.IsZero() {
		return domain.InvalidDecimal("rule_table.debt_repayment_thresholds[0].min", "must be 0", bands[0].Min)
	}

	last := len(bands) - 1
	for i, b := range bands {
		field := fmt.Sprintf("rule_table.debt_repayment_thresholds[%d]", i)
		if err := validateRatio(field+".rate", b.Rate); err != nil {
			return err
		}
		if i == last {
			if b.Max != nil {
				return domain.NewInvalidInputError(field+".max", "must be unbounded for the top band")
			}
			break
		}
		if b.Max == nil {
			return domain.NewInvalidInputError(field+".max", "may only be unbounded for the top band")
		}
		if !b.Max.GreaterThan(b.Min) {
			return domain.InvalidDecimal(field+".max", "must be greater than min", *b.Max)
		}
		if next := bands[i+1]; !next.Min.Equal(*b.Max) {
			return domain.InvalidDecimal(fmt.Sprintf("rule_table.debt_repayment_thresholds[%d].min", i+1),
				"must equal the previous band's max", next.Min)
		}
	}
	return nil
}
