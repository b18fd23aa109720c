package main

import (
	"fmt"
	"strings"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// decimalValue lets a decimal.Decimal be bound to a cobra flag.
type decimalValue struct{ d *decimal.Decimal }

func (v decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("not a decimal number: %q", s)
	}
	*v.d = d
	return nil
}

func (v decimalValue) Type() string { return "decimal" }

// parseDeductions reads "category=amount" or "name:category=amount" pairs.
func parseDeductions(specs []string) ([]domain.Deduction, error) {
	deductions := make([]domain.Deduction, 0, len(specs))
	for _, spec := range specs {
		key, amountText, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("deduction %q: expected category=amount", spec)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(amountText))
		if err != nil {
			return nil, fmt.Errorf("deduction %q: invalid amount", spec)
		}
		name, category, named := strings.Cut(key, ":")
		if !named {
			category = name
		}
		deductions = append(deductions, domain.Deduction{
			Name:     strings.TrimSpace(name),
			Category: strings.TrimSpace(category),
			Amount:   amount,
		})
	}
	return deductions, nil
}

// parseDecimals reads a comma-separated list such as "0.05,0.06,0.07".
func parseDecimals(list string) ([]decimal.Decimal, error) {
	var values []decimal.Decimal
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", part)
		}
		values = append(values, v)
	}
	return values, nil
}
