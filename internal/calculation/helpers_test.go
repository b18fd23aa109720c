package calculation

import (
	"errors"
	"testing"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/taxrules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", label, want, got.String())
}

// requireInvalid asserts err is an InvalidInputError naming field.
func requireInvalid(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "should match ErrInvalidInput: %v", err)
	var invalid *domain.InvalidInputError
	require.True(t, errors.As(err, &invalid), "should be an InvalidInputError: %v", err)
	assert.Equal(t, field, invalid.Field)
}

func table2024() *domain.TaxRuleTable {
	return taxrules.AU2024_25()
}
