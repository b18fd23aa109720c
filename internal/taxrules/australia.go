// Package taxrules holds the built-in Australian resident tax rule tables and
// the validation applied to every table, built-in or loaded from file.
package taxrules

import (
	"time"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// Jurisdiction is the only jurisdiction modelled.
const Jurisdiction = "AU"

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func pct(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func upTo(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// helpBands2024 are the 2024-25 HELP compulsory repayment thresholds.
func helpBands2024() []domain.DebtRepaymentBand {
	edges := []int64{54435, 62851, 66621, 70619, 74856, 79347, 84108, 89155, 94504,
		100175, 106186, 112557, 119310, 126468, 134057, 142101, 150627, 159664}
	rates := []string{"0.01", "0.02", "0.025", "0.03", "0.035", "0.04", "0.045", "0.05",
		"0.055", "0.06", "0.065", "0.07", "0.075", "0.08", "0.085", "0.09", "0.095", "0.10"}
	return buildBands(edges, rates)
}

// helpBands2023 are the 2023-24 HELP compulsory repayment thresholds.
func helpBands2023() []domain.DebtRepaymentBand {
	edges := []int64{51550, 59519, 63090, 66876, 70889, 75141, 79650, 84430, 89495,
		94866, 100558, 106591, 112986, 119765, 126951, 134569, 142643, 151201}
	rates := []string{"0.01", "0.02", "0.025", "0.03", "0.035", "0.04", "0.045", "0.05",
		"0.055", "0.06", "0.065", "0.07", "0.075", "0.08", "0.085", "0.09", "0.095", "0.10"}
	return buildBands(edges, rates)
}

// buildBands turns ascending lower edges into contiguous [min, max) bands
// starting with a nil-rate band from zero.
func buildBands(edges []int64, rates []string) []domain.DebtRepaymentBand {
	bands := make([]domain.DebtRepaymentBand, 0, len(edges)+1)
	bands = append(bands, domain.DebtRepaymentBand{Min: decimal.Zero, Max: upTo(edges[0]), Rate: decimal.Zero})
	for i, edge := range edges {
		band := domain.DebtRepaymentBand{Min: dec(edge), Rate: pct(rates[i])}
		if i+1 < len(edges) {
			band.Max = upTo(edges[i+1])
		}
		bands = append(bands, band)
	}
	return bands
}

func deductionCategories() []domain.DeductionCategory {
	return []domain.DeductionCategory{
		{Code: "work_related", Name: "Work-related expenses", Description: "Car, travel, clothing, self-education and other work costs"},
		{Code: "home_office", Name: "Working from home", Description: "Running expenses of a home office"},
		{Code: "donations", Name: "Gifts and donations", Description: "Gifts to deductible gift recipients"},
		{Code: "tax_affairs", Name: "Cost of managing tax affairs", Description: "Tax agent fees and related costs"},
		{Code: "investment", Name: "Investment expenses", Description: "Interest and fees on share and managed-fund investments"},
		{Code: "super_contributions", Name: "Personal super contributions", Description: "Personal concessional contributions claimed as a deduction"},
		{Code: "income_protection", Name: "Income protection insurance", Description: "Premiums for income protection held outside super"},
		{Code: "other", Name: "Other deductions", Description: "Any other allowable deduction"},
	}
}

// AU2024_25 returns the 2024-25 resident rule table (Stage 3 rates).
func AU2024_25() *domain.TaxRuleTable {
	return &domain.TaxRuleTable{
		Version:       "2024-25.1",
		EffectiveDate: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		TaxYear:       "2024-25",
		Jurisdiction:  Jurisdiction,
		Brackets: []domain.TaxBracket{
			{Min: decimal.Zero, Max: upTo(18200), Rate: decimal.Zero, BaseAmount: decimal.Zero},
			{Min: dec(18200), Max: upTo(45000), Rate: pct("0.16"), BaseAmount: decimal.Zero},
			{Min: dec(45000), Max: upTo(135000), Rate: pct("0.30"), BaseAmount: dec(4288)},
			{Min: dec(135000), Max: upTo(190000), Rate: pct("0.37"), BaseAmount: dec(31288)},
			{Min: dec(190000), Rate: pct("0.45"), BaseAmount: dec(51638)},
		},
		Levy:                    domain.LevyRule{Rate: pct("0.02"), Threshold: dec(26000)},
		DebtRepaymentThresholds: helpBands2024(),
		NegativeGearingAllowed:  true,
		FrankingCreditRate:      pct("0.428571"),
		CapitalGainsDiscount:    pct("0.50"),
		DeductionCategories:     deductionCategories(),
	}
}

// AU2023_24 returns the 2023-24 resident rule table.
func AU2023_24() *domain.TaxRuleTable {
	return &domain.TaxRuleTable{
		Version:       "2023-24.1",
		EffectiveDate: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		TaxYear:       "2023-24",
		Jurisdiction:  Jurisdiction,
		Brackets: []domain.TaxBracket{
			{Min: decimal.Zero, Max: upTo(18200), Rate: decimal.Zero, BaseAmount: decimal.Zero},
			{Min: dec(18200), Max: upTo(45000), Rate: pct("0.19"), BaseAmount: decimal.Zero},
			{Min: dec(45000), Max: upTo(120000), Rate: pct("0.325"), BaseAmount: dec(5092)},
			{Min: dec(120000), Max: upTo(180000), Rate: pct("0.37"), BaseAmount: dec(29467)},
			{Min: dec(180000), Rate: pct("0.45"), BaseAmount: dec(51667)},
		},
		Levy:                    domain.LevyRule{Rate: pct("0.02"), Threshold: dec(24276)},
		DebtRepaymentThresholds: helpBands2023(),
		NegativeGearingAllowed:  true,
		FrankingCreditRate:      pct("0.428571"),
		CapitalGainsDiscount:    pct("0.50"),
		DeductionCategories:     deductionCategories(),
	}
}
