package calculation

import (
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectRetirement produces one YearlyProjection per age from CurrentAge to
// RetirementAge inclusive. Year 0 is the opening balance; every later year adds
// twelve monthly contributions and then earns AnnualReturn on the total.
//
// table is only consulted when AnnualSalary is positive, to report each
// year's tax on the grown salary; it may be nil otherwise.
func ProjectRetirement(input domain.RetirementInput, table *domain.TaxRuleTable) ([]domain.YearlyProjection, error) {
	if err := validateRetirementInput(input); err != nil {
		return nil, err
	}
	withSalary := input.AnnualSalary.IsPositive()
	if withSalary {
		if err := requireTable(table); err != nil {
			return nil, err
		}
	}

	years := input.RetirementAge - input.CurrentAge
	annualContribution := input.MonthlyContribution.Mul(twelve)

	projections := make([]domain.YearlyProjection, 0, years+1)
	balance := input.CurrentSavings
	totalContributions := decimal.Zero
	totalReturns := decimal.Zero

	for year := 0; year <= years; year++ {
		p := domain.YearlyProjection{
			Age:              input.CurrentAge + year,
			Year:             year,
			Contributions:    decimal.Zero,
			BeginningBalance: roundMoney(balance),
			InvestmentReturn: decimal.Zero,
		}

		if year > 0 {
			p.Contributions = roundMoney(annualContribution)
			invested := balance.Add(annualContribution)
			p.InvestmentReturn = roundMoney(invested.Mul(input.AnnualReturn))
			balance = invested.Add(p.InvestmentReturn)

			totalContributions = totalContributions.Add(p.Contributions)
			totalReturns = totalReturns.Add(p.InvestmentReturn)
		}

		p.EndingBalance = roundMoney(balance)
		p.TotalContributions = totalContributions
		p.TotalReturns = totalReturns
		p.RealValue = roundMoney(p.EndingBalance.Div(growthFactor(input.InflationRate, float64(year))))

		if withSalary {
			salary := roundMoney(input.AnnualSalary.Mul(growthFactor(input.SalaryGrowthRate, float64(year))))
			tax, err := CalculateTax(domain.TaxCalculationInput{GrossIncome: salary}, table)
			if err != nil {
				return nil, fmt.Errorf("salary tax at age %d: %w", p.Age, err)
			}
			p.Salary = salary
			p.Tax = tax.TotalTax
			p.AfterTaxIncome = tax.AfterTaxIncome
		}

		projections = append(projections, p)
	}
	return projections, nil
}

func validateRetirementInput(input domain.RetirementInput) error {
	if input.CurrentAge < 0 {
		return domain.InvalidInt("current_age", "must be >= 0", input.CurrentAge)
	}
	if input.RetirementAge <= input.CurrentAge {
		return domain.InvalidInt("retirement_age", fmt.Sprintf("must be greater than current age %d", input.CurrentAge), input.RetirementAge)
	}
	if err := requireIntRange("years_to_retirement", input.RetirementAge-input.CurrentAge, 1, MaxProjectionYears); err != nil {
		return err
	}
	if err := requireNonNegative("current_savings", input.CurrentSavings); err != nil {
		return err
	}
	if err := requireNonNegative("monthly_contribution", input.MonthlyContribution); err != nil {
		return err
	}
	if err := requireRange("annual_return", input.AnnualReturn, negOne, one); err != nil {
		return err
	}
	if !input.InflationRate.GreaterThan(negOne) || input.InflationRate.GreaterThan(one) {
		return domain.InvalidDecimal("inflation_rate", "must be within (-1, 1]", input.InflationRate)
	}
	if err := requireNonNegative("annual_salary", input.AnnualSalary); err != nil {
		return err
	}
	return requireRange("salary_growth_rate", input.SalaryGrowthRate, negOne, one)
}
