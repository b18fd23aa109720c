package calculation

import (
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectNetWorth compounds every asset class to retirement at its own rate,
// runs down property loans and termed liabilities on their schedules, and
// derives the passive income available at retirement.
//
// Shares grow at ShareReturnRate, both property classes and investment
// properties at PropertyGrowthRate, "other" at DefaultOtherGrowthRate, and
// cash at CashRate plus the future value of MonthlySavings. The retirement
// lump sum is the final balance of ProjectRetirement on the Retirement funds.
func ProjectNetWorth(input domain.NetWorthInput, assumptions domain.ProjectionAssumptions) (*domain.NetWorthProjection, error) {
	if err := validateNetWorthInput(input); err != nil {
		return nil, err
	}
	if err := ValidateAssumptions(assumptions); err != nil {
		return nil, err
	}

	years := input.RetirementAge - input.CurrentAge
	result := &domain.NetWorthProjection{YearsToRetirement: years}

	classes, err := projectAssetClasses(input, assumptions, years)
	if err != nil {
		return nil, err
	}
	result.AssetClasses = classes

	totalAssets := decimal.Zero
	projectedShares := decimal.Zero
	for _, c := range classes {
		totalAssets = totalAssets.Add(c.ProjectedValue)
		if c.Class == domain.AssetClassShares {
			projectedShares = c.ProjectedValue
		}
	}

	totalLiabilities := decimal.Zero
	rent := decimal.Zero
	expenses := decimal.Zero
	debtService := decimal.Zero

	for i, p := range input.InvestmentProperties {
		pp, err := projectProperty(p, assumptions, years)
		if err != nil {
			return nil, fmt.Errorf("investment_properties[%d]: %w", i, err)
		}
		result.InvestmentProperties = append(result.InvestmentProperties, *pp)
		totalAssets = totalAssets.Add(pp.ProjectedValue)
		totalLiabilities = totalLiabilities.Add(pp.RemainingLoan)
		rent = rent.Add(pp.ProjectedAnnualRent)
		expenses = expenses.Add(pp.ProjectedExpenses)
		debtService = debtService.Add(pp.RemainingDebtService)
	}

	for i, l := range input.Liabilities {
		lp, err := projectLiability(l, years)
		if err != nil {
			return nil, fmt.Errorf("liabilities[%d]: %w", i, err)
		}
		result.Liabilities = append(result.Liabilities, *lp)
		totalLiabilities = totalLiabilities.Add(lp.RemainingBalance)
		debtService = debtService.Add(lp.RemainingDebtService)
	}

	retirement, err := ProjectRetirement(domain.RetirementInput{
		CurrentAge:          input.CurrentAge,
		RetirementAge:       input.RetirementAge,
		CurrentSavings:      input.Retirement.Balance,
		MonthlyContribution: input.Retirement.MonthlyContribution,
		AnnualReturn:        assumptions.SuperReturnRate,
		InflationRate:       assumptions.InflationRate,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("retirement funds: %w", err)
	}
	lumpSum := retirement[len(retirement)-1].EndingBalance
	totalAssets = totalAssets.Add(lumpSum)

	netWorth := totalAssets.Sub(totalLiabilities)
	realNetWorth, err := RealValue(netWorth, assumptions.InflationRate, years)
	if err != nil {
		return nil, err
	}

	withdrawal := roundMoney(lumpSum.Add(projectedShares).Mul(assumptions.WithdrawalRate))

	result.TotalAssets = roundMoney(totalAssets)
	result.TotalLiabilities = roundMoney(totalLiabilities)
	result.NetWorthAtRetirement = roundMoney(netWorth)
	result.RealNetWorth = realNetWorth
	result.RetirementLumpSum = lumpSum
	result.WithdrawalIncome = withdrawal
	result.ProjectedRentalIncome = roundMoney(rent)
	result.ProjectedExpenses = roundMoney(expenses)
	result.RemainingDebtService = roundMoney(debtService)
	result.PassiveIncome = roundMoney(withdrawal.Add(rent).Sub(expenses).Sub(debtService))
	return result, nil
}

func projectAssetClasses(input domain.NetWorthInput, a domain.ProjectionAssumptions, years int) ([]domain.AssetClassProjection, error) {
	totals := make(map[domain.AssetClass]decimal.Decimal, len(domain.AssetClasses))
	for _, asset := range input.Assets {
		totals[asset.Class] = totals[asset.Class].Add(asset.CurrentValue)
	}

	var out []domain.AssetClassProjection
	for _, class := range domain.AssetClasses {
		current := totals[class]
		rate := classGrowthRate(class, a)

		projected, err := FutureValue(current, rate, years)
		if err != nil {
			return nil, fmt.Errorf("asset class %s: %w", class, err)
		}

		contributions := decimal.Zero
		if class == domain.AssetClassCash && input.MonthlySavings.IsPositive() {
			contributions, err = FutureValueOfAnnuity(input.MonthlySavings, rate, years, MonthsPerYear)
			if err != nil {
				return nil, fmt.Errorf("monthly savings: %w", err)
			}
		}

		if current.IsZero() && contributions.IsZero() {
			continue
		}
		out = append(out, domain.AssetClassProjection{
			Class:          class,
			CurrentValue:   roundMoney(current),
			GrowthRate:     rate,
			Contributions:  contributions,
			ProjectedValue: projected.Add(contributions),
		})
	}
	return out, nil
}

func classGrowthRate(class domain.AssetClass, a domain.ProjectionAssumptions) decimal.Decimal {
	switch {
	case class == domain.AssetClassShares:
		return a.ShareReturnRate
	case class.IsProperty():
		return a.PropertyGrowthRate
	case class == domain.AssetClassCash:
		return CashRate(a)
	default:
		return DefaultOtherGrowthRate
	}
}

func projectProperty(p domain.InvestmentProperty, a domain.ProjectionAssumptions, years int) (*domain.PropertyProjection, error) {
	projected, err := FutureValue(p.CurrentValue, a.PropertyGrowthRate, years)
	if err != nil {
		return nil, err
	}
	rent, err := FutureValue(p.WeeklyRent.Mul(decimal.NewFromInt(WeeksPerYear)), a.RentGrowthRate, years)
	if err != nil {
		return nil, err
	}
	expenses, err := FutureValue(p.AnnualExpenses, a.InflationRate, years)
	if err != nil {
		return nil, err
	}

	remaining := decimal.Zero
	service := decimal.Zero
	if p.LoanAmount.IsPositive() {
		remaining, err = RemainingLoanBalance(p.LoanAmount, p.InterestRate, p.LoanTerm, years)
		if err != nil {
			return nil, err
		}
		if remaining.IsPositive() {
			service = monthlyPayment(p.LoanAmount, p.InterestRate, p.LoanTerm).Mul(twelve)
		}
	}

	return &domain.PropertyProjection{
		Name:                 p.Name,
		CurrentValue:         p.CurrentValue,
		ProjectedValue:       projected,
		RemainingLoan:        remaining,
		ProjectedAnnualRent:  rent,
		ProjectedExpenses:    expenses,
		RemainingDebtService: service,
	}, nil
}

// projectLiability amortizes termed debts; a debt without a term is carried at
// its current balance and services interest only.
func projectLiability(l domain.Liability, years int) (*domain.LiabilityProjection, error) {
	if err := requireNonNegative("balance", l.Balance); err != nil {
		return nil, err
	}
	if err := requireRange("interest_rate", l.InterestRate, decimal.Zero, one); err != nil {
		return nil, err
	}

	lp := &domain.LiabilityProjection{
		Name:                 l.Name,
		CurrentBalance:       l.Balance,
		RemainingBalance:     l.Balance,
		RemainingDebtService: roundMoney(l.Balance.Mul(l.InterestRate)),
	}
	if l.TermYears <= 0 {
		return lp, nil
	}

	remaining, err := RemainingLoanBalance(l.Balance, l.InterestRate, l.TermYears, years)
	if err != nil {
		return nil, err
	}
	lp.RemainingBalance = remaining
	lp.RemainingDebtService = decimal.Zero
	if remaining.IsPositive() {
		lp.RemainingDebtService = monthlyPayment(l.Balance, l.InterestRate, l.TermYears).Mul(twelve)
	}
	return lp, nil
}

// InvestmentPropertyCashFlow returns the first-year rental position: annual
// rent less expenses and loan interest. A shortfall is the negative-gearing
// loss that can be offset against other income.
func InvestmentPropertyCashFlow(p domain.InvestmentProperty) (*domain.PropertyCashFlow, error) {
	if err := validateProperty(p); err != nil {
		return nil, err
	}

	rent := roundMoney(p.WeeklyRent.Mul(decimal.NewFromInt(WeeksPerYear)))
	interest := decimal.Zero
	if p.LoanAmount.IsPositive() {
		interest = firstYearInterest(p.LoanAmount, p.InterestRate, p.LoanTerm)
	}
	net := rent.Sub(p.AnnualExpenses).Sub(interest)

	loss := decimal.Zero
	if net.IsNegative() {
		loss = net.Neg()
	}
	return &domain.PropertyCashFlow{
		Name:                p.Name,
		AnnualRent:          rent,
		AnnualExpenses:      roundMoney(p.AnnualExpenses),
		AnnualInterest:      interest,
		NetIncome:           roundMoney(net),
		NegativeGearingLoss: roundMoney(loss),
	}, nil
}

func validateNetWorthInput(input domain.NetWorthInput) error {
	if input.CurrentAge < 0 {
		return domain.InvalidInt("current_age", "must be >= 0", input.CurrentAge)
	}
	if input.RetirementAge <= input.CurrentAge {
		return domain.InvalidInt("retirement_age", fmt.Sprintf("must be greater than current age %d", input.CurrentAge), input.RetirementAge)
	}
	if err := requireNonNegative("monthly_savings", input.MonthlySavings); err != nil {
		return err
	}
	for i, a := range input.Assets {
		field := fmt.Sprintf("assets[%d]", i)
		if !a.Class.Valid() {
			return &domain.InvalidInputError{Field: field + ".class", Constraint: fmt.Sprintf("must be one of %v", domain.AssetClasses), Value: string(a.Class)}
		}
		if err := requireNonNegative(field+".current_value", a.CurrentValue); err != nil {
			return err
		}
	}
	for i, p := range input.InvestmentProperties {
		if err := validateProperty(p); err != nil {
			return fmt.Errorf("investment_properties[%d]: %w", i, err)
		}
	}
	return nil
}

func validateProperty(p domain.InvestmentProperty) error {
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"purchase_price", p.PurchasePrice},
		{"current_value", p.CurrentValue},
		{"loan_amount", p.LoanAmount},
		{"weekly_rent", p.WeeklyRent},
		{"annual_expenses", p.AnnualExpenses},
	}
	for _, a := range amounts {
		if err := requireNonNegative(a.field, a.value); err != nil {
			return err
		}
	}
	if p.LoanAmount.IsPositive() {
		return validateLoan(p.LoanAmount, p.InterestRate, p.LoanTerm)
	}
	return nil
}
