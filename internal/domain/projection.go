package domain

import (
	"github.com/shopspring/decimal"
)

// CashRatePolicy selects which rate compounds cash and savings balances.
type CashRatePolicy string

const (
	// CashRateFixed compounds cash at the engine's default cash rate.
	CashRateFixed CashRatePolicy = "fixed"
	// CashRateAssumption compounds cash at ProjectionAssumptions.SavingsRate.
	CashRateAssumption CashRatePolicy = "assumption"
)

// ProjectionAssumptions are the caller-supplied growth and return rates.
type ProjectionAssumptions struct {
	InflationRate      decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	SalaryGrowthRate   decimal.Decimal `yaml:"salary_growth_rate" json:"salaryGrowthRate"`
	ShareReturnRate    decimal.Decimal `yaml:"share_return_rate" json:"shareReturnRate"`
	PropertyGrowthRate decimal.Decimal `yaml:"property_growth_rate" json:"propertyGrowthRate"`
	SavingsRate        decimal.Decimal `yaml:"savings_rate" json:"savingsRate"`
	SuperReturnRate    decimal.Decimal `yaml:"super_return_rate" json:"superReturnRate"`
	WithdrawalRate     decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawalRate"`
	RentGrowthRate     decimal.Decimal `yaml:"rent_growth_rate" json:"rentGrowthRate"`
	CashRatePolicy     CashRatePolicy  `yaml:"cash_rate_policy,omitempty" json:"cashRatePolicy,omitempty"`
}

// RetirementInput drives the year-by-year accumulation projection.
// AnnualSalary is optional; when positive each year also reports the tax on
// that year's salary.
type RetirementInput struct {
	CurrentAge          int             `yaml:"current_age" json:"currentAge"`
	RetirementAge       int             `yaml:"retirement_age" json:"retirementAge"`
	CurrentSavings      decimal.Decimal `yaml:"current_savings" json:"currentSavings"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
	AnnualReturn        decimal.Decimal `yaml:"annual_return" json:"annualReturn"`
	InflationRate       decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	AnnualSalary        decimal.Decimal `yaml:"annual_salary" json:"annualSalary"`
	SalaryGrowthRate    decimal.Decimal `yaml:"salary_growth_rate" json:"salaryGrowthRate"`
}

// YearlyProjection is one year of an accumulation projection.
type YearlyProjection struct {
	Age                int             `json:"age"`
	Year               int             `json:"year"`
	Contributions      decimal.Decimal `json:"contributions"`
	BeginningBalance   decimal.Decimal `json:"beginningBalance"`
	InvestmentReturn   decimal.Decimal `json:"investmentReturn"`
	EndingBalance      decimal.Decimal `json:"endingBalance"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	TotalReturns       decimal.Decimal `json:"totalReturns"`
	RealValue          decimal.Decimal `json:"realValue"`

	Salary         decimal.Decimal `json:"salary"`
	Tax            decimal.Decimal `json:"tax"`
	AfterTaxIncome decimal.Decimal `json:"afterTaxIncome"`
}

// RetirementFunds is the superannuation-style balance feeding the lump sum.
type RetirementFunds struct {
	Balance             decimal.Decimal `yaml:"balance" json:"balance"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
}

// NetWorthInput is a client's balance sheet plus ongoing savings.
type NetWorthInput struct {
	CurrentAge           int                  `yaml:"current_age" json:"currentAge"`
	RetirementAge        int                  `yaml:"retirement_age" json:"retirementAge"`
	Assets               []Asset              `yaml:"assets" json:"assets"`
	InvestmentProperties []InvestmentProperty `yaml:"investment_properties" json:"investmentProperties"`
	Liabilities          []Liability          `yaml:"liabilities" json:"liabilities"`
	MonthlySavings       decimal.Decimal      `yaml:"monthly_savings" json:"monthlySavings"`
	Retirement           RetirementFunds      `yaml:"retirement" json:"retirement"`
}

// AssetClassProjection is one asset class compounded to retirement.
type AssetClassProjection struct {
	Class          AssetClass      `json:"class"`
	CurrentValue   decimal.Decimal `json:"currentValue"`
	GrowthRate     decimal.Decimal `json:"growthRate"`
	Contributions  decimal.Decimal `json:"contributions"`
	ProjectedValue decimal.Decimal `json:"projectedValue"`
}

// PropertyProjection is one investment property at retirement.
type PropertyProjection struct {
	Name                 string          `json:"name"`
	CurrentValue         decimal.Decimal `json:"currentValue"`
	ProjectedValue       decimal.Decimal `json:"projectedValue"`
	RemainingLoan        decimal.Decimal `json:"remainingLoan"`
	ProjectedAnnualRent  decimal.Decimal `json:"projectedAnnualRent"`
	ProjectedExpenses    decimal.Decimal `json:"projectedExpenses"`
	RemainingDebtService decimal.Decimal `json:"remainingDebtService"`
}

// LiabilityProjection is one liability at retirement.
type LiabilityProjection struct {
	Name                 string          `json:"name"`
	CurrentBalance       decimal.Decimal `json:"currentBalance"`
	RemainingBalance     decimal.Decimal `json:"remainingBalance"`
	RemainingDebtService decimal.Decimal `json:"remainingDebtService"`
}

// NetWorthProjection aggregates a client's position at retirement.
type NetWorthProjection struct {
	YearsToRetirement    int                    `json:"yearsToRetirement"`
	AssetClasses         []AssetClassProjection `json:"assetClasses"`
	InvestmentProperties []PropertyProjection   `json:"investmentProperties"`
	Liabilities          []LiabilityProjection  `json:"liabilities"`

	TotalAssets          decimal.Decimal `json:"totalAssets"`
	TotalLiabilities     decimal.Decimal `json:"totalLiabilities"`
	NetWorthAtRetirement decimal.Decimal `json:"netWorthAtRetirement"`
	RealNetWorth         decimal.Decimal `json:"realNetWorth"`

	RetirementLumpSum     decimal.Decimal `json:"retirementLumpSum"`
	WithdrawalIncome      decimal.Decimal `json:"withdrawalIncome"`
	ProjectedRentalIncome decimal.Decimal `json:"projectedRentalIncome"`
	ProjectedExpenses     decimal.Decimal `json:"projectedExpenses"`
	RemainingDebtService  decimal.Decimal `json:"remainingDebtService"`
	PassiveIncome         decimal.Decimal `json:"passiveIncome"`
}

// DrawdownYear is one year of retirement drawdown.
type DrawdownYear struct {
	Age              int             `json:"age"`
	Year             int             `json:"year"`
	BeginningBalance decimal.Decimal `json:"beginningBalance"`
	Withdrawal       decimal.Decimal `json:"withdrawal"`
	InvestmentReturn decimal.Decimal `json:"investmentReturn"`
	EndingBalance    decimal.Decimal `json:"endingBalance"`
}

// DrawdownProjection summarizes drawdown from retirement to end age.
type DrawdownProjection struct {
	Years          []DrawdownYear  `json:"years"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	TotalWithdrawn decimal.Decimal `json:"totalWithdrawn"`
	FinalBalance   decimal.Decimal `json:"finalBalance"`
	Depleted       bool            `json:"depleted"`
	DepletionAge   int             `json:"depletionAge,omitempty"`
	LongevityYears int             `json:"longevityYears"`
}
