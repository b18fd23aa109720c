package output

import (
	"fmt"

	"github.com/kanewilliamsbusiness07-debug/PWP1-sub003/internal/calculation"
)

// DefaultAssumptions lists the modelling assumptions shown with plan reports.
var DefaultAssumptions = []string{
	"Tax brackets, levy and repayment thresholds are held at the selected year's rates",
	"Franking credits offset tax payable but are never refunded",
	"Capital gains are discounted before being added to taxable income",
	fmt.Sprintf("Cash compounds at %s unless the plan selects its savings rate", FormatRate(calculation.DefaultCashRate)),
	fmt.Sprintf("Other assets grow at %s a year", FormatRate(calculation.DefaultOtherGrowthRate)),
	"Contributions are made monthly and returns are credited once a year",
}
