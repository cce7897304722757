package adapters

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

// DefaultCurrency is the symbol appended to transaction lines.
const DefaultCurrency = "₪"

// Months are the month tab labels, January first.
var Months = []string{
	"January", "February", "March", "April",
	"May", "June", "July", "August",
	"September", "October", "November", "December",
}

// Years returns the year tabs, newest first, from last down to first.
func Years(first, last int) []int {
	if last < first {
		return nil
	}
	out := make([]int, 0, last-first+1)
	for y := last; y >= first; y-- {
		out = append(out, y)
	}
	return out
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormattedTotals is Totals ready for display. Expenses carries a leading
// minus sign.
type FormattedTotals struct {
	Income          string
	Expenses        string
	Balance         string
	BalanceNegative bool
}

// FormatTotals renders totals the way the summary panels show them.
func FormatTotals(t core.Totals) FormattedTotals {
	return FormattedTotals{
		Income:          FormatAmount(t.Income),
		Expenses:        "-" + FormatAmount(t.Expenses),
		Balance:         FormatAmount(t.Balance),
		BalanceNegative: t.Balance.IsNegative(),
	}
}

// FormatLine renders a transaction as "05/03/2024 Name (Category): +100 ₪".
// Income gets an explicit plus; expenses already carry their minus.
func FormatLine(t core.Transaction, loc *time.Location, currency string) string {
	sign := ""
	if t.IsIncome {
		sign = "+"
	}
	return fmt.Sprintf("%s %s (%s): %s%s %s",
		t.Date.In(loc).Format("02/01/2006"), t.Name, t.Category, sign, t.Amount.String(), currency)
}
