package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical categories offered by the input form. The ledger itself stores
// any string.
const (
	House          Category = "House"
	Communication  Category = "Communication"
	Food           Category = "Food"
	Transportation Category = "Transportation"
	Clothes        Category = "Clothes"
	Pharm          Category = "Pharm"
	Insurance      Category = "Insurance"
	Education      Category = "Education"
	Entertainment  Category = "Entertainment"
	Pets           Category = "Pets"
	Salary         Category = "Salary"
	Investment     Category = "Investment"
	Business       Category = "Business"
	Freelance      Category = "Freelance"
	Other          Category = "Other"
)

type (
	Category string

	// Transaction is a single income or expense entry. Amount is signed:
	// positive for income, negative for expenses.
	Transaction struct {
		ID       string
		Name     string
		Amount   decimal.Decimal
		Category string
		Date     time.Time
		IsIncome bool
	}

	// Totals is the aggregate of a window of transactions. Expenses is a
	// positive magnitude, Balance is the signed net.
	Totals struct {
		Income   decimal.Decimal
		Expenses decimal.Decimal
		Balance  decimal.Decimal
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("invalid date")
)

var categories = []Category{
	House, Communication, Food, Transportation, Clothes, Pharm, Insurance,
	Education, Entertainment, Pets, Salary, Investment, Business, Freelance, Other,
}

// Categories returns the canonical category set in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory maps user input onto the closed category set.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// IsValid reports whether c belongs to the canonical set.
func (c Category) IsValid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

func (c Category) String() string {
	return string(c)
}

// ZeroTotals returns totals for an empty window.
func ZeroTotals() Totals {
	return Totals{Income: decimal.Zero, Expenses: decimal.Zero, Balance: decimal.Zero}
}

// Equal compares totals numerically.
func (t Totals) Equal(o Totals) bool {
	return t.Income.Equal(o.Income) && t.Expenses.Equal(o.Expenses) && t.Balance.Equal(o.Balance)
}

// SumTotals aggregates txs. Amounts are added as stored; the expense side is
// reported as a magnitude.
func SumTotals(txs []Transaction) Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range txs {
		if t.IsIncome {
			income = income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount)
		}
	}
	return Totals{
		Income:   income,
		Expenses: expenses.Abs(),
		Balance:  income.Add(expenses),
	}
}
