package adapters

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

// Kind is the income/expense selector of the entry form.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"

	// DateLayout is the form's date format.
	DateLayout = "2006-01-02"

	maxNameLength = 200
)

var (
	ErrInvalidKind = errors.New("invalid transaction kind")
	ErrNameTooLong = errors.New("name too long (max 200 characters)")
)

// Input is the raw content of the entry form.
type Input struct {
	Name     string
	Amount   string
	Category string
	Date     string
	Kind     string
}

// Entry is a validated Input, ready for the ledger. Amount already carries
// the sign for its kind.
type Entry struct {
	Name     string
	Amount   decimal.Decimal
	Category core.Category
	Date     time.Time
	IsIncome bool
}

// ParseInput validates the form fields and converts them to an Entry. The
// amount must be a positive number; it is negated for expenses.
func ParseInput(in Input, loc *time.Location) (Entry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Entry{}, core.ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return Entry{}, ErrNameTooLong
	}

	magnitude, err := core.ParseAmount(in.Amount)
	if err != nil {
		return Entry{}, err
	}

	category, err := core.ParseCategory(strings.TrimSpace(in.Category))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q", err, in.Category)
	}

	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(in.Date), loc)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, in.Date)
	}

	var isIncome bool
	switch Kind(strings.ToLower(strings.TrimSpace(in.Kind))) {
	case KindIncome:
		isIncome = true
	case KindExpense:
		isIncome = false
	default:
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidKind, in.Kind)
	}

	return Entry{
		Name:     name,
		Amount:   core.SignedAmount(magnitude, isIncome),
		Category: category,
		Date:     date,
		IsIncome: isIncome,
	}, nil
}
