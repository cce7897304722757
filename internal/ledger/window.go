package ledger

import (
	"time"

	"pocketledger/internal/core"
)

// Predicate selects transactions, for Clear and for window totals.
type Predicate func(core.Transaction) bool

// Day matches transactions on the calendar day of date in loc, whatever
// their time of day.
func Day(date time.Time, loc *time.Location) Predicate {
	y, m, d := date.In(loc).Date()
	return func(t core.Transaction) bool {
		ty, tm, td := t.Date.In(loc).Date()
		return ty == y && tm == m && td == d
	}
}

// Month matches transactions in the given year and month in loc.
func Month(year int, month time.Month, loc *time.Location) Predicate {
	return func(t core.Transaction) bool {
		ty, tm, _ := t.Date.In(loc).Date()
		return ty == year && tm == month
	}
}

// Year matches transactions in the given year in loc.
func Year(year int, loc *time.Location) Predicate {
	return func(t core.Transaction) bool {
		return t.Date.In(loc).Year() == year
	}
}

// ByID matches a single transaction.
func ByID(id string) Predicate {
	return func(t core.Transaction) bool {
		return t.ID == id
	}
}

func filter(txs []core.Transaction, keep Predicate) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
