package adapters

import (
	"fmt"
	"time"

	"pocketledger/internal/ledger"
)

// Period names the view a clear request comes from.
type Period string

const (
	PeriodAll     Period = "all"
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Scope is the time window a clear request applies to. Date is used by
// PeriodDaily, Year and Month by the others.
type Scope struct {
	Period Period
	Date   time.Time
	Year   int
	Month  time.Month
}

// AllScope clears the whole ledger.
func AllScope() Scope { return Scope{Period: PeriodAll} }

// DayScope clears one calendar day.
func DayScope(date time.Time) Scope { return Scope{Period: PeriodDaily, Date: date} }

// MonthScope clears one calendar month.
func MonthScope(year int, month time.Month) Scope {
	return Scope{Period: PeriodMonthly, Year: year, Month: month}
}

// YearScope clears one calendar year.
func YearScope(year int) Scope { return Scope{Period: PeriodYearly, Year: year} }

// Predicate translates the scope for ledger.Store.Clear. PeriodAll yields a
// nil predicate, which clears everything.
func (s Scope) Predicate(loc *time.Location) (ledger.Predicate, error) {
	switch s.Period {
	case PeriodAll, "":
		return nil, nil
	case PeriodDaily:
		if s.Date.IsZero() {
			return nil, fmt.Errorf("daily scope needs a date")
		}
		return ledger.Day(s.Date, loc), nil
	case PeriodMonthly:
		if s.Month < time.January || s.Month > time.December {
			return nil, fmt.Errorf("invalid month %d", s.Month)
		}
		return ledger.Month(s.Year, s.Month, loc), nil
	case PeriodYearly:
		return ledger.Year(s.Year, loc), nil
	default:
		return nil, fmt.Errorf("unknown period %q", s.Period)
	}
}
