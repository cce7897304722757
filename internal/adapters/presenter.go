// Package adapters holds the contract between the ledger and whatever renders
// it: form validation, clear scopes and display formatting.
package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
	"pocketledger/internal/ledger"
	applog "pocketledger/internal/log"
)

// Ledger is the part of ledger.Store the presenter drives.
type Ledger interface {
	Add(ctx context.Context, name string, amount decimal.Decimal, category string, date time.Time, isIncome bool) (core.Transaction, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context, pred ledger.Predicate) error
	List() []core.Transaction
	DailyTotal(date time.Time) core.Totals
	MonthlyTotal(year int, month time.Month) core.Totals
	YearlyTotal(year int) core.Totals
	Location() *time.Location
}

var _ Ledger = (*ledger.Store)(nil)

// Line is one rendered transaction.
type Line struct {
	ID        string
	Text      string
	IsIncome  bool
	Deletable bool
}

// Summary is everything a daily, monthly or yearly panel shows.
type Summary struct {
	Title  string
	Totals FormattedTotals
	Lines  []Line
}

// Presenter turns view actions into ledger calls and ledger state into
// display-ready summaries.
type Presenter struct {
	ledger   Ledger
	currency string
	logger   *slog.Logger
}

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithCurrency sets the currency symbol used in lines.
func WithCurrency(symbol string) PresenterOption {
	return func(p *Presenter) { p.currency = symbol }
}

// WithLogger sets the presenter's logger.
func WithLogger(logger *slog.Logger) PresenterOption {
	return func(p *Presenter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewPresenter(l Ledger, opts ...PresenterOption) *Presenter {
	p := &Presenter{ledger: l, currency: DefaultCurrency, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit validates the form and records the entry. Invalid input never
// reaches the ledger.
func (p *Presenter) Submit(ctx context.Context, in Input) (core.Transaction, error) {
	entry, err := ParseInput(in, p.ledger.Location())
	if err != nil {
		p.logger.DebugContext(ctx, "Rejected entry form", applog.FieldError, err)
		return core.Transaction{}, err
	}
	return p.ledger.Add(ctx, entry.Name, entry.Amount, string(entry.Category), entry.Date, entry.IsIncome)
}

// Remove deletes one transaction.
func (p *Presenter) Remove(ctx context.Context, id string) error {
	return p.ledger.Delete(ctx, id)
}

// Clear removes every transaction in scope.
func (p *Presenter) Clear(ctx context.Context, scope Scope) error {
	pred, err := scope.Predicate(p.ledger.Location())
	if err != nil {
		return fmt.Errorf("clear %s: %w", scope.Period, err)
	}
	return p.ledger.Clear(ctx, pred)
}

// Daily summarizes the calendar day of date. Its lines can be deleted.
func (p *Presenter) Daily(date time.Time) Summary {
	loc := p.ledger.Location()
	return Summary{
		Title:  date.In(loc).Format("02/01/2006"),
		Totals: FormatTotals(p.ledger.DailyTotal(date)),
		Lines:  p.lines(ledger.Day(date, loc), true),
	}
}

// Monthly summarizes one calendar month.
func (p *Presenter) Monthly(year int, month time.Month) Summary {
	title := fmt.Sprintf("%d-%02d", year, int(month))
	if month >= time.January && month <= time.December {
		title = fmt.Sprintf("%s %d", Months[month-1], year)
	}
	return Summary{
		Title:  title,
		Totals: FormatTotals(p.ledger.MonthlyTotal(year, month)),
		Lines:  p.lines(ledger.Month(year, month, p.ledger.Location()), false),
	}
}

// Yearly summarizes one calendar year.
func (p *Presenter) Yearly(year int) Summary {
	return Summary{
		Title:  fmt.Sprintf("%d", year),
		Totals: FormatTotals(p.ledger.YearlyTotal(year)),
		Lines:  p.lines(ledger.Year(year, p.ledger.Location()), false),
	}
}

// lines renders the matching transactions, newest first.
func (p *Presenter) lines(match ledger.Predicate, deletable bool) []Line {
	var txs []core.Transaction
	for _, t := range p.ledger.List() {
		if match(t) {
			txs = append(txs, t)
		}
	}
	core.SortByDateDesc(txs)

	loc := p.ledger.Location()
	out := make([]Line, len(txs))
	for i, t := range txs {
		out[i] = Line{
			ID:        t.ID,
			Text:      FormatLine(t, loc, p.currency),
			IsIncome:  t.IsIncome,
			Deletable: deletable,
		}
	}
	return out
}
