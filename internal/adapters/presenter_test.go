package adapters

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"pocketledger/internal/core"
	"pocketledger/internal/ledger"
	"pocketledger/internal/storage/memory"
)

func newTestPresenter(t *testing.T) (*Presenter, *ledger.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := ledger.New(context.Background(), memory.New(),
		ledger.WithLocation(time.UTC), ledger.WithLogger(logger))
	return NewPresenter(store, WithLogger(logger)), store
}

func submit(t *testing.T, p *Presenter, name, amount, category, date, kind string) core.Transaction {
	t.Helper()
	tx, err := p.Submit(context.Background(), Input{Name: name, Amount: amount, Category: category, Date: date, Kind: kind})
	if err != nil {
		t.Fatalf("submit %s: %v", name, err)
	}
	return tx
}

func TestPresenterSubmitInvalidDoesNotReachLedger(t *testing.T) {
	p, store := newTestPresenter(t)
	_, err := p.Submit(context.Background(), Input{Name: "", Amount: "10", Category: "Food", Date: "2024-03-05", Kind: "expense"})
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty ledger, got %d", store.Len())
	}
}

func TestPresenterDaily(t *testing.T) {
	p, _ := newTestPresenter(t)
	submit(t, p, "Pay", "100", "Salary", "2024-03-05", "income")
	submit(t, p, "Bread", "4.5", "Food", "2024-03-05", "expense")
	submit(t, p, "Bus", "3", "Transportation", "2024-03-06", "expense")

	s := p.Daily(time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC))
	if s.Title != "05/03/2024" {
		t.Fatalf("unexpected title %q", s.Title)
	}
	if s.Totals.Income != "100.00" || s.Totals.Expenses != "-4.50" || s.Totals.Balance != "95.50" {
		t.Fatalf("unexpected totals: %+v", s.Totals)
	}
	if len(s.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(s.Lines))
	}
	for _, l := range s.Lines {
		if !l.Deletable || l.ID == "" {
			t.Fatalf("daily lines must be deletable with an id: %+v", l)
		}
	}
}

func TestPresenterMonthlyAndYearlyOrder(t *testing.T) {
	p, _ := newTestPresenter(t)
	submit(t, p, "Early", "1", "Other", "2024-03-01", "expense")
	submit(t, p, "Late", "2", "Other", "2024-03-20", "expense")
	submit(t, p, "Next year", "5", "Other", "2025-01-01", "expense")

	m := p.Monthly(2024, time.March)
	if m.Title != "March 2024" || len(m.Lines) != 2 {
		t.Fatalf("unexpected monthly summary: %+v", m)
	}
	if m.Lines[0].Text != "20/03/2024 Late (Other): -2 ₪" {
		t.Fatalf("expected newest first, got %q", m.Lines[0].Text)
	}
	if m.Lines[0].Deletable {
		t.Fatalf("monthly lines are read-only")
	}

	y := p.Yearly(2024)
	if y.Title != "2024" || len(y.Lines) != 2 || y.Totals.Expenses != "-3.00" {
		t.Fatalf("unexpected yearly summary: %+v", y)
	}
}

func TestPresenterRemoveAndClear(t *testing.T) {
	p, store := newTestPresenter(t)
	a := submit(t, p, "A", "1", "Other", "2024-03-01", "expense")
	submit(t, p, "B", "1", "Other", "2024-04-01", "expense")
	submit(t, p, "C", "1", "Other", "2025-04-01", "expense")
	submit(t, p, "D", "1", "Other", "2025-05-01", "expense")

	ctx := context.Background()
	if err := p.Remove(ctx, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := p.Clear(ctx, MonthScope(2024, time.April)); err != nil {
		t.Fatalf("clear month: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 left, got %d", store.Len())
	}
	if err := p.Clear(ctx, DayScope(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("clear day: %v", err)
	}
	if err := p.Clear(ctx, YearScope(2024)); err != nil {
		t.Fatalf("clear empty year: %v", err)
	}
	if store.Len() != 1 || store.List()[0].Name != "C" {
		t.Fatalf("unexpected remaining: %+v", store.List())
	}
	if err := p.Clear(ctx, AllScope()); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty ledger")
	}
}

func TestScopePredicateErrors(t *testing.T) {
	cases := []Scope{
		{Period: PeriodDaily},
		{Period: PeriodMonthly, Year: 2024, Month: 13},
		{Period: "weekly"},
	}
	for _, s := range cases {
		if _, err := s.Predicate(time.UTC); err == nil {
			t.Fatalf("expected error for %+v", s)
		}
	}
	if pred, err := AllScope().Predicate(time.UTC); err != nil || pred != nil {
		t.Fatalf("all scope must yield nil predicate")
	}
}
