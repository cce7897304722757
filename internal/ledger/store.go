// Package ledger owns the authoritative collection of transactions, keeps it
// in sync with a durable slot and answers window totals over it.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/cache"
	"pocketledger/internal/core"
	applog "pocketledger/internal/log"
	"pocketledger/internal/storage"
)

const maxIDAttempts = 8

// ErrIDExhausted is returned by Add when the id generator keeps producing
// ids that are already taken.
var ErrIDExhausted = errors.New("could not generate a unique transaction id")

// Store is the ledger. It is loaded once from its slot at construction and
// re-persists the whole collection after every mutation. A mutation is only
// applied in memory once the slot accepted the new collection.
type Store struct {
	mu       sync.Mutex
	slot     storage.Slot
	key      string
	loc      *time.Location
	newID    func() string
	notifier Notifier
	totals   cache.Cache[string, core.Totals]
	logger   *slog.Logger
	txs      []core.Transaction
}

// New builds a store over slot and loads whatever it holds. Loading never
// fails: a missing, unreadable or corrupt payload yields an empty ledger and
// a warning.
func New(ctx context.Context, slot storage.Slot, opts ...Option) *Store {
	s := defaults()
	for _, opt := range opts {
		opt(s)
	}
	s.slot = slot
	s.logger = s.logger.With(applog.FieldStorageKey, s.key)
	s.txs = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []core.Transaction {
	b, err := s.slot.Read(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.DebugContext(ctx, "No stored ledger, starting empty")
		return nil
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read stored ledger, starting empty",
			applog.FieldOperation, applog.OpLoad, applog.FieldError, err)
		return nil
	}

	txs, skipped, err := decodeLedger(b, s.loc)
	if err != nil {
		s.logger.WarnContext(ctx, "Stored ledger is corrupt, starting empty",
			applog.FieldOperation, applog.OpLoad, applog.FieldError, err, "bytes", len(b))
		return nil
	}
	for _, rerr := range skipped {
		s.logger.WarnContext(ctx, "Skipping unreadable stored transaction",
			applog.FieldOperation, applog.OpLoad,
			applog.FieldRecordIndex, rerr.Index,
			applog.FieldError, rerr.Err)
	}

	s.logger.InfoContext(ctx, "Ledger loaded",
		applog.FieldRecordCount, len(txs), "skipped", len(skipped))
	return txs
}

// Add records a new transaction under a freshly generated id and persists
// the ledger. Inputs are stored as given; callers validate them first.
//
// The date must fall in years 0 through 9999 UTC, the range the stored form
// can represent; anything else fails with core.ErrInvalidDate.
func (s *Store) Add(ctx context.Context, name string, amount decimal.Decimal, category string, date time.Time, isIncome bool) (core.Transaction, error) {
	tx, change, err := s.add(ctx, name, amount, category, date, isIncome)
	if err != nil {
		return core.Transaction{}, err
	}
	s.notify(ctx, change)
	return tx, nil
}

func (s *Store) add(ctx context.Context, name string, amount decimal.Decimal, category string, date time.Time, isIncome bool) (core.Transaction, Change, error) {
	if err := checkStorableDate(date); err != nil {
		return core.Transaction{}, Change{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueID()
	if err != nil {
		return core.Transaction{}, Change{}, err
	}

	tx := core.Transaction{
		ID:       id,
		Name:     name,
		Amount:   amount,
		Category: category,
		// the stored form keeps milliseconds
		Date:     date.Truncate(time.Millisecond),
		IsIncome: isIncome,
	}

	next := make([]core.Transaction, len(s.txs), len(s.txs)+1)
	copy(next, s.txs)
	next = append(next, tx)

	if err := s.commit(ctx, next); err != nil {
		return core.Transaction{}, Change{}, err
	}

	s.logger.InfoContext(ctx, "Transaction added",
		applog.NewFields().
			WithOperation(applog.OpAdd).
			WithTransaction(tx.ID, tx.Name, tx.Amount.String(), tx.Category, tx.IsIncome).
			ToSlice()...)
	return tx, Change{Op: OpAdd, IDs: []string{tx.ID}, Count: len(next)}, nil
}

// Delete removes the transaction with the given id. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	change, err := s.delete(ctx, id)
	if err != nil || change == nil {
		return err
	}
	s.notify(ctx, *change)
	return nil
}

func (s *Store) delete(ctx context.Context, id string) (*Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, kept := s.partition(ByID(id))
	if len(removed) == 0 {
		s.logger.DebugContext(ctx, "Delete of unknown transaction ignored", applog.FieldTransactionID, id)
		return nil, nil
	}

	if err := s.commit(ctx, kept); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Transaction deleted",
		applog.FieldOperation, applog.OpDelete, applog.FieldTransactionID, id)
	return &Change{Op: OpDelete, IDs: []string{id}, Count: len(kept)}, nil
}

// Clear removes every transaction matching pred, or all of them when pred is
// nil. A predicate matching nothing leaves the slot untouched; clearing
// everything always rewrites it.
func (s *Store) Clear(ctx context.Context, pred Predicate) error {
	change, err := s.clear(ctx, pred)
	if err != nil || change == nil {
		return err
	}
	s.notify(ctx, *change)
	return nil
}

func (s *Store) clear(ctx context.Context, pred Predicate) (*Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed, kept []core.Transaction
	if pred == nil {
		removed, kept = s.txs, []core.Transaction{}
	} else {
		removed, kept = s.partition(pred)
		if len(removed) == 0 {
			return nil, nil
		}
	}

	if err := s.commit(ctx, kept); err != nil {
		return nil, err
	}

	ids := make([]string, len(removed))
	for i, t := range removed {
		ids[i] = t.ID
	}
	s.logger.InfoContext(ctx, "Transactions cleared",
		applog.FieldOperation, applog.OpClear, applog.FieldRemoved, len(removed), "all", pred == nil)
	return &Change{Op: OpClear, IDs: ids, Count: len(kept)}, nil
}

// List returns a copy of the ledger in insertion order.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...)
}

// Len returns the number of transactions held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

// Location returns the time zone used for calendar windows.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Key returns the slot key the ledger is stored under.
func (s *Store) Key() string {
	return s.key
}

// DailyTotal aggregates the calendar day of date, ignoring time of day.
func (s *Store) DailyTotal(date time.Time) core.Totals {
	key := "day:" + date.In(s.loc).Format("2006-01-02")
	return s.windowTotals(key, Day(date, s.loc))
}

// MonthlyTotal aggregates one calendar month. month is a time.Month, so
// January is 1 and March is time.March.
func (s *Store) MonthlyTotal(year int, month time.Month) core.Totals {
	key := fmt.Sprintf("month:%04d-%02d", year, int(month))
	return s.windowTotals(key, Month(year, month, s.loc))
}

// YearlyTotal aggregates one calendar year.
func (s *Store) YearlyTotal(year int) core.Totals {
	key := fmt.Sprintf("year:%04d", year)
	return s.windowTotals(key, Year(year, s.loc))
}

func (s *Store) windowTotals(key string, pred Predicate) core.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totals != nil {
		if t, ok := s.totals.Get(key); ok {
			return t
		}
	}
	t := core.SumTotals(filter(s.txs, pred))
	if s.totals != nil {
		s.totals.Set(key, t)
	}
	return t
}

// commit persists next and, once the slot accepted it, makes it current.
func (s *Store) commit(ctx context.Context, next []core.Transaction) error {
	payload, err := encodeLedger(next)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.slot.Write(ctx, s.key, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist ledger",
			applog.FieldOperation, applog.OpPersist, applog.FieldError, err)
		return fmt.Errorf("persist ledger: %w", err)
	}
	s.txs = next
	if s.totals != nil {
		s.totals.Purge()
	}
	return nil
}

func (s *Store) partition(match Predicate) (removed, kept []core.Transaction) {
	kept = make([]core.Transaction, 0, len(s.txs))
	for _, t := range s.txs {
		if match(t) {
			removed = append(removed, t)
		} else {
			kept = append(kept, t)
		}
	}
	return removed, kept
}

func (s *Store) uniqueID() (string, error) {
	taken := make(map[string]struct{}, len(s.txs))
	for _, t := range s.txs {
		taken[t.ID] = struct{}{}
	}
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if _, dup := taken[id]; id != "" && !dup {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// notify publishes c. It runs after the mutation released the lock so a slow
// broker never blocks readers.
func (s *Store) notify(ctx context.Context, c Change) {
	if s.notifier == nil {
		return
	}
	c.Key = s.key
	c.At = time.Now()
	if err := s.notifier.Notify(ctx, c); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish ledger change",
			applog.FieldOperation, applog.OpNotify, "change_op", c.Op, applog.FieldError, err)
	}
}
