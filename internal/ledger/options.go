package ledger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pocketledger/internal/cache"
	"pocketledger/internal/core"
)

// DefaultKey is the slot key the ledger is stored under.
const DefaultKey = "transactions"

// Option configures a Store.
type Option func(*Store)

// WithKey stores the ledger under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for load warnings and mutation logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocation sets the time zone whose calendar defines days, months and
// years for aggregation.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithNotifier registers a receiver for committed changes.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

// WithTotalsCache memoizes window totals in c. The cache is purged on every
// committed mutation.
func WithTotalsCache(c cache.Cache[string, core.Totals]) Option {
	return func(s *Store) {
		s.totals = c
	}
}

func defaults() *Store {
	return &Store{
		key:    DefaultKey,
		loc:    time.Local,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
}
