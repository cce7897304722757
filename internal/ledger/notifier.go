package ledger

import (
	"context"
	"time"
)

// Change operations.
const (
	OpAdd    = "add"
	OpDelete = "delete"
	OpClear  = "clear"
)

// Change describes a committed mutation. It names the affected ids, never
// the transactions themselves.
type Change struct {
	Op    string
	Key   string
	IDs   []string
	Count int
	At    time.Time
}

// Notifier receives committed changes. Errors are logged by the store and
// never undo the mutation.
type Notifier interface {
	Notify(ctx context.Context, c Change) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, c Change) error

func (f NotifierFunc) Notify(ctx context.Context, c Change) error {
	return f(ctx, c)
}
