package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

// dateLayout matches what browsers emit for Date.toJSON.
const dateLayout = "2006-01-02T15:04:05.000Z"

// Years representable by dateLayout.
const (
	minStorableYear = 0
	maxStorableYear = 9999
)

// record is the persisted shape of a transaction. The category travels as
// "type" for compatibility with existing payloads.
type record struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Amount   json.Number `json:"amount"`
	Type     string      `json:"type"`
	Date     string      `json:"date"`
	IsIncome bool        `json:"isIncome"`
}

// storedRecord is the lenient read-side view: pointers tell missing fields
// apart from zero values.
type storedRecord struct {
	ID       *string          `json:"id"`
	Name     string           `json:"name"`
	Amount   *decimal.Decimal `json:"amount"`
	Type     string           `json:"type"`
	Date     *string          `json:"date"`
	IsIncome *bool            `json:"isIncome"`
}

var (
	errMissingID     = errors.New("missing id")
	errMissingAmount = errors.New("missing amount")
	errMissingDate   = errors.New("missing date")
	errDuplicateID   = errors.New("duplicate id")
)

// RecordError describes a stored record that could not be loaded.
type RecordError struct {
	Index int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e RecordError) Unwrap() error {
	return e.Err
}

func encodeLedger(txs []core.Transaction) ([]byte, error) {
	out := make([]record, len(txs))
	for i, t := range txs {
		out[i] = record{
			ID:       t.ID,
			Name:     t.Name,
			Amount:   json.Number(t.Amount.String()),
			Type:     t.Category,
			Date:     t.Date.UTC().Format(dateLayout),
			IsIncome: t.IsIncome,
		}
	}
	return json.Marshal(out)
}

// decodeLedger parses a stored payload record by record. A payload that is
// not a JSON array is an error; individual bad records are reported and
// skipped.
func decodeLedger(b []byte, loc *time.Location) ([]core.Transaction, []RecordError, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode ledger payload: %w", err)
	}

	txs := make([]core.Transaction, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	var skipped []RecordError
	for i, r := range raw {
		t, err := decodeRecord(r, loc)
		if err == nil {
			if _, dup := seen[t.ID]; dup {
				err = errDuplicateID
			}
		}
		if err != nil {
			skipped = append(skipped, RecordError{Index: i, Err: err})
			continue
		}
		seen[t.ID] = struct{}{}
		txs = append(txs, t)
	}
	return txs, skipped, nil
}

func decodeRecord(b json.RawMessage, loc *time.Location) (core.Transaction, error) {
	var r storedRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return core.Transaction{}, err
	}
	if r.ID == nil || *r.ID == "" {
		return core.Transaction{}, errMissingID
	}
	if r.Amount == nil {
		return core.Transaction{}, errMissingAmount
	}
	if r.Date == nil {
		return core.Transaction{}, errMissingDate
	}
	date, err := parseDate(*r.Date, loc)
	if err != nil {
		return core.Transaction{}, err
	}

	isIncome := false
	if r.IsIncome != nil {
		isIncome = *r.IsIncome
	}

	return core.Transaction{
		ID:       *r.ID,
		Name:     r.Name,
		Amount:   *r.Amount,
		Category: r.Type,
		Date:     date,
		IsIncome: isIncome,
	}, nil
}

// checkStorableDate rejects instants whose UTC year dateLayout cannot write
// in a form parseDate reads back.
func checkStorableDate(t time.Time) error {
	if y := t.UTC().Year(); y < minStorableYear || y > maxStorableYear {
		return fmt.Errorf("%w: year %d outside %d-%d", core.ErrInvalidDate, y, minStorableYear, maxStorableYear)
	}
	return nil
}

// parseDate accepts RFC 3339 instants and, for hand-edited payloads, zone-less
// date-times and bare dates interpreted in loc.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, s)
}
