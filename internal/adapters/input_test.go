package adapters

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

func TestParseInput(t *testing.T) {
	valid := Input{Name: "Rent", Amount: "1200,50", Category: "House", Date: "2024-03-05", Kind: "expense"}

	entry, err := ParseInput(valid, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !entry.Amount.Equal(decimal.RequireFromString("-1200.5")) {
		t.Fatalf("expected negated amount, got %s", entry.Amount)
	}
	if entry.IsIncome || entry.Category != core.House {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if !entry.Date.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", entry.Date)
	}

	income := valid
	income.Kind = "Income"
	income.Category = "Salary"
	entry, err = ParseInput(income, time.UTC)
	if err != nil || !entry.IsIncome || !entry.Amount.IsPositive() {
		t.Fatalf("expected positive income, got %+v (err=%v)", entry, err)
	}
}

func TestParseInputRejects(t *testing.T) {
	base := Input{Name: "Rent", Amount: "10", Category: "House", Date: "2024-03-05", Kind: "expense"}
	longName := make([]byte, maxNameLength+1)
	for i := range longName {
		longName[i] = 'x'
	}

	cases := []struct {
		name   string
		mutate func(*Input)
		want   error
	}{
		{"blank name", func(in *Input) { in.Name = "   " }, core.ErrEmptyName},
		{"long name", func(in *Input) { in.Name = string(longName) }, ErrNameTooLong},
		{"zero amount", func(in *Input) { in.Amount = "0" }, core.ErrInvalidAmount},
		{"negative amount", func(in *Input) { in.Amount = "-5" }, core.ErrInvalidAmount},
		{"text amount", func(in *Input) { in.Amount = "ten" }, core.ErrInvalidAmount},
		{"unknown category", func(in *Input) { in.Category = "Groceries" }, core.ErrInvalidCategory},
		{"bad date", func(in *Input) { in.Date = "05/03/2024" }, core.ErrInvalidDate},
		{"missing kind", func(in *Input) { in.Kind = "" }, ErrInvalidKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			if _, err := ParseInput(in, time.UTC); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseInputNameLengthCountsCharacters(t *testing.T) {
	in := Input{Amount: "10", Category: "Food", Date: "2024-03-05", Kind: "expense"}

	in.Name = strings.Repeat("ש", maxNameLength)
	entry, err := ParseInput(in, time.UTC)
	if err != nil {
		t.Fatalf("expected %d Hebrew characters to be accepted, got %v", maxNameLength, err)
	}
	if entry.Name != in.Name {
		t.Fatalf("name changed: %q", entry.Name)
	}

	in.Name = strings.Repeat("ש", maxNameLength+1)
	if _, err := ParseInput(in, time.UTC); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}
}
