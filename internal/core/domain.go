package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

type (
	// Kind distinguishes money going out from money coming in.
	Kind string

	// Money is an amount in cents. Sums stay exact at 2-decimal display
	// precision; rounding happens only when formatting.
	Money struct {
		Cents int64
	}

	// Transaction is a single ledger record. ID is assigned by the store
	// and never reused; every other field is replaced wholesale on update.
	Transaction struct {
		ID         string
		Kind       Kind
		Title      string
		Amount     Money
		Category   string
		OccurredAt time.Time
	}

	// TransactionInput carries the caller-supplied fields for add/update.
	// A zero OccurredAt means "now" and is filled in by the store.
	TransactionInput struct {
		Kind       Kind
		Title      string
		Amount     Money
		Category   string
		OccurredAt time.Time
	}
)

var (
	ErrInvalidKind   = errors.New("invalid kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyCategory = errors.New("empty category")
)

func (k Kind) Validate() error {
	switch k {
	case Expense, Income:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (in TransactionInput) Validate() error {
	if err := in.Kind.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(in.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(in.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
