package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// DefaultKey is the KV key the ledger is persisted under.
const DefaultKey = "transactions"

// ErrNotFound is returned by Update when no record has the given id.
var ErrNotFound = errors.New("transaction not found")

// Op labels a mutation in change events.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
)

// Event describes a committed mutation, delivered to subscribers after the
// backing store has been written.
type Event struct {
	Op Op        `json:"op"`
	ID string    `json:"id"`
	At time.Time `json:"at"`
}

// Store is the ledger store. Each operation is a single critical section:
// no operation observes another operation's partial effect, and a List
// issued after a mutation always returns the updated state. Subscribers are
// notified after the critical section ends, so a callback may call back
// into the store.
type Store struct {
	mu        sync.Mutex
	kv        KV
	key       string
	now       func() time.Time
	newID     func() string
	recovered bool

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the KV key the ledger is stored under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock overrides the time source used for defaulted OccurredAt values.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides id generation.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a Store over the given KV port.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   DefaultKey,
		now:   time.Now,
		newID: uuid.NewString,
		subs:  make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recovered reports whether an unparsable backing value was ever replaced
// with an empty ledger. The reset itself is logged when it happens; this
// keeps the policy observable to callers.
func (s *Store) Recovered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recovered
}

// Add validates input, assigns a fresh id, defaults OccurredAt to now and
// appends the record.
func (s *Store) Add(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()

	items, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return core.Transaction{}, err
	}

	t := core.Transaction{
		ID:         s.newID(),
		Kind:       in.Kind,
		Title:      in.Title,
		Amount:     in.Amount,
		Category:   in.Category,
		OccurredAt: in.OccurredAt,
	}
	if t.OccurredAt.IsZero() {
		t.OccurredAt = s.now()
	}

	items = append(items, t)
	if err := s.save(ctx, items); err != nil {
		s.mu.Unlock()
		return core.Transaction{}, err
	}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Transaction added",
		"id", t.ID,
		"kind", t.Kind,
		"amount_cents", t.Amount.Cents,
		"category", t.Category)

	s.notify(Event{Op: OpAdd, ID: t.ID, At: s.now()})
	return t, nil
}

// List returns the full current ledger in insertion order. The returned
// slice is a snapshot decoupled from subsequent mutation.
func (s *Store) List(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Update replaces every field except the id. It re-fetches the record by
// id internally instead of trusting any caller-supplied copy.
func (s *Store) Update(ctx context.Context, id string, in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()

	items, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return core.Transaction{}, err
	}

	idx := -1
	for i, t := range items {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return core.Transaction{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}

	t := core.Transaction{
		ID:         id,
		Kind:       in.Kind,
		Title:      in.Title,
		Amount:     in.Amount,
		Category:   in.Category,
		OccurredAt: in.OccurredAt,
	}
	if t.OccurredAt.IsZero() {
		t.OccurredAt = items[idx].OccurredAt
	}

	items[idx] = t
	if err := s.save(ctx, items); err != nil {
		s.mu.Unlock()
		return core.Transaction{}, err
	}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Transaction updated", "id", id)
	s.notify(Event{Op: OpUpdate, ID: id, At: s.now()})
	return t, nil
}

// Remove deletes the record with the given id. Deleting a missing id is a
// no-op by design; Remove never fails for an absent record.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()

	items, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	kept := items[:0:0]
	for _, t := range items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(items) {
		s.mu.Unlock()
		return nil
	}

	if err := s.save(ctx, kept); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Transaction removed", "id", id)
	s.notify(Event{Op: OpRemove, ID: id, At: s.now()})
	return nil
}

// Subscribe registers fn to receive change events after each committed
// mutation. Callbacks run outside the store mutex and may re-enter the
// store, e.g. to List the new state. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// notify is called after the mutating critical section has released s.mu;
// it must never run while the store mutex is held.
func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// load reads and decodes the ledger. An absent key is an empty ledger. An
// unparsable value is also treated as empty: the ledger is not a system of
// record for anything externally reconstructable, so the store degrades
// gracefully instead of propagating the corruption. The reset is logged
// and flagged via Recovered.
func (s *Store) load(ctx context.Context) ([]core.Transaction, error) {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}
	items, err := decode(data)
	if err != nil {
		slog.WarnContext(ctx, "Persisted ledger unparsable, resetting to empty",
			"key", s.key,
			"bytes", len(data),
			"error", err)
		s.recovered = true
		return nil, nil
	}
	return items, nil
}

func (s *Store) save(ctx context.Context, items []core.Transaction) error {
	data, err := encode(items)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
