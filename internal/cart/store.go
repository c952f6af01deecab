package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/yaelahbim/aryastore/pkg/logkey"
)

// ErrNoCart is returned by a Slot when nothing is stored under its key.
var ErrNoCart = errors.New("no cart stored")

// Slot is the durable storage one cart persists into: a single named key
// holding the JSON mapping from product id to quantity. Implementations
// live in internal/stores.
type Slot interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, value []byte) error
	Delete(ctx context.Context) error
}

// Store owns the mutable cart for one checkout session. It loads the cart
// from its slot, writes it back after every mutation, and schedules the
// delayed teardown once a mutation empties the cart. Close cancels that
// timer; a torn-down view must never navigate.
type Store struct {
	slot    Slot
	grace   time.Duration
	onEmpty func()

	mu     sync.Mutex
	cart   Cart
	loaded bool
	active bool
	closed bool
	timer  *time.Timer
}

// NewStore wires a store to its slot. onEmpty runs once, grace after a
// mutation leaves the cart empty, unless the store is closed or the cart
// regains items first.
func NewStore(slot Slot, grace time.Duration, onEmpty func()) *Store {
	return &Store{slot: slot, grace: grace, onEmpty: onEmpty, cart: New()}
}

// Load reads the persisted cart. It reports false when there is no active
// session to resume: nothing stored, an empty mapping, or a payload that
// does not parse. Parse failures are logged and reset to empty, never
// surfaced to the shopper.
func (s *Store) Load(ctx context.Context) (Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.cart = New()
	s.active = false

	raw, err := s.slot.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoCart) {
			slog.Error("reading stored cart", slog.String(logkey.ERROR, err.Error()))
		}
		return s.cart, false
	}

	var m map[string]int
	if err := json.Unmarshal(raw, &m); err != nil {
		slog.Error("parsing stored cart, resetting to empty", slog.String(logkey.ERROR, err.Error()))
		return s.cart, false
	}

	s.cart = FromMap(m)
	s.active = s.cart.Len() > 0
	return s.cart, s.active
}

// Cart returns the current in-memory cart.
func (s *Store) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Active reports whether this store holds a live checkout session. A cart
// emptied by the shopper stays active until the grace timer tears the
// session down, so the empty state can still be shown.
func (s *Store) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// UpdateQuantity sets the product's quantity (zero or less removes it),
// persists the cart and returns the new state.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = UpdateQuantity(s.cart, productID, quantity)
	s.afterMutation(ctx)
	return s.cart
}

// RemoveItem deletes the product from the cart, persists and returns the
// new state.
func (s *Store) RemoveItem(ctx context.Context, productID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = RemoveItem(s.cart, productID)
	s.afterMutation(ctx)
	return s.cart
}

// Clear empties the cart and deletes the stored slot. This is the
// successful-order path; it does not run the grace timer.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = New()
	s.active = false
	s.stopTimer()
	if err := s.slot.Delete(ctx); err != nil {
		slog.Error("clearing stored cart", slog.String(logkey.ERROR, err.Error()))
	}
}

// Close cancels any pending empty-cart teardown. Call it when the owning
// view goes away.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimer()
}

// afterMutation runs with s.mu held.
func (s *Store) afterMutation(ctx context.Context) {
	s.persist(ctx)
	if s.cart.Len() > 0 {
		s.active = true
		s.stopTimer()
		return
	}
	if s.active {
		s.scheduleEmpty()
	}
}

// persist writes the full cart back to the slot. Failures are logged and
// swallowed: persistence is best-effort and never blocks the interaction.
func (s *Store) persist(ctx context.Context) {
	if !s.loaded {
		return
	}
	raw, err := json.Marshal(s.cart.Map())
	if err != nil {
		slog.Error("encoding cart", slog.String(logkey.ERROR, err.Error()))
		return
	}
	if err := s.slot.Set(ctx, raw); err != nil {
		slog.Error("persisting cart", slog.String(logkey.ERROR, err.Error()))
	}
}

func (s *Store) scheduleEmpty() {
	if s.closed || s.onEmpty == nil {
		return
	}
	s.stopTimer()
	s.timer = time.AfterFunc(s.grace, s.onEmpty)
}

func (s *Store) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
