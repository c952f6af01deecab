package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yaelahbim/aryastore/internal/cart"
)

// CartSlot stores one shopper's cart blob under a key in the cart_slots
// table. It satisfies cart.Slot.
type CartSlot struct {
	db  *sql.DB
	key string
}

func NewCartSlot(db *sql.DB, key string) *CartSlot {
	return &CartSlot{db: db, key: key}
}

func (s *CartSlot) Get(ctx context.Context) ([]byte, error) {
	const query = `SELECT value FROM cart_slots WHERE key = $1`
	var value []byte
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cart.ErrNoCart
		}
		return nil, fmt.Errorf("querying cart slot: %w", err)
	}
	return value, nil
}

func (s *CartSlot) Set(ctx context.Context, value []byte) error {
	const query = `
		INSERT INTO cart_slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, s.key, value); err != nil {
		return fmt.Errorf("upserting cart slot: %w", err)
	}
	return nil
}

func (s *CartSlot) Delete(ctx context.Context) error {
	const query = `DELETE FROM cart_slots WHERE key = $1`
	if _, err := s.db.ExecContext(ctx, query, s.key); err != nil {
		return fmt.Errorf("deleting cart slot: %w", err)
	}
	return nil
}
