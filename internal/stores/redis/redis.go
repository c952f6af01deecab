// Package redis persists cart slots as single redis keys, the closest
// server-side analogue of the browser storage slot the flow came from.
package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yaelahbim/aryastore/internal/cart"
)

// NewClient builds a client from REDIS_ADDR (and optional REDIS_PASSWORD)
// and verifies the connection with a ping.
func NewClient() (*goredis.Client, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// CartSlot satisfies cart.Slot over one redis key.
type CartSlot struct {
	rdb *goredis.Client
	key string
}

func NewCartSlot(rdb *goredis.Client, key string) *CartSlot {
	return &CartSlot{rdb: rdb, key: key}
}

func (s *CartSlot) Get(ctx context.Context) ([]byte, error) {
	value, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, cart.ErrNoCart
		}
		return nil, fmt.Errorf("reading cart key: %w", err)
	}
	return value, nil
}

func (s *CartSlot) Set(ctx context.Context, value []byte) error {
	if err := s.rdb.Set(ctx, s.key, value, 0).Err(); err != nil {
		return fmt.Errorf("writing cart key: %w", err)
	}
	return nil
}

func (s *CartSlot) Delete(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("deleting cart key: %w", err)
	}
	return nil
}
