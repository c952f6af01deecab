package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yaelahbim/aryastore/internal/cart"
)

const sessionCookie = "checkout_session"

// sessionStore owns one cart.Store per shopper, keyed by the session
// cookie. The store's empty-cart grace timer tears the session down, which
// is the service-side equivalent of navigating away from checkout: the next
// request finds no live cart and gets a redirect signal.
type sessionStore struct {
	slots SlotFactory
	grace time.Duration

	mu   sync.Mutex
	byID map[string]*cart.Store
}

func newSessionStore(slots SlotFactory, grace time.Duration) *sessionStore {
	return &sessionStore{
		slots: slots,
		grace: grace,
		byID:  make(map[string]*cart.Store),
	}
}

// get returns the live store for the session, creating and loading it from
// durable storage when the session is not in memory (fresh process, or a
// reload after teardown).
func (ss *sessionStore) get(ctx context.Context, id string) *cart.Store {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if store, ok := ss.byID[id]; ok {
		return store
	}
	store := cart.NewStore(ss.slots(id), ss.grace, func() { ss.drop(id) })
	store.Load(ctx)
	ss.byID[id] = store
	return store
}

// drop tears a session down and cancels its pending timer.
func (ss *sessionStore) drop(id string) {
	ss.mu.Lock()
	store, ok := ss.byID[id]
	delete(ss.byID, id)
	ss.mu.Unlock()

	if ok {
		store.Close()
	}
}

// Close tears down every session, cancelling all pending timers.
func (ss *sessionStore) Close() {
	ss.mu.Lock()
	stores := make([]*cart.Store, 0, len(ss.byID))
	for id, store := range ss.byID {
		stores = append(stores, store)
		delete(ss.byID, id)
	}
	ss.mu.Unlock()

	for _, store := range stores {
		store.Close()
	}
}

// session resolves the shopper's store from the session cookie. With create
// set, a missing cookie starts a new session; otherwise it reports false.
func (h *Handler) session(c *gin.Context, create bool) (string, *cart.Store, bool) {
	id, err := c.Cookie(sessionCookie)
	if err == nil && id != "" {
		return id, h.sessions.get(c.Request.Context(), id), true
	}
	if !create {
		return "", nil, false
	}
	id = uuid.NewString()
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id, h.sessions.get(c.Request.Context(), id), true
}

// landingRedirect is the navigation signal the presentation layer acts on.
// replace marks a non-recoverable transition (no active session), push a
// user-initiated back action.
func landingRedirect(replace bool) gin.H {
	return gin.H{"redirect": gin.H{"target": "/", "replace": replace}}
}
