package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/trade-ledger-api/internal/application/trade"
)

var _ trade.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore claves de idempotencia en memoria con expiración. Usado cuando no hay Redis.
type IdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]idemEntry
	now     func() time.Time
}

type idemEntry struct {
	txID    string // vacío mientras la solicitud sigue en curso
	expires time.Time
}

// NewIdempotencyStore crea el store. ttl <= 0 equivale a 24h.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{ttl: ttl, entries: make(map[string]idemEntry), now: time.Now}
}

func (s *IdempotencyStore) Reserve(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expires) {
		return e.txID, false, nil
	}
	s.entries[key] = idemEntry{expires: now.Add(s.ttl)}
	return "", true, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key, txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = idemEntry{txID: txID, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
