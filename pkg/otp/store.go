// Package otp stores the short-lived signup verification codes.
//
// Codes are keyed by email and expire after TTL. The store is injected into
// the auth service so the signup flow is testable and so a multi-instance
// deployment can share state through redis.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// TTL is how long a code stays valid after being issued.
const TTL = 10 * time.Minute

// Store is the keyed code store. Put overwrites any code previously issued
// for the email; Get reports whether an unexpired code exists; Forget
// consumes a code after successful verification.
type Store interface {
	Put(ctx context.Context, email, code string) error
	Get(ctx context.Context, email string) (string, bool)
	Forget(ctx context.Context, email string) error
}

// NewCode generates a random 6-digit code.
func NewCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the platform's entropy source is broken.
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// ── In-memory store ───────────────────────────────────────────────────────────

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore keeps codes in the process. Codes are lost on restart, which
// callers tolerate by re-requesting one. Suitable for dev and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = memoryEntry{code: code, expiresAt: s.now().Add(TTL)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok {
		return "", false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, email)
		return "", false
	}
	return e.code, true
}

func (s *MemoryStore) Forget(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
