package otp

import (
	"context"
	"testing"
	"time"
)

func TestNewCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := NewCode()
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("code %q contains non-digit", code)
			}
		}
	}
}

func TestMemoryStorePutGetForget(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, ok := s.Get(ctx, "a@b.com"); ok {
		t.Fatal("got a code before Put")
	}

	if err := s.Put(ctx, "a@b.com", "123456"); err != nil {
		t.Fatal(err)
	}
	code, ok := s.Get(ctx, "a@b.com")
	if !ok || code != "123456" {
		t.Fatalf("got (%q, %v), want (123456, true)", code, ok)
	}

	// Put overwrites the previous code for the same email.
	if err := s.Put(ctx, "a@b.com", "654321"); err != nil {
		t.Fatal(err)
	}
	if code, _ := s.Get(ctx, "a@b.com"); code != "654321" {
		t.Errorf("code = %q after overwrite", code)
	}

	if err := s.Forget(ctx, "a@b.com"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(ctx, "a@b.com"); ok {
		t.Error("code survived Forget")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	if err := s.Put(ctx, "a@b.com", "123456"); err != nil {
		t.Fatal(err)
	}

	now = now.Add(TTL - time.Second)
	if _, ok := s.Get(ctx, "a@b.com"); !ok {
		t.Fatal("code expired before TTL")
	}

	now = now.Add(2 * time.Second)
	if _, ok := s.Get(ctx, "a@b.com"); ok {
		t.Error("code still valid past TTL")
	}
}
