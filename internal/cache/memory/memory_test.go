package memory

import (
	"testing"
	"time"
)

func TestSetGetDelete(t *testing.T) {
	m := New(time.Minute)

	if _, ok := m.Get("k"); ok {
		t.Fatalf("empty cache must miss")
	}

	m.Set("k", []byte("v"), time.Minute)
	b, ok := m.Get("k")
	if !ok || string(b) != "v" {
		t.Fatalf("expected hit with %q, got %q ok=%v", "v", b, ok)
	}

	m.Delete("k")
	if _, ok := m.Get("k"); ok {
		t.Fatalf("deleted key must miss")
	}
}

func TestTTLExpiry(t *testing.T) {
	m := New(time.Minute)

	m.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := m.Get("k"); ok {
		t.Fatalf("entry must expire after its TTL")
	}
}
