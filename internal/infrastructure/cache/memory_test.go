package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "k", "v", time.Minute)
	if got, ok := store.Get(ctx, "k"); !ok || got != "v" {
		t.Fatalf("Get = %q, %v", got, ok)
	}

	store.Delete(ctx, "k")
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected key to be gone after delete")
	}
}

func TestMemoryStore_Expiration(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "k", "v", -time.Second)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected expired key to miss")
	}
}

func TestMemoryStore_Close(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Close is idempotent and the store stays usable for reads/writes.
	if err := store.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	store.Set(ctx, "k", "v", time.Minute)
	if got, ok := store.Get(ctx, "k"); !ok || got != "v" {
		t.Fatalf("store unusable after Close: %q, %v", got, ok)
	}
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Get(context.Background(), "absent"); ok {
		t.Fatal("expected miss for unknown key")
	}
}
