package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore(8, time.Minute)
	ctx := context.Background()

	var out []string
	if ok, err := store.Get(ctx, KeyEnquiries, &out); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, KeyEnquiries, []string{"a", "b"}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := store.Get(ctx, KeyEnquiries, &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(out) != 2 || out[1] != "b" {
		t.Fatalf("unexpected value %v", out)
	}

	if err := store.Delete(ctx, KeyEnquiries, "missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := store.Get(ctx, KeyEnquiries, &out); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestMemoryStoreEntryTTL(t *testing.T) {
	store := NewMemoryStore(8, time.Minute)
	ctx := context.Background()

	if err := store.Set(ctx, "short", 1, 20*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(40 * time.Millisecond)
	if ok, _ := store.Get(ctx, "short", nil); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	if _, err := New(Options{Type: "memcached"}); err == nil {
		t.Fatal("expected error for unknown cache type")
	}
	store, err := New(Options{})
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
}
