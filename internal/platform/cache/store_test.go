package cache

import (
	"context"
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "players:id:1", "salah")

	v, ok := store.Get(ctx, "players:id:1")
	if !ok {
		t.Fatal("expected hit")
	}
	if got, _ := v.(string); got != "salah" {
		t.Fatalf("unexpected value: %v", v)
	}

	if _, ok := store.Get(ctx, "players:id:2"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestStore_ExpiredEntryMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(10 * time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "k", 1)
	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", got)
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()

	store.Set(ctx, "k", 1)
	time.Sleep(15 * time.Millisecond)

	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatal("expected entry to survive with zero ttl")
	}
}

func TestStore_PurgeDropsEverything(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "a", 1)
	store.Set(ctx, "b", 2)
	store.Purge(ctx)

	if got := store.Len(); got != 0 {
		t.Fatalf("expected empty store after purge, len=%d", got)
	}
	if _, ok := store.Get(ctx, "a"); ok {
		t.Fatal("expected miss after purge")
	}
}

func TestStore_DeleteAndEmptyKey(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "", "ignored")
	if got := store.Len(); got != 0 {
		t.Fatalf("empty key should not be stored, len=%d", got)
	}

	store.Set(ctx, "k", 1)
	store.Delete(ctx, "k")
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
}
