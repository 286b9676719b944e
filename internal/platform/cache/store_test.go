package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_ExpiresEntriesAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "team:list", []string{"Aliens"})
	if _, ok := store.Get(context.Background(), "team:list"); !ok {
		t.Fatalf("expected fresh entry to be served")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "team:list"); ok {
		t.Fatalf("expected expired entry to be dropped")
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", got)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "user:list", 1)
	store.Set(ctx, "user:id:1", 2)
	store.Set(ctx, "team:list", 3)

	store.DeletePrefix(ctx, "user:")

	if _, ok := store.Get(ctx, "user:id:1"); ok {
		t.Fatalf("expected user entries to be removed")
	}
	if _, ok := store.Get(ctx, "team:list"); !ok {
		t.Fatalf("expected team entry to survive")
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("database unavailable")
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return "recovered", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if v != "recovered" {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestStore_GetOrLoad_InvalidationDuringLoadSkipsStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	v, err := store.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		store.Delete(ctx, "team:list")
		return "stale", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad error: %v", err)
	}
	if v != "stale" {
		t.Fatalf("expected loaded value to be returned, got %v", v)
	}
	if _, ok := store.Get(ctx, "team:list"); ok {
		t.Fatalf("expected value loaded across an invalidation to stay out of the store")
	}
}

func TestStore_GetOrLoad_NilLoader(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(0).GetOrLoad(context.Background(), "k", nil); !errors.Is(err, errNilLoader) {
		t.Fatalf("expected errNilLoader, got %v", err)
	}
}

func TestStore_DeletePrefixEmptyClearsAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "user:list", 1)
	store.Set(ctx, "team:list", 2)

	store.DeletePrefix(ctx, "")

	if got := store.Len(); got != 0 {
		t.Fatalf("expected empty store, len=%d", got)
	}
}
