package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
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
			v, err := store.GetOrLoad(context.Background(), "predictions", loader)
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

func TestStore_GetOrLoad_ReloadsAfterExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		return int(calls.Add(1)), nil
	}

	first, err := store.GetOrLoad(context.Background(), "schedule", loader)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, _ := store.GetOrLoad(context.Background(), "schedule", loader)
	if first != 1 || second != 1 {
		t.Fatalf("expected cached value 1, got %v and %v", first, second)
	}

	now = now.Add(2 * time.Minute)
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be excluded from Len")
	}
	third, _ := store.GetOrLoad(context.Background(), "schedule", loader)
	if third != 2 {
		t.Fatalf("expected reload after expiry, got %v", third)
	}
}

func TestStore_RefreshKeepsPreviousValueOnFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "schedule", "old")

	boom := errors.New("upstream down")
	if _, err := store.Refresh(ctx, "schedule", func(context.Context) (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected refresh error, got %v", err)
	}
	if v, ok := store.Get(ctx, "schedule"); !ok || v != "old" {
		t.Fatalf("expected previous value to survive, got %v %v", v, ok)
	}

	if _, err := store.Refresh(ctx, "schedule", func(context.Context) (any, error) { return "new", nil }); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if v, _ := store.Get(ctx, "schedule"); v != "new" {
		t.Fatalf("expected refreshed value, got %v", v)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "fpl:bootstrap", 1)
	store.Set(ctx, "fpl:fixtures", 2)
	store.Set(ctx, "predictions", 3)

	if removed := store.DeletePrefix(ctx, "fpl:"); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, ok := store.Get(ctx, "predictions"); !ok {
		t.Fatalf("unrelated key should survive")
	}
}

func TestLoad_Typed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	got, err := Load(ctx, store, "ids", func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected value %v", got)
	}

	store.Set(ctx, "mismatch", 42)
	if _, err := Load(ctx, store, "mismatch", func(context.Context) (string, error) { return "", nil }); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
