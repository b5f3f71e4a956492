package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"parcacote/internal/domain/playgrounds"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func pg(id int64) playgrounds.Playground {
	return playgrounds.Playground{ID: id, Name: "P", Status: playgrounds.StatusApproved}
}

func fallbackSet() []playgrounds.Playground {
	return []playgrounds.Playground{pg(101), pg(102)}
}

func newTestCache(fetchAll CollectionFetcher, fetchOne DetailFetcher, clk *fakeClock) *PlaygroundCache {
	return New(fetchAll, fetchOne, fallbackSet, WithClock(clk.now))
}

func TestGetAllCachesWithinWindow(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	calls := 0
	fetchAll := func(ctx context.Context) ([]playgrounds.Playground, error) {
		calls++
		return []playgrounds.Playground{pg(1), pg(2)}, nil
	}

	c := newTestCache(fetchAll, nil, clk)
	ctx := context.Background()

	if _, fb, err := c.GetAll(ctx); err != nil || fb {
		t.Fatalf("first call: fallback=%v err=%v", fb, err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	// Just inside the window: served from cache, no fetch.
	clk.advance(DefaultTTL - time.Second)
	if _, _, err := c.GetAll(ctx); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("fetch ran inside validity window, calls = %d", calls)
	}

	// Just past the window: refetched.
	clk.advance(2 * time.Second)
	if _, _, err := c.GetAll(ctx); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("stale entry not refetched, calls = %d", calls)
	}
}

func TestGetAllFallbackOnError(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	fetchAll := func(ctx context.Context) ([]playgrounds.Playground, error) {
		return nil, errors.New("connection refused")
	}

	c := newTestCache(fetchAll, nil, clk)

	got, fb, err := c.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !fb {
		t.Fatal("expected fallback flag")
	}
	if len(got) != len(fallbackSet()) {
		t.Fatalf("got %d entries, want fallback set", len(got))
	}
}

func TestGetAllFallbackNotCached(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	fail := true
	calls := 0
	fetchAll := func(ctx context.Context) ([]playgrounds.Playground, error) {
		calls++
		if fail {
			return nil, errors.New("down")
		}
		return []playgrounds.Playground{pg(1)}, nil
	}

	c := newTestCache(fetchAll, nil, clk)
	ctx := context.Background()

	if _, fb, _ := c.GetAll(ctx); !fb {
		t.Fatal("expected fallback on failure")
	}

	// The remote comes back; the next call must retry it, not serve the
	// fallback from cache.
	fail = false
	got, fb, err := c.GetAll(ctx)
	if err != nil || fb {
		t.Fatalf("fallback=%v err=%v", fb, err)
	}
	if calls != 2 {
		t.Fatalf("remote not retried after fallback, calls = %d", calls)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("wrong data after recovery: %+v", got)
	}
}

func TestGetAllEmptyResultFallsBack(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	fetchAll := func(ctx context.Context) ([]playgrounds.Playground, error) {
		return []playgrounds.Playground{}, nil
	}

	c := newTestCache(fetchAll, nil, clk)
	_, fb, err := c.GetAll(context.Background())
	if err != nil || !fb {
		t.Fatalf("empty result: fallback=%v err=%v", fb, err)
	}
}

func TestGetAllServesStaleWhenRefetchFails(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	fail := false
	fetchAll := func(ctx context.Context) ([]playgrounds.Playground, error) {
		if fail {
			return nil, errors.New("down")
		}
		return []playgrounds.Playground{pg(1)}, nil
	}

	c := newTestCache(fetchAll, nil, clk)
	ctx := context.Background()

	if _, _, err := c.GetAll(ctx); err != nil {
		t.Fatal(err)
	}

	clk.advance(DefaultTTL + time.Minute)
	fail = true

	got, fb, err := c.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fb {
		t.Fatal("stale entry should beat fallback data")
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("stale entry not served: %+v", got)
	}
}

func TestGetByIDUsesFreshCollection(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	fetchAll := func(ctx context.Context) ([]playgrounds.Playground, error) {
		return []playgrounds.Playground{pg(1), pg(2)}, nil
	}
	detailCalls := 0
	fetchOne := func(ctx context.Context, id int64) (*playgrounds.Playground, error) {
		detailCalls++
		p := pg(id)
		return &p, nil
	}

	c := newTestCache(fetchAll, fetchOne, clk)
	ctx := context.Background()

	if _, _, err := c.GetAll(ctx); err != nil {
		t.Fatal(err)
	}

	got, fb, err := c.GetByID(ctx, 2)
	if err != nil || fb {
		t.Fatalf("fallback=%v err=%v", fb, err)
	}
	if got.ID != 2 {
		t.Fatalf("got id %d", got.ID)
	}
	if detailCalls != 0 {
		t.Fatalf("dedicated fetch ran despite fresh collection, calls = %d", detailCalls)
	}
}

func TestGetByIDFetchesOnMiss(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	detailCalls := 0
	fetchOne := func(ctx context.Context, id int64) (*playgrounds.Playground, error) {
		detailCalls++
		p := pg(id)
		return &p, nil
	}

	c := newTestCache(nil, fetchOne, clk)
	ctx := context.Background()

	if _, _, err := c.GetByID(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if detailCalls != 1 {
		t.Fatalf("calls = %d", detailCalls)
	}

	// Second hit inside the window is served from the detail cache.
	if _, _, err := c.GetByID(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if detailCalls != 1 {
		t.Fatalf("detail cache miss, calls = %d", detailCalls)
	}
}

func TestGetByIDFallbackOnError(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	fetchOne := func(ctx context.Context, id int64) (*playgrounds.Playground, error) {
		return nil, errors.New("down")
	}

	c := newTestCache(nil, fetchOne, clk)

	got, fb, err := c.GetByID(context.Background(), 101)
	if err != nil {
		t.Fatal(err)
	}
	if !fb || got.ID != 101 {
		t.Fatalf("fallback lookup failed: fb=%v got=%+v", fb, got)
	}

	// Unknown id with a dead remote is a hard miss.
	if _, _, err := c.GetByID(context.Background(), 999); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	fetchOne := func(ctx context.Context, id int64) (*playgrounds.Playground, error) {
		return nil, nil
	}

	c := newTestCache(nil, fetchOne, clk)
	_, _, err := c.GetByID(context.Background(), 999)
	if !errors.Is(err, playgrounds.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCanceledContextDiscardsResult(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	calls := 0
	ctx, cancel := context.WithCancel(context.Background())
	fetchAll := func(ctx context.Context) ([]playgrounds.Playground, error) {
		calls++
		cancel() // consumer goes away mid-fetch
		return []playgrounds.Playground{pg(1)}, nil
	}

	c := newTestCache(fetchAll, nil, clk)

	if _, _, err := c.GetAll(ctx); err == nil {
		t.Fatal("expected context error")
	}

	// The late result must not have been cached.
	fresh := context.Background()
	if _, _, err := c.GetAll(fresh); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("canceled result was cached, calls = %d", calls)
	}
}

func TestInvalidate(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	calls := 0
	fetchAll := func(ctx context.Context) ([]playgrounds.Playground, error) {
		calls++
		return []playgrounds.Playground{pg(1)}, nil
	}

	c := newTestCache(fetchAll, nil, clk)
	ctx := context.Background()

	c.GetAll(ctx)
	c.Invalidate()
	c.GetAll(ctx)

	if calls != 2 {
		t.Fatalf("invalidate did not force refetch, calls = %d", calls)
	}
}
