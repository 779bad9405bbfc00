package common

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"rental_server/core/domain"
)

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (m *memCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), dest)
}

func (m *memCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.Set(ctx, key, string(raw), ttl)
}

func (m *memCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

type page struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

func TestListCacheKey(t *testing.T) {
	lc := NewListCache(newMemCache(), time.Minute)

	a := lc.Key("cars", &domain.PageOptions{Sort: domain.SortLastCreated, Page: 1, Take: 10})
	b := lc.Key("cars", &domain.PageOptions{Sort: domain.SortLastCreated, Page: 2, Take: 10})
	c := lc.Key("cars", &domain.PageOptions{Sort: domain.SortExpensive, Page: 1, Take: 10})

	if a == b || a == c || b == c {
		t.Errorf("distinct options must yield distinct keys: %q %q %q", a, b, c)
	}
	if !strings.HasPrefix(a, "cars:") {
		t.Errorf("key %q missing listing prefix", a)
	}
}

func TestListCacheGetOrLoad(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	lc := NewListCache(cache, time.Minute)

	loads := 0
	load := func(ctx context.Context) (interface{}, error) {
		loads++
		return &page{Items: []string{"a", "b"}, Count: 2}, nil
	}

	var first page
	if err := lc.GetOrLoad(ctx, "cars:p1", &first, load); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if first.Count != 2 {
		t.Errorf("count = %d, want 2", first.Count)
	}

	var second page
	if err := lc.GetOrLoad(ctx, "cars:p1", &second, load); err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if loads != 1 {
		t.Errorf("loader ran %d times, want 1", loads)
	}
	if second.Count != first.Count || len(second.Items) != len(first.Items) {
		t.Error("cached page differs from loaded page")
	}
}

func TestListCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	lc := NewListCache(cache, time.Minute)

	loads := 0
	load := func(ctx context.Context) (interface{}, error) {
		loads++
		return &page{Count: loads}, nil
	}

	var p page
	if err := lc.GetOrLoad(ctx, lc.Key("cars", 1), &p, load); err != nil {
		t.Fatal(err)
	}
	if err := lc.GetOrLoad(ctx, lc.Key("cars", 2), &p, load); err != nil {
		t.Fatal(err)
	}
	// Unrelated listing survives the invalidation.
	if err := lc.GetOrLoad(ctx, lc.Key("accommodations", 1), &p, load); err != nil {
		t.Fatal(err)
	}

	if err := lc.Invalidate(ctx, "cars"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	if err := lc.GetOrLoad(ctx, lc.Key("cars", 1), &p, load); err != nil {
		t.Fatal(err)
	}
	if loads != 4 {
		t.Errorf("loader ran %d times, want 4 (reload after invalidation)", loads)
	}

	var other page
	if err := lc.GetOrLoad(ctx, lc.Key("accommodations", 1), &other, load); err != nil {
		t.Fatal(err)
	}
	if loads != 4 {
		t.Error("accommodations entry should have survived the cars invalidation")
	}
}

func TestListCacheCollapsesConcurrentMisses(t *testing.T) {
	ctx := context.Background()
	lc := NewListCache(newMemCache(), time.Minute)

	var mu sync.Mutex
	loads := 0
	gate := make(chan struct{})
	load := func(ctx context.Context) (interface{}, error) {
		mu.Lock()
		loads++
		mu.Unlock()
		<-gate
		return &page{Count: 1}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var p page
			if err := lc.GetOrLoad(ctx, "cars:hot", &p, load); err != nil {
				t.Errorf("load failed: %v", err)
				return
			}
			// Every caller sharing the flight gets the loaded page, not
			// just the one that ran the loader.
			if p.Count != 1 {
				t.Errorf("caller got count = %d, want 1", p.Count)
			}
		}()
	}

	// Let the goroutines pile up on the flight before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	if loads != 1 {
		t.Errorf("loader ran %d times under concurrency, want 1", loads)
	}
}

// blindReadCache never answers the direct read but still serves raw values,
// modeling the window where another flight fills the key between our initial
// miss and the in-flight re-read.
type blindReadCache struct {
	*memCache
}

func (b *blindReadCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func TestListCacheInFlightReReadServesPage(t *testing.T) {
	ctx := context.Background()
	cache := &blindReadCache{memCache: newMemCache()}
	lc := NewListCache(cache, time.Minute)

	seeded := &page{Items: []string{"a", "b"}, Count: 2}
	if err := cache.SetJSON(ctx, "cars:p1", seeded, time.Minute); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	var p page
	err := lc.GetOrLoad(ctx, "cars:p1", &p, func(ctx context.Context) (interface{}, error) {
		t.Error("loader ran despite the key being cached")
		return &page{}, nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad failed: %v", err)
	}
	if p.Count != 2 || len(p.Items) != 2 {
		t.Errorf("page = %+v, want the cached page", p)
	}
}
