package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/crop-advisor/internal/cache"
	"github.com/donaldgifford/crop-advisor/pkg/advisor"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func sampleResult() *domain.RecommendationResult {
	return &domain.RecommendationResult{
		Categories: []domain.CropCategory{
			{
				Type: domain.CategoryVegetables,
				Crops: []domain.CropRecommendation{
					{Name: "Tomato", Score: 80, IsTopPick: true, SoilCompatibility: []string{"Loamy"}},
				},
			},
		},
		Reasoning: "loamy soil with rainfall",
	}
}

var _ advisor.ResultCache = (*cache.MemoryCache)(nil)

func TestMemoryCache_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemoryCache()

	require.NoError(t, c.Put(ctx, "fp-1", sampleResult()))

	got, ok, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleResult(), got)
}

func TestMemoryCache_ResultsAreIsolated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemoryCache()

	stored := sampleResult()
	require.NoError(t, c.Put(ctx, "fp-1", stored))

	stored.Categories[0].Crops[0].IsTopPick = false
	stored.Categories[0].Crops[0].SoilCompatibility[0] = "Clay"

	got, ok, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleResult(), got, "mutating the stored result changed the entry")

	got.Categories[0].Crops[0].Name = "Kale"
	got.Categories = append(got.Categories, domain.CropCategory{Type: domain.CategoryFruits})

	again, ok, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleResult(), again, "mutating a read result changed the entry")
}

func TestMemoryCache_Miss(t *testing.T) {
	t.Parallel()

	got, ok, err := cache.NewMemoryCache().Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		advance time.Duration
		wantHit bool
	}{
		{name: "fresh entry", advance: time.Hour, wantHit: true},
		{name: "exactly at ttl", advance: cache.DefaultTTL, wantHit: true},
		{name: "past ttl", advance: cache.DefaultTTL + time.Second, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			clock := newFakeClock()
			c := cache.NewMemoryCache(cache.WithNowFunc(clock.Now))

			require.NoError(t, c.Put(ctx, "fp", sampleResult()))
			clock.Advance(tt.advance)

			_, ok, err := c.Get(ctx, "fp")
			require.NoError(t, err)
			assert.Equal(t, tt.wantHit, ok)
		})
	}
}

func TestMemoryCache_ExpiredEntriesStayUntilSwept(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	c := cache.NewMemoryCache(cache.WithNowFunc(clock.Now), cache.WithTTL(time.Minute))

	require.NoError(t, c.Put(ctx, "old", sampleResult()))
	clock.Advance(2 * time.Minute)
	require.NoError(t, c.Put(ctx, "new", sampleResult()))

	_, ok, err := c.Get(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len(), "expired entries are not removed on read")

	removed, err := c.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())

	_, ok, err = c.Get(ctx, "new")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCache_Evict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemoryCache()
	require.NoError(t, c.Put(ctx, "fp", sampleResult()))
	require.NoError(t, c.Evict(ctx, "fp"))
	require.NoError(t, c.Evict(ctx, "never-stored"))

	_, ok, err := c.Get(ctx, "fp")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, c.Ping(ctx))
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemoryCache()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fp := []string{"a", "b", "c"}[i%3]
			_ = c.Put(ctx, fp, sampleResult())
			_, _, _ = c.Get(ctx, fp)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, c.Len())
}
