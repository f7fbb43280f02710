package engine

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/himakhaitan/respkv/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestDB() (*DB, *fakeClock) {
	clock := &fakeClock{t: time.UnixMilli(1_700_000_000_000)}
	return NewDB(store.New(), store.NewExpiryIndexWithClock(clock.Now)), clock
}

func TestDBOperations(t *testing.T) {
	db, _ := newTestDB()

	// Test Set
	db.Set("foo", "bar", 0)

	// Test Get
	val, ok := db.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, "bar", val)

	// Test Keys
	assert.Contains(t, db.Keys(nil), "foo")

	// Test Delete
	assert.Equal(t, 1, db.Delete("foo"))

	// After delete, key should be gone
	_, ok = db.Get("foo")
	assert.False(t, ok)

	// Test Stats
	stats := db.Stats()
	assert.Zero(t, stats.TotalKeys)
	assert.Zero(t, stats.ExpiringKeys)
}

func TestDB_GetLazilyExpires(t *testing.T) {
	db, clock := newTestDB()

	db.Set("a", "1", 50*time.Millisecond)
	val, ok := db.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", val)

	clock.Advance(60 * time.Millisecond)
	_, ok = db.Get("a")
	assert.False(t, ok, "expired key must be invisible before any sweep")

	stats := db.Stats()
	assert.Zero(t, stats.TotalKeys, "lazy expiry removes the value")
	assert.Zero(t, stats.ExpiringKeys, "lazy expiry removes the deadline")
	assert.Equal(t, uint64(1), stats.LazyExpired)
}

func TestDB_SetWithoutTTLClearsDeadline(t *testing.T) {
	db, clock := newTestDB()

	db.Set("a", "1", 10*time.Millisecond)
	db.Set("a", "2", 0)
	clock.Advance(time.Second)

	val, ok := db.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "2", val)
}

func TestDB_MGetPreservesOrderAndMisses(t *testing.T) {
	db, clock := newTestDB()

	db.Set("a", "1", 0)
	db.Set("gone", "x", time.Millisecond)
	clock.Advance(5 * time.Millisecond)

	got := db.MGet([]string{"a", "missing", "gone", "a"})
	assert.Equal(t, []Lookup{
		{Value: "1", Found: true},
		{},
		{},
		{Value: "1", Found: true},
	}, got)
}

func TestDB_DeleteCountsExisting(t *testing.T) {
	db, _ := newTestDB()

	db.Set("a", "1", time.Minute)
	assert.Equal(t, 1, db.Delete("a", "b"))
	assert.Zero(t, db.Stats().ExpiringKeys, "delete clears the deadline too")
	assert.Zero(t, db.Delete("a"))
}

func TestDB_KeysSkipsExpired(t *testing.T) {
	db, clock := newTestDB()

	db.Set("foo", "1", 0)
	db.Set("foobar", "2", 0)
	db.Set("bar", "3", 0)
	db.Set("fooz", "4", 10*time.Millisecond)
	clock.Advance(20 * time.Millisecond)

	keys := db.Keys(func(key string) bool { return len(key) >= 3 && key[:3] == "foo" })
	assert.ElementsMatch(t, []string{"foo", "foobar"}, keys)
	assert.Len(t, db.Keys(nil), 3)
}

func TestDB_Sweep(t *testing.T) {
	db, clock := newTestDB()

	db.Set("a", "1", 10*time.Millisecond)
	db.Set("b", "2", time.Hour)
	db.Set("c", "3", 0)

	assert.Empty(t, db.Sweep(clock.Now()))

	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a"}, db.Sweep(clock.Now()))

	stats := db.Stats()
	assert.Equal(t, 2, stats.TotalKeys)
	assert.Equal(t, 1, stats.ExpiringKeys)
}

func TestDB_ConcurrentDisjointWriters(t *testing.T) {
	db := NewDB(store.New(), store.NewExpiryIndex())
	const writers = 64

	var wg sync.WaitGroup
	errs := make(chan string, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			value := fmt.Sprintf("value-%d", i)
			for j := 0; j < 100; j++ {
				db.Set(key, value, time.Minute)
				if got, ok := db.Get(key); !ok || got != value {
					errs <- fmt.Sprintf("%s: got %q", key, got)
					return
				}
			}
		}(i)
	}

	// Sweeps run alongside the writers without deadlocking them.
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				db.Sweep(time.Now())
			}
		}
	}()

	wg.Wait()
	close(stop)
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
	assert.Equal(t, writers, db.Stats().TotalKeys)
}
