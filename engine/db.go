package engine

import (
	"sync/atomic"
	"time"

	"github.com/himakhaitan/respkv/store"
)

// Lookup is the outcome of reading one key.
type Lookup struct {
	Value string
	Found bool
}

// Stats is a point-in-time summary of the shared state.
type Stats struct {
	TotalKeys    int
	ExpiringKeys int
	LazyExpired  uint64
}

// DB is the shared state handed to every command and to the sweeper. It owns
// the Store and the ExpiryIndex and is the only place that locks them; the
// index is always locked before the store.
type DB struct {
	data        *store.Store
	expiry      *store.ExpiryIndex
	lazyExpired atomic.Uint64
}

func NewDB(s *store.Store, x *store.ExpiryIndex) *DB {
	return &DB{data: s, expiry: x}
}

// Get returns the live value of key. A key whose deadline has passed is
// removed on the spot and reported as missing.
func (db *DB) Get(key string) (string, bool) {
	db.expiry.Lock()
	defer db.expiry.Unlock()
	db.data.Lock()
	defer db.data.Unlock()

	return db.getLocked(key)
}

// MGet looks up keys under a single lock acquisition, applying the same
// expiry check as Get to each. Results are in input order.
func (db *DB) MGet(keys []string) []Lookup {
	db.expiry.Lock()
	defer db.expiry.Unlock()
	db.data.Lock()
	defer db.data.Unlock()

	out := make([]Lookup, len(keys))
	for i, key := range keys {
		value, ok := db.getLocked(key)
		out[i] = Lookup{Value: value, Found: ok}
	}
	return out
}

func (db *DB) getLocked(key string) (string, bool) {
	if db.expiry.IsExpired(key) {
		db.expiry.RemoveExpiry(key)
		db.data.Delete(key)
		db.lazyExpired.Add(1)
		return "", false
	}
	return db.data.Get(key)
}

// Set stores value under key. A positive ttl gives the key a deadline;
// otherwise any previous deadline is cleared.
func (db *DB) Set(key, value string, ttl time.Duration) {
	db.expiry.Lock()
	defer db.expiry.Unlock()
	db.data.Lock()
	defer db.data.Unlock()

	db.data.Set(key, value)
	if ttl > 0 {
		db.expiry.SetExpiry(key, ttl)
	} else {
		db.expiry.RemoveExpiry(key)
	}
}

// Delete removes keys together with their deadlines and returns how many of
// them existed.
func (db *DB) Delete(keys ...string) int {
	db.expiry.Lock()
	defer db.expiry.Unlock()
	db.data.Lock()
	defer db.data.Unlock()

	deleted := 0
	for _, key := range keys {
		if _, ok := db.data.Delete(key); ok {
			deleted++
		}
		db.expiry.RemoveExpiry(key)
	}
	return deleted
}

// Keys returns the live keys accepted by match. Keys past their deadline
// but not yet swept are skipped.
func (db *DB) Keys(match func(key string) bool) []string {
	db.expiry.Lock()
	defer db.expiry.Unlock()
	db.data.RLock()
	defer db.data.RUnlock()

	keys := make([]string, 0)
	for _, key := range db.data.Keys() {
		if db.expiry.IsExpired(key) {
			continue
		}
		if match == nil || match(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Sweep removes every key whose deadline is not after now and returns them.
func (db *DB) Sweep(now time.Time) []string {
	db.expiry.Lock()
	defer db.expiry.Unlock()
	db.data.Lock()
	defer db.data.Unlock()

	var expired []string
	db.expiry.Sweep(now, func(key string) {
		db.data.Delete(key)
		expired = append(expired, key)
	})
	return expired
}

func (db *DB) Stats() Stats {
	db.expiry.Lock()
	defer db.expiry.Unlock()
	db.data.RLock()
	defer db.data.RUnlock()

	return Stats{
		TotalKeys:    db.data.Len(),
		ExpiringKeys: db.expiry.Len(),
		LazyExpired:  db.lazyExpired.Load(),
	}
}
