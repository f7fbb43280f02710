package store

import (
	"sync"
	"time"

	"github.com/google/btree"
)

const btreeDegree = 32

// bucket groups the keys that expire at one millisecond instant.
type bucket struct {
	at   int64
	keys map[string]struct{}
}

func bucketLess(a, b *bucket) bool {
	return a.at < b.at
}

// ExpiryIndex records when keys expire. byKey and byInstant always agree:
// a key present in one is present in the other under the same instant.
type ExpiryIndex struct {
	sync.Mutex
	byKey     map[string]int64
	byInstant *btree.BTreeG[*bucket]
	now       func() time.Time
}

// NewExpiryIndex creates an index that reads the wall clock.
func NewExpiryIndex() *ExpiryIndex {
	return NewExpiryIndexWithClock(time.Now)
}

// NewExpiryIndexWithClock creates an index that takes the current time from now.
func NewExpiryIndexWithClock(now func() time.Time) *ExpiryIndex {
	return &ExpiryIndex{
		byKey:     make(map[string]int64),
		byInstant: btree.NewG(btreeDegree, bucketLess),
		now:       now,
	}
}

// SetExpiry makes key expire ttl from now, replacing any earlier deadline.
// It returns the new deadline.
func (x *ExpiryIndex) SetExpiry(key string, ttl time.Duration) time.Time {
	at := x.now().UnixMilli() + ttl.Milliseconds()
	x.remove(key)

	x.byKey[key] = at
	b, ok := x.byInstant.Get(&bucket{at: at})
	if !ok {
		b = &bucket{at: at, keys: make(map[string]struct{})}
		x.byInstant.ReplaceOrInsert(b)
	}
	b.keys[key] = struct{}{}

	return time.UnixMilli(at)
}

// RemoveExpiry clears the deadline of key. It reports whether one existed.
func (x *ExpiryIndex) RemoveExpiry(key string) bool {
	return x.remove(key)
}

func (x *ExpiryIndex) remove(key string) bool {
	at, ok := x.byKey[key]
	if !ok {
		return false
	}
	delete(x.byKey, key)

	if b, found := x.byInstant.Get(&bucket{at: at}); found {
		delete(b.keys, key)
		if len(b.keys) == 0 {
			x.byInstant.Delete(b)
		}
	}
	return true
}

// IsExpired reports whether key has a deadline that is not after now.
func (x *ExpiryIndex) IsExpired(key string) bool {
	at, ok := x.byKey[key]
	return ok && at <= x.now().UnixMilli()
}

// ExpiresAt returns the deadline of key, if any.
func (x *ExpiryIndex) ExpiresAt(key string) (time.Time, bool) {
	at, ok := x.byKey[key]
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(at), true
}

// Sweep removes every key whose deadline is not after now, visiting
// instants in ascending order and stopping at the first future one.
// onExpired is called once per removed key. Sweep returns the number of keys
// removed.
func (x *ExpiryIndex) Sweep(now time.Time, onExpired func(key string)) int {
	limit := now.UnixMilli()
	removed := 0

	for {
		b, ok := x.byInstant.Min()
		if !ok || b.at > limit {
			break
		}
		x.byInstant.DeleteMin()

		for key := range b.keys {
			delete(x.byKey, key)
			removed++
			if onExpired != nil {
				onExpired(key)
			}
		}
	}

	return removed
}

// Len returns the number of keys carrying a deadline.
func (x *ExpiryIndex) Len() int {
	return len(x.byKey)
}

// Instants returns the number of distinct deadlines.
func (x *ExpiryIndex) Instants() int {
	return x.byInstant.Len()
}
