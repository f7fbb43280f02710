// Package store holds the two in-memory structures behind the server: the
// key/value Store and the ExpiryIndex that records per-key deadlines.
//
// Both structures carry their own lock but do not take it themselves.
// Callers that combine them must lock the ExpiryIndex before the Store;
// engine.DB is the only such caller.
package store

import "sync"

// Store maps keys to string values.
type Store struct {
	sync.RWMutex
	data map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		data: make(map[string]string),
	}
}

// Set inserts or overwrites key.
func (s *Store) Set(key, value string) {
	s.data[key] = value
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	value, ok := s.data[key]
	return value, ok
}

// Delete removes key and returns the value it held.
func (s *Store) Delete(key string) (string, bool) {
	value, ok := s.data[key]
	if ok {
		delete(s.data, key)
	}
	return value, ok
}

// Keys returns every key in unspecified order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of keys.
func (s *Store) Len() int {
	return len(s.data)
}
