package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	key1   = "key_1"
	key2   = "key_2"
	value1 = "value_1"
	value2 = "value_2"
)

func TestNew(t *testing.T) {
	t.Parallel()
	s := New()
	assert.NotNil(t, s, "New should not return nil")
	assert.NotNil(t, s.data, "Internal map should be initialized")
	assert.Zero(t, s.Len(), "New store should be empty")
}

func TestStore_SetAndGet(t *testing.T) {
	t.Parallel()
	s := New()

	s.Set(key1, value1)
	value, ok := s.Get(key1)
	assert.True(t, ok, "Key should exist after Set")
	assert.Equal(t, value1, value)

	s.Set(key1, value2)
	value, ok = s.Get(key1)
	assert.True(t, ok, "Key should still exist after overwrite")
	assert.Equal(t, value2, value, "Value should be overwritten")

	_, ok = s.Get("missing_key")
	assert.False(t, ok, "Non-existent key should not be found")
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()
	s := New()
	s.Set(key1, value1)

	prev, ok := s.Delete(key1)
	assert.True(t, ok)
	assert.Equal(t, value1, prev, "Delete should return the previous value")

	_, ok = s.Get(key1)
	assert.False(t, ok, "Key should be deleted")

	_, ok = s.Delete(key2)
	assert.False(t, ok, "Deleting non-existent key should report absence")
}

func TestStore_Keys(t *testing.T) {
	t.Parallel()
	s := New()
	s.Set(key1, value1)
	s.Set(key2, value2)

	assert.ElementsMatch(t, []string{key1, key2}, s.Keys())

	s.Delete(key1)
	s.Delete(key2)
	assert.Empty(t, s.Keys(), "Keys should return empty slice after all keys are deleted")
}

func TestStore_Concurrency(t *testing.T) {
	s := New()
	numGoroutines := 50
	numOperationsPerGoroutine := 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numOperationsPerGoroutine; j++ {
				s.Lock()
				s.Set(key1, value1)
				if j%10 == 0 {
					s.Delete(key1)
				}
				s.Unlock()

				s.RLock()
				s.Get(key1)
				s.Keys()
				s.RUnlock()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Concurrency test timed out (possible deadlock)")
	}
}
