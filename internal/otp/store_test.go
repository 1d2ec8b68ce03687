package otp

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("+15550001234")
	assert.False(t, ok)

	store.Set("+15550001234", "hash-1")
	hash, ok := store.Get("+15550001234")
	assert.True(t, ok)
	assert.Equal(t, "hash-1", hash)

	store.Delete("+15550001234")
	_, ok = store.Get("+15550001234")
	assert.False(t, ok)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()

	store.Set("+15550001234", "hash-1")
	store.Set("+15550001234", "hash-2")

	hash, ok := store.Get("+15550001234")
	assert.True(t, ok)
	assert.Equal(t, "hash-2", hash)
}

func TestMemoryStoreIndependentNumbers(t *testing.T) {
	store := NewMemoryStore()

	store.Set("+15550001234", "hash-a")
	store.Set("+15550005678", "hash-b")
	store.Delete("+15550001234")

	hash, ok := store.Get("+15550005678")
	assert.True(t, ok)
	assert.Equal(t, "hash-b", hash)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			phone := fmt.Sprintf("+1555000%04d", n)
			store.Set(phone, "hash")
			store.Get(phone)
			store.Delete(phone)
		}(i)
	}
	wg.Wait()
}
