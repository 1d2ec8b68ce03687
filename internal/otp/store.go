package otp

import "sync"

// Store is the transient one-time-code table keyed by phone number. At most
// one outstanding code per number; a new Set overwrites the previous entry.
// Implementations hold code hashes, not the codes themselves.
type Store interface {
	Set(phoneNumber, codeHash string)
	Get(phoneNumber string) (string, bool)
	Delete(phoneNumber string)
}

// MemoryStore is the process-local implementation. Entries are lost on
// restart and never shared across nodes.
type MemoryStore struct {
	mu    sync.RWMutex
	codes map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]string)}
}

func (s *MemoryStore) Set(phoneNumber, codeHash string) {
	s.mu.Lock()
	s.codes[phoneNumber] = codeHash
	s.mu.Unlock()
}

func (s *MemoryStore) Get(phoneNumber string) (string, bool) {
	s.mu.RLock()
	hash, ok := s.codes[phoneNumber]
	s.mu.RUnlock()
	return hash, ok
}

func (s *MemoryStore) Delete(phoneNumber string) {
	s.mu.Lock()
	delete(s.codes, phoneNumber)
	s.mu.Unlock()
}
