package storage

import (
	"sync"
)

// InMemoryStorage implements the Storage interface using an in-memory map.
type InMemoryStorage struct {
	records  map[string]*Record // Map of short code to record
	mu       sync.RWMutex       // Guards records; click counters are atomic and need no lock
	capacity int                // Maximum number of records that can be stored
}

// The write lock is held only for the duration of a single insert or remove,
// so code generation retries in the registry never run under it.

// NewInMemoryStorage creates and returns a new InMemoryStorage instance
func NewInMemoryStorage(capacity int) *InMemoryStorage {
	if capacity <= 0 {
		capacity = 1000 // Default capacity if an invalid value is provided
	}
	return &InMemoryStorage{
		records:  make(map[string]*Record),
		capacity: capacity,
	}
}

// InsertIfAbsent adds rec unless its code is already present. The existence
// check and the insert happen under the same write lock.
func (s *InMemoryStorage) InsertIfAbsent(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.Code()]; exists {
		return ErrShortURLExists
	}
	if len(s.records) >= s.capacity {
		return ErrStorageCapacityReached
	}

	s.records[rec.Code()] = rec
	return nil
}

// Get retrieves the record stored under code.
func (s *InMemoryStorage) Get(code string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.records[code]
	return rec, exists
}

// Remove deletes the record stored under code, reporting whether one existed.
func (s *InMemoryStorage) Remove(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[code]; !exists {
		return false
	}
	delete(s.records, code)
	return true
}

// All returns the records present at the moment of the call, in no particular order.
func (s *InMemoryStorage) All() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		all = append(all, rec)
	}
	return all
}

// Len returns the number of stored records.
func (s *InMemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
