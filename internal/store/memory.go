package store

import (
	"fmt"
	"sync"

	"github.com/i474232898/temperature-dashboard/internal/temperature"
)

// MemoryStore is a concurrency-safe, fixed-capacity FIFO of readings.
type MemoryStore struct {
	mu sync.RWMutex

	readings []temperature.Reading
	capacity int
}

// NewMemoryStore creates a MemoryStore that keeps at most capacity readings.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", temperature.ErrInvalidConfig, capacity)
	}
	return &MemoryStore{
		readings: make([]temperature.Reading, 0, capacity),
		capacity: capacity,
	}, nil
}

// Append adds a reading, evicting the oldest ones once capacity is exceeded.
func (s *MemoryStore) Append(r temperature.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.readings) == s.capacity {
		// Shift in place so the backing array never grows past capacity.
		copy(s.readings, s.readings[1:])
		s.readings[len(s.readings)-1] = r
		return
	}
	s.readings = append(s.readings, r)
}

// Snapshot returns a copy of the readings, oldest first.
func (s *MemoryStore) Snapshot() []temperature.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]temperature.Reading, len(s.readings))
	copy(out, s.readings)
	return out
}

// Latest returns the most recent reading.
func (s *MemoryStore) Latest() (temperature.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.readings) == 0 {
		return temperature.Reading{}, temperature.ErrNoData
	}
	return s.readings[len(s.readings)-1], nil
}

// Len returns the number of readings currently held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}

// Capacity returns the configured maximum length.
func (s *MemoryStore) Capacity() int {
	return s.capacity
}
