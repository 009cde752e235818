package temperature

import "context"

// Source produces a raw Celsius temperature for one tick.
type Source interface {
	Name() string
	Sample(ctx context.Context) (float64, error)
}

// Store is the contract the bounded in-memory history must satisfy.
type Store interface {
	Append(r Reading)
	Snapshot() []Reading
	Latest() (Reading, error)
	Len() int
	Capacity() int
}
