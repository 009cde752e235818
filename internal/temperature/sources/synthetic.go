package sources

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/i474232898/temperature-dashboard/internal/temperature"
)

// Bounds of the synthetic Antarctic reading, in degrees Celsius.
const (
	SyntheticMinCelsius = -18.0
	SyntheticMaxCelsius = -16.0
)

// Synthetic draws uniform readings in [SyntheticMinCelsius, SyntheticMaxCelsius].
// It never returns an error.
type Synthetic struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthetic creates a Synthetic source. A nil rng uses a randomly seeded PCG.
func NewSynthetic(rng *rand.Rand) *Synthetic {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Synthetic{rng: rng}
}

func (s *Synthetic) Name() string {
	return "synthetic"
}

func (s *Synthetic) Sample(_ context.Context) (float64, error) {
	s.mu.Lock()
	f := s.rng.Float64()
	s.mu.Unlock()

	v := SyntheticMinCelsius + f*(SyntheticMaxCelsius-SyntheticMinCelsius)
	return temperature.Round1(v), nil
}
