package sampler

import (
	"context"
	"math/rand/v2"
	"time"
)

// SimulatedSampler produces pseudo-random utilization readings. It stands
// in for real telemetry in development mode and in tests; each core
// percentage is drawn uniformly from [0,100).
//
// When Providers is non-empty, every reading carries one ProviderStatus
// per listed provider: instance count in [5,15), load in [0,100), and a
// health flag that is true with probability 0.9.
type SimulatedSampler struct {
	// Providers lists cloud providers to simulate fleet status for.
	// Empty means core metrics only.
	Providers []string

	// rng is optional; if nil the shared global source is used. Tests
	// inject a seeded source for reproducibility.
	rng *rand.Rand
}

// NewSimulatedSampler creates a simulated sampler for the given provider
// list (which may be nil).
func NewSimulatedSampler(providers []string) *SimulatedSampler {
	return &SimulatedSampler{Providers: providers}
}

// NewSeededSimulatedSampler creates a simulated sampler with a
// deterministic random source. Intended for tests.
func NewSeededSimulatedSampler(providers []string, seed uint64) *SimulatedSampler {
	return &SimulatedSampler{
		Providers: providers,
		rng:       rand.New(rand.NewPCG(seed, seed)),
	}
}

func (s *SimulatedSampler) Name() string { return "simulated" }

// Sample implements Sampler. It never fails; the context is checked only
// so canceled ticks stop promptly.
func (s *SimulatedSampler) Sample(ctx context.Context) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}

	sample := Sample{
		Timestamp: time.Now().UTC(),
		CPUPct:    s.float64() * 100,
		MemoryPct: s.float64() * 100,
		DiskPct:   s.float64() * 100,
	}

	if len(s.Providers) > 0 {
		sample.Providers = make(map[string]ProviderStatus, len(s.Providers))
		for _, provider := range s.Providers {
			sample.Providers[provider] = ProviderStatus{
				Instances: 5 + s.intN(10),
				LoadPct:   s.float64() * 100,
				Healthy:   s.float64() < 0.9,
			}
		}
	}

	return sample, nil
}

func (s *SimulatedSampler) float64() float64 {
	if s.rng != nil {
		return s.rng.Float64()
	}
	return rand.Float64()
}

func (s *SimulatedSampler) intN(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}
