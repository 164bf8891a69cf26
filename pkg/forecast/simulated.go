package forecast

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/HatiCode/vigil/pkg/sampler"
)

// SimulatedForecaster produces memoryless pseudo-random projections: each
// prediction is independent of every prior sample. CPU and memory are
// drawn from [0,100), traffic from [0,1000), confidence from [70,100).
type SimulatedForecaster struct {
	rng *rand.Rand
}

// NewSimulatedForecaster creates a simulated forecaster using the shared
// global random source.
func NewSimulatedForecaster() *SimulatedForecaster {
	return &SimulatedForecaster{}
}

// NewSeededSimulatedForecaster creates a simulated forecaster with a
// deterministic random source. Intended for tests.
func NewSeededSimulatedForecaster(seed uint64) *SimulatedForecaster {
	return &SimulatedForecaster{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (f *SimulatedForecaster) Name() string { return "simulated" }

// Observe is a no-op: the simulated forecaster is memoryless.
func (f *SimulatedForecaster) Observe(sampler.Sample) {}

// Predict implements Forecaster. It never fails; the context is checked
// only so canceled ticks stop promptly.
func (f *SimulatedForecaster) Predict(ctx context.Context) (Forecast, error) {
	if err := ctx.Err(); err != nil {
		return Forecast{}, err
	}

	return Forecast{
		GeneratedAt:   time.Now().UTC(),
		CPUPct:        f.float64() * 100,
		MemoryPct:     f.float64() * 100,
		TrafficRPS:    f.float64() * 1000,
		ConfidencePct: 70 + f.float64()*30,
	}, nil
}

func (f *SimulatedForecaster) float64() float64 {
	if f.rng != nil {
		return f.rng.Float64()
	}
	return rand.Float64()
}
