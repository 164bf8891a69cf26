package storage

import (
	"context"
	"time"

	"github.com/HatiCode/vigil/pkg/forecast"
	"github.com/HatiCode/vigil/pkg/sampler"
)

// Snapshot is the latest evaluated health state of one monitored source.
// Only the most recent snapshot per source is kept; Vigil does not
// persist history.
type Snapshot struct {
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generatedAt"`
	Status      string    `json:"status"`

	CPUPct    float64 `json:"cpuPct"`
	MemoryPct float64 `json:"memoryPct"`
	DiskPct   float64 `json:"diskPct"`

	// Providers carries per-provider cloud status when the monitor runs
	// with a provider list.
	Providers map[string]sampler.ProviderStatus `json:"providers,omitempty"`

	// Forecast is the latest projection, present only in AI mode.
	Forecast *forecast.Forecast `json:"forecast,omitempty"`

	// Unavailable marks a snapshot built from a stale reading because the
	// sampler failed on the most recent tick.
	Unavailable bool `json:"unavailable,omitempty"`
}

type Store interface {
	Put(ctx context.Context, snapshot Snapshot) error
	GetLatest(ctx context.Context, source string) (Snapshot, bool, error)
}
