package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/HatiCode/vigil/pkg/sampler"
)

func observe(f *WindowForecaster, at time.Time, cpu, memory float64) {
	f.Observe(sampler.Sample{Timestamp: at, CPUPct: cpu, MemoryPct: memory})
}

func TestWindowForecaster_NotEnoughObservations(t *testing.T) {
	f := NewWindowForecaster(5 * time.Minute)

	if _, err := f.Predict(context.Background()); err == nil {
		t.Fatal("Predict() with no observations should return error")
	}

	observe(f, time.Now(), 50, 40)
	if _, err := f.Predict(context.Background()); err == nil {
		t.Fatal("Predict() with one observation should return error")
	}
}

func TestWindowForecaster_RisingTrend(t *testing.T) {
	f := NewWindowForecaster(5 * time.Minute)
	f.Lookahead = time.Minute

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	// CPU climbs 1%/10s, memory holds flat.
	for i := 0; i < 6; i++ {
		observe(f, base.Add(time.Duration(i)*10*time.Second), 50+float64(i), 40)
	}

	fc, err := f.Predict(context.Background())
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	// Slope is 0.1%/s, last observation 55%, one minute ahead => 61%.
	if fc.CPUPct < 60.9 || fc.CPUPct > 61.1 {
		t.Errorf("CPUPct = %v, want ~61", fc.CPUPct)
	}
	if fc.MemoryPct < 39.9 || fc.MemoryPct > 40.1 {
		t.Errorf("MemoryPct = %v, want ~40", fc.MemoryPct)
	}
	if fc.TrafficRPS != 0 {
		t.Errorf("TrafficRPS = %v, want 0", fc.TrafficRPS)
	}
	if fc.ConfidencePct < 70 || fc.ConfidencePct > 100 {
		t.Errorf("ConfidencePct = %v, want [70,100]", fc.ConfidencePct)
	}
}

func TestWindowForecaster_ClampsProjection(t *testing.T) {
	f := NewWindowForecaster(5 * time.Minute)
	f.Lookahead = 10 * time.Minute

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	observe(f, base, 80, 90)
	observe(f, base.Add(10*time.Second), 90, 70)

	fc, err := f.Predict(context.Background())
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if fc.CPUPct != 100 {
		t.Errorf("CPUPct = %v, want clamped to 100", fc.CPUPct)
	}
	if fc.MemoryPct != 0 {
		t.Errorf("MemoryPct = %v, want clamped to 0", fc.MemoryPct)
	}
}

func TestWindowForecaster_EvictsOldObservations(t *testing.T) {
	f := NewWindowForecaster(time.Minute)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	// Two observations that will fall out of the window.
	observe(f, base, 10, 10)
	observe(f, base.Add(10*time.Second), 20, 20)
	// One fresh observation 5 minutes later evicts both.
	observe(f, base.Add(5*time.Minute), 50, 50)

	if _, err := f.Predict(context.Background()); err == nil {
		t.Fatal("Predict() should fail after eviction leaves one observation")
	}
}

func TestWindowForecaster_ConfidenceGrowsWithHistory(t *testing.T) {
	f := NewWindowForecaster(time.Hour)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	observe(f, base, 50, 50)
	observe(f, base.Add(10*time.Second), 51, 50)

	first, err := f.Predict(context.Background())
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if first.ConfidencePct != 70 {
		t.Errorf("ConfidencePct with two observations = %v, want 70", first.ConfidencePct)
	}

	for i := 2; i < 30; i++ {
		observe(f, base.Add(time.Duration(i)*10*time.Second), 50+float64(i), 50)
	}

	later, err := f.Predict(context.Background())
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if later.ConfidencePct <= first.ConfidencePct {
		t.Errorf("ConfidencePct = %v, want > %v", later.ConfidencePct, first.ConfidencePct)
	}
	if later.ConfidencePct > 100 {
		t.Errorf("ConfidencePct = %v, want <= 100", later.ConfidencePct)
	}
}
