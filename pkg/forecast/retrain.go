package forecast

import (
	"context"
	"time"
)

// RetrainResult reports the outcome of one model refresh.
type RetrainResult struct {
	CompletedAt time.Time
	AccuracyPct float64
}

// Retrainer refreshes the anomaly-detection model on its own cadence,
// independent of the health-check loop.
type Retrainer interface {
	Retrain(ctx context.Context) (RetrainResult, error)
}

// StubRetrainer is a placeholder for a real training pipeline. It
// completes instantly and always reports the same accuracy.
type StubRetrainer struct{}

// Retrain implements Retrainer.
func (StubRetrainer) Retrain(ctx context.Context) (RetrainResult, error) {
	if err := ctx.Err(); err != nil {
		return RetrainResult{}, err
	}
	return RetrainResult{
		CompletedAt: time.Now().UTC(),
		AccuracyPct: 94.7,
	}, nil
}
