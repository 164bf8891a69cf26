// Package capacity converts an over-threshold utilization reading into a
// suggested instance count using a deterministic policy (target
// utilization, clamps, per-step rate limits). The suggestion rides along
// on auto-scaling-trigger alerts; Vigil never applies it itself.
package capacity

import (
	"math"
)

// Policy defines how a breaching reading is translated into instances.
type Policy struct {
	// Min/Max instance bounds. MaxInstances == 0 means "no upper bound".
	MinInstances int
	MaxInstances int

	// UpMaxFactorPerStep caps how fast the suggestion can grow relative
	// to the current fleet. Example: 2.0 allows doubling at most. If <= 0,
	// defaults to 2.0.
	UpMaxFactorPerStep float64

	// DownMaxPercentPerStep caps how fast the suggestion can shrink
	// (percentage of current). Example: 50 means dropping at most 50%.
	// Clamped to [0,100].
	DownMaxPercentPerStep int
}

// Suggest returns the instance count that would bring usagePct back to
// targetPct, starting from current instances. Usage is assumed to spread
// evenly across the fleet, so the ideal count is
// ceil(current * usage / target), then policy clamps apply.
//
// current <= 0 is treated as a fleet of one. A non-positive targetPct
// yields the clamped current count unchanged.
func Suggest(current int, usagePct, targetPct float64, p Policy) int {
	if current <= 0 {
		current = 1
	}
	if p.MinInstances < 0 {
		p.MinInstances = 0
	}
	if p.MaxInstances > 0 && p.MaxInstances < p.MinInstances {
		p.MaxInstances = p.MinInstances
	}
	if p.UpMaxFactorPerStep <= 0 {
		p.UpMaxFactorPerStep = 2.0
	}
	if p.DownMaxPercentPerStep < 0 {
		p.DownMaxPercentPerStep = 0
	}
	if p.DownMaxPercentPerStep > 100 {
		p.DownMaxPercentPerStep = 100
	}

	if targetPct <= 0 || usagePct < 0 {
		return clampBounds(current, p.MinInstances, p.MaxInstances)
	}

	desired := int(math.Ceil(float64(current) * usagePct / targetPct))
	desired = clampBounds(desired, p.MinInstances, p.MaxInstances)
	desired = clampChange(current, desired, p.UpMaxFactorPerStep, p.DownMaxPercentPerStep)
	return clampBounds(desired, p.MinInstances, p.MaxInstances)
}

func clampBounds(x, lo, hi int) int {
	if hi > 0 && x > hi {
		return hi
	}
	if x < lo {
		return lo
	}
	return x
}

func clampChange(prev, next int, upFactor float64, downPct int) int {
	if prev <= 0 {
		return next
	}
	maxUp := int(math.Ceil(float64(prev) * upFactor))
	minDown := int(math.Floor(float64(prev) * (1.0 - float64(downPct)/100.0)))
	if next > maxUp {
		return maxUp
	}
	if next < minDown {
		return minDown
	}
	return next
}
