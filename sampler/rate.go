package sampler

import (
	"math"

	"github.com/shirou/gopsutil/v3/cpu"
)

// CPUUsagePercent derives a usage percentage from two cumulative tick
// counter samples. A non-positive total delta (counter reset, clock skew,
// first sample) yields 0 rather than a negative or NaN value.
func CPUUsagePercent(prev, cur cpu.TimesStat) float64 {
	totalDelta := cur.Total() - prev.Total()
	if totalDelta <= 0 {
		return 0
	}
	idleDelta := (cur.Idle + cur.Iowait) - (prev.Idle + prev.Iowait)
	busyDelta := totalDelta - idleDelta
	pct := 100 * busyDelta / totalDelta
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return round2(pct)
}

// BytesPerSec derives a transfer rate from two cumulative byte counters
// and the measured elapsed interval. A counter decrease (interface
// restart) or non-positive interval yields 0, never a negative rate.
func BytesPerSec(prev, cur uint64, elapsedSeconds float64) float64 {
	if elapsedSeconds <= 0 || cur < prev {
		return 0
	}
	return round2(float64(cur-prev) / elapsedSeconds)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
