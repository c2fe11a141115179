// Package trend labels metric and ratio series as Improving, Stable or
// Declining from their last two periods.
package trend

import "math"

// Label is the trend classification attached to a series.
type Label string

const (
	Improving Label = "Improving"
	Stable    Label = "Stable"
	Declining Label = "Declining"
)

// StableBandPct is the dead band: absolute changes under 2% read as Stable.
const StableBandPct = 2.0

// ChangePercent returns the last-two-points change:
// (last - prev) / |prev| x 100. Series with fewer than two points or a zero
// prior period return 0.
func ChangePercent(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	prev := series[len(series)-2]
	last := series[len(series)-1]
	if prev == 0 {
		return 0
	}
	return (last - prev) / math.Abs(prev) * 100
}

// Classify labels a series. lowerIsBetter is supplied by the caller per
// metric (expense ratios, leverage) and never inferred from the data.
func Classify(series []float64, lowerIsBetter bool) Label {
	if len(series) < 2 {
		return Stable
	}
	if series[len(series)-2] == 0 {
		return Stable
	}

	change := ChangePercent(series)
	if math.Abs(change) < StableBandPct {
		return Stable
	}

	if (change > 0) != lowerIsBetter {
		return Improving
	}
	return Declining
}

// ClassifyAll labels every series in a map. Metrics absent from
// lowerIsBetter default to higher-is-better.
func ClassifyAll(series map[string][]float64, lowerIsBetter map[string]bool) map[string]Label {
	out := make(map[string]Label, len(series))
	for name, vals := range series {
		out[name] = Classify(vals, lowerIsBetter[name])
	}
	return out
}
