package dip

import "math"

// DefaultSlope is the fallback rate of change (KG per 1.0 DIP) used when
// fewer than two calibration points exist. 2.5 KG per 0.1 DIP is the
// nominal fill rate for the tank geometry this tool was built around; it
// can be overridden through the config file.
const DefaultSlope = 25.0

// Clamp factors applied to the local interval rate, relative to the mean
// rate over all intervals.
const (
	clampLow  = 0.5
	clampHigh = 1.5
)

// intervalRate is the quantity change per 0.1 DIP across one interval.
// A zero-width interval has no usable slope and contributes 0.
func intervalRate(d1, d2, v1, v2 float64) float64 {
	if d2 == d1 {
		return 0
	}
	return (v2 - v1) / ((d2 - d1) * 10)
}

// smartSlope computes the extrapolation rate (per 1.0 DIP) to use at
// target. The rate of the interval nearest to target (the first interval
// when extrapolating below the range, the last when above) is clamped
// into [0.5, 1.5] times the mean rate over all intervals, so one
// anomalous interval cannot drive an extrapolated value far away from
// the observed trend. The bounds swap when the mean is negative, keeping
// the clamp directionally consistent for falling trends.
func (s calibrationSet) smartSlope(target, fallback float64) float64 {
	if len(s.dips) < 2 {
		return fallback
	}

	rates := make([]float64, 0, len(s.dips)-1)
	for i := 0; i < len(s.dips)-1; i++ {
		d1, d2 := s.dips[i], s.dips[i+1]
		rates = append(rates, intervalRate(d1, d2, s.values[d1], s.values[d2]))
	}

	avg := 0.0
	for _, r := range rates {
		avg += r
	}
	avg /= float64(len(rates))

	var local float64
	switch {
	case target < s.min():
		local = rates[0]
	case target > s.max():
		local = rates[len(rates)-1]
	default:
		// Nearest interval by midpoint distance.
		best := 0
		bestDist := math.Inf(1)
		for i := 0; i < len(s.dips)-1; i++ {
			mid := (s.dips[i] + s.dips[i+1]) / 2
			if d := math.Abs(target - mid); d < bestDist {
				bestDist = d
				best = i
			}
		}
		local = rates[best]
	}

	lo, hi := avg*clampLow, avg*clampHigh
	var clamped float64
	if avg >= 0 {
		clamped = math.Max(lo, math.Min(hi, local))
	} else {
		clamped = math.Max(hi, math.Min(lo, local))
	}

	// Back to a per-1.0-DIP rate.
	return clamped * 10
}
