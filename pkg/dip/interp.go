package dip

import "sort"

// valueAt resolves the quantity at an arbitrary DIP. Calibrated points
// return their stored value exactly. Targets between two points use
// straight-line interpolation between the nearest lower and upper points.
// Targets outside the calibrated range are projected from the nearest
// endpoint using the clamped slope. An empty set yields 0; callers check
// emptiness before treating that as a meaningful quantity.
//
// Every branch is total: valueAt never fails, whatever the input.
func (s calibrationSet) valueAt(target, fallbackSlope float64) float64 {
	if v, ok := s.values[target]; ok {
		return v
	}
	if s.empty() {
		return 0
	}

	i := sort.SearchFloat64s(s.dips, target)
	switch {
	case i > 0 && i < len(s.dips):
		d1, d2 := s.dips[i-1], s.dips[i]
		v1, v2 := s.values[d1], s.values[d2]
		return v1 + (target-d1)*(v2-v1)/(d2-d1)
	case i == len(s.dips):
		// Only lower points exist: project forward from the highest.
		d1 := s.max()
		return s.values[d1] + (target-d1)*s.smartSlope(target, fallbackSlope)
	default:
		// Only upper points exist: project backward from the lowest.
		d2 := s.min()
		return s.values[d2] - (d2-target)*s.smartSlope(target, fallbackSlope)
	}
}
