package domain

import "slices"

// maxWindFold is the accumulator for SelectMaxWindLandfall: the highest
// landfall wind seen so far and every landfall point at that speed, in order.
type maxWindFold struct {
	seen     bool
	maxSpeed int
	tied     []TrackPoint
}

// step folds one track point into the accumulator without mutating it.
func (f maxWindFold) step(p TrackPoint) maxWindFold {
	if !p.IsLandfall() {
		return f
	}
	switch {
	case !f.seen || p.WindSpeedKnots > f.maxSpeed:
		return maxWindFold{seen: true, maxSpeed: p.WindSpeedKnots, tied: []TrackPoint{p}}
	case p.WindSpeedKnots == f.maxSpeed:
		return maxWindFold{seen: true, maxSpeed: f.maxSpeed, tied: append(slices.Clip(f.tied), p)}
	default:
		return f
	}
}

// lowestPressure picks the tied point with the lowest pressure; the earliest
// point wins when pressures are equal.
func (f maxWindFold) lowestPressure() (TrackPoint, bool) {
	if len(f.tied) == 0 {
		return TrackPoint{}, false
	}
	best := f.tied[0]
	for _, p := range f.tied[1:] {
		if p.PressureMillibars < best.PressureMillibars {
			best = p
		}
	}
	return best, true
}

// SelectMaxWindLandfall returns the landfall point with the highest wind speed.
// Equal speeds are broken by the lowest pressure, then by file order.
// The boolean is false when the storm has no landfall points.
//
// Pressure sentinels are compared numerically like any other value, so an
// unknown pressure (-999) wins a tie.
func SelectMaxWindLandfall(points []TrackPoint) (TrackPoint, bool) {
	var acc maxWindFold
	for _, p := range points {
		acc = acc.step(p)
	}
	return acc.lowestPressure()
}
