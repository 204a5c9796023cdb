package model

// Cutoff is a checkpoint deadline: a runner still below DistanceM once the
// clock passes TimeSec (plus the runner's wave offset) is retired.
type Cutoff struct {
	DistanceM float64
	TimeSec   float64
}

// NewCutoff builds a Cutoff from the km/hours form used in configs.
func NewCutoff(distanceKm, timeHours float64) Cutoff {
	return Cutoff{DistanceM: distanceKm * 1000, TimeSec: timeHours * 3600}
}
