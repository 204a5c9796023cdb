package model

// RunnerStatus is the lifecycle state of a runner during a simulation run.
// Finished and DNF are terminal: the runner's position freezes.
type RunnerStatus int

const (
	StatusNotStarted RunnerStatus = iota
	StatusActive
	StatusFinished
	StatusDNF
)

func (s RunnerStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "NotStarted"
	case StatusActive:
		return "Active"
	case StatusFinished:
		return "Finished"
	case StatusDNF:
		return "DNF"
	default:
		return "Unknown"
	}
}

// Runner holds the static attributes of a single participant.
type Runner struct {
	ID              int
	PaceSecPerMeter float64
	StartOffsetSec  float64
	Wave            int
}
