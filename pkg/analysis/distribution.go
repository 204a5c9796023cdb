package analysis

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/mountain-software-jp/trail-simulator/pkg/simulation"
)

// Snapshot classifies the field at one point in time. A runner is Finished
// once its position reached the course length; a runner still short of the
// finish whose position already equals its final recorded position has
// stopped moving for good and counts as DNF; everyone else is active.
type Snapshot struct {
	TimeSec   float64
	Active    int
	Finished  int
	DNF       int
	DensityKm []int // active runners per km bin along the course
}

// SnapshotAt computes the field snapshot at timeSec. courseLengthM is the
// finish distance; density is binned per binKm kilometers.
func SnapshotAt(
	traj *simulation.Trajectory, courseLengthM, timeSec, binKm float64,
) Snapshot {
	step := stepAt(traj, timeSec)
	numBins := int(math.Ceil(courseLengthM / 1000 / binKm))
	snap := Snapshot{TimeSec: traj.Time(step), DensityKm: make([]int, numBins)}
	for r := range traj.NumRunners() {
		pos := traj.Position(step, r)
		switch {
		case pos >= courseLengthM:
			snap.Finished++
		case pos == traj.FinalPosition(r):
			snap.DNF++
		default:
			snap.Active++
			bin := int(pos / 1000 / binKm)
			if bin >= numBins {
				bin = numBins - 1
			}
			snap.DensityKm[bin]++
		}
	}
	return snap
}

// stepAt returns the step whose time is closest to timeSec; the earlier
// step wins a tie.
func stepAt(traj *simulation.Trajectory, timeSec float64) int {
	best := 0
	bestDiff := math.Abs(traj.Time(0) - timeSec)
	for t := 1; t < traj.NumSteps(); t++ {
		if diff := math.Abs(traj.Time(t) - timeSec); diff < bestDiff {
			best, bestDiff = t, diff
		}
	}
	return best
}

// WriteSnapshotsCSV emits one row per snapshot with the status counts.
func WriteSnapshotsCSV(w io.Writer, snaps []Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"time_hours", "active", "finished", "dnf",
	}); err != nil {
		return err
	}
	for _, s := range snaps {
		err := cw.Write([]string{
			strconv.FormatFloat(s.TimeSec/3600, 'f', 2, 64),
			strconv.Itoa(s.Active),
			strconv.Itoa(s.Finished),
			strconv.Itoa(s.DNF),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
