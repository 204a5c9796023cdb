package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mountain-software-jp/trail-simulator/pkg/simulation"
)

// mixedFieldTrajectory has one finisher, one mover and one runner stuck at
// 50 m since the first step.
func mixedFieldTrajectory(t *testing.T) *simulation.Trajectory {
	return loadTrajectory(t, "runner_1,runner_2,runner_3,time_sec\n"+
		"0,0,0,0\n"+
		"100,50,50,10\n"+
		"200,100,50,20\n"+
		"300,150,50,30\n")
}

func TestSnapshotAt_ClassifiesField(t *testing.T) {
	traj := mixedFieldTrajectory(t)
	snap := SnapshotAt(traj, 300, 20, 0.1)

	assert.Equal(t, 20.0, snap.TimeSec)
	assert.Equal(t, 2, snap.Active)
	assert.Equal(t, 0, snap.Finished)
	assert.Equal(t, 1, snap.DNF)
	// 100 m bins over a 300 m course, actives at 200 m and 100 m
	assert.Equal(t, []int{0, 1, 1}, snap.DensityKm)
}

func TestSnapshotAt_FinishAndRetire(t *testing.T) {
	traj := mixedFieldTrajectory(t)
	snap := SnapshotAt(traj, 300, 30, 0.1)

	assert.Equal(t, 1, snap.Finished)
	// runner 2 stopped short of the finish: it counts as retired at the
	// final step
	assert.Equal(t, 2, snap.DNF)
	assert.Equal(t, 0, snap.Active)
}

func TestSnapshotAt_TimeResolution(t *testing.T) {
	traj := mixedFieldTrajectory(t)

	// the nearest step is used on either side of the request
	assert.Equal(t, 10.0, SnapshotAt(traj, 300, 14, 1).TimeSec)
	assert.Equal(t, 20.0, SnapshotAt(traj, 300, 16, 1).TimeSec)
	// a tie goes to the earlier step
	assert.Equal(t, 10.0, SnapshotAt(traj, 300, 15, 1).TimeSec)
	// beyond the end the last step is used
	assert.Equal(t, 30.0, SnapshotAt(traj, 300, 9999, 1).TimeSec)
	// before the start the first step is used
	assert.Equal(t, 0.0, SnapshotAt(traj, 300, -5, 1).TimeSec)
}

func TestWriteSnapshotsCSV(t *testing.T) {
	snaps := []Snapshot{
		{TimeSec: 18000, Active: 120, Finished: 3, DNF: 2},
		{TimeSec: 36000, Active: 80, Finished: 40, DNF: 5},
	}
	var buf strings.Builder
	require.NoError(t, WriteSnapshotsCSV(&buf, snaps))

	want := "time_hours,active,finished,dnf\n" +
		"5.00,120,3,2\n" +
		"10.00,80,40,5\n"
	assert.Equal(t, want, buf.String())
}
