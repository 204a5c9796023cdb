package simulation

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Trajectory is the recorded output of a run: one row per step holding
// every runner's position plus the simulated time of that step.
type Trajectory struct {
	stepDuration float64
	times        []float64
	positions    [][]float64 // steps x runners
}

func newTrajectory(steps, runners int, stepDuration float64) *Trajectory {
	traj := &Trajectory{
		stepDuration: stepDuration,
		times:        make([]float64, steps),
		positions:    make([][]float64, steps),
	}
	for t := range traj.positions {
		traj.times[t] = float64(t) * stepDuration
		traj.positions[t] = make([]float64, runners)
	}
	return traj
}

func (tr *Trajectory) record(step int, positions []float64) {
	copy(tr.positions[step], positions)
}

func (tr *Trajectory) NumSteps() int   { return len(tr.positions) }
func (tr *Trajectory) NumRunners() int {
	if len(tr.positions) == 0 {
		return 0
	}
	return len(tr.positions[0])
}

func (tr *Trajectory) StepDuration() float64 { return tr.stepDuration }

// Time returns the simulated time of a step in seconds.
func (tr *Trajectory) Time(step int) float64 { return tr.times[step] }

// Position returns runner's position at the given step in meters.
func (tr *Trajectory) Position(step, runner int) float64 {
	return tr.positions[step][runner]
}

// FinalPosition is the runner's position at the last recorded step.
func (tr *Trajectory) FinalPosition(runner int) float64 {
	return tr.positions[len(tr.positions)-1][runner]
}

// WriteCSV emits the trajectory table: columns runner_1..runner_N followed
// by time_sec, one row per step.
func (tr *Trajectory) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := make([]string, tr.NumRunners()+1)
	for r := range tr.NumRunners() {
		header[r] = fmt.Sprintf("runner_%d", r+1)
	}
	header[tr.NumRunners()] = "time_sec"
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for t := range tr.positions {
		for r, pos := range tr.positions[t] {
			row[r] = strconv.FormatFloat(pos, 'f', -1, 64)
		}
		row[len(row)-1] = strconv.FormatFloat(tr.times[t], 'f', -1, 64)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTrajectoryCSV parses a trajectory table written by WriteCSV. Runner
// columns are matched by the runner_ prefix, so extra columns are ignored.
func ReadTrajectoryCSV(r io.Reader) (*Trajectory, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading trajectory: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("trajectory has no data rows")
	}

	header := records[0]
	runnerCols := []int{}
	timeCol := -1
	for i, name := range header {
		switch {
		case strings.HasPrefix(name, "runner_"):
			runnerCols = append(runnerCols, i)
		case name == "time_sec":
			timeCol = i
		}
	}
	if len(runnerCols) == 0 {
		return nil, fmt.Errorf("trajectory has no runner_ columns")
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("trajectory has no time_sec column")
	}

	traj := &Trajectory{
		times:     make([]float64, 0, len(records)-1),
		positions: make([][]float64, 0, len(records)-1),
	}
	for line, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[timeCol], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad time %q: %w", line+2, rec[timeCol], err)
		}
		row := make([]float64, len(runnerCols))
		for j, col := range runnerCols {
			row[j], err = strconv.ParseFloat(rec[col], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad position %q: %w", line+2, rec[col], err)
			}
		}
		traj.times = append(traj.times, t)
		traj.positions = append(traj.positions, row)
	}
	if len(traj.times) > 1 {
		traj.stepDuration = traj.times[1] - traj.times[0]
	}
	return traj, nil
}
