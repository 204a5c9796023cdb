// Package simulation implements the congestion engine: a discrete-time,
// capacity-constrained model of runners moving along a course.
//
// Each step has a strict internal ordering: the cell occupancy snapshot is
// rebuilt from the current positions, cutoffs are evaluated, then runners
// move in descending-position order, claiming cells one at a time. That
// ordering is a correctness invariant: it gives runners further along the
// course priority for scarce cells, so a leader clears a bottleneck before
// a trailing runner attempts to enter it.
package simulation

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/mountain-software-jp/trail-simulator/log"
	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

const (
	// DefaultStepDurationSec is the simulation clock increment.
	DefaultStepDurationSec = 10.0
	// DefaultCellSizeM is the width of one occupancy cell.
	DefaultCellSizeM = 10.0
	// DefaultTimeLimitHours is the race time limit when none is configured.
	DefaultTimeLimitHours = 24.0

	// boundaryEpsilonM keeps a blocked runner just short of the contested
	// cell's start so it does not count against that cell's occupancy.
	boundaryEpsilonM = 0.01

	uphillFactorPerPercent   = 0.02
	downhillFactorPerPercent = 0.01
	minPaceFactor            = 0.2
)

// Engine owns the mutable per-run state (positions, statuses, occupancy)
// and advances it one step at a time. Course and runner inputs are
// read-only, so independent engines can run concurrently for parameter
// sweeps.
type Engine struct {
	course  *model.Course
	runners []model.Runner
	cutoffs []model.Cutoff

	stepDuration   float64
	cellSize       float64
	timeLimitHours float64
	logger         *log.Logger

	cells     []Cell
	positions []float64
	statuses  []model.RunnerStatus
	occupancy []int
	order     []int
}

type Option func(*Engine)

func WithCutoffs(cutoffs []model.Cutoff) Option {
	return func(e *Engine) { e.cutoffs = cutoffs }
}

func WithStepDuration(seconds float64) Option {
	return func(e *Engine) { e.stepDuration = seconds }
}

func WithCellSize(meters float64) Option {
	return func(e *Engine) { e.cellSize = meters }
}

func WithTimeLimit(hours float64) Option {
	return func(e *Engine) { e.timeLimitHours = hours }
}

func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func NewEngine(course *model.Course, runners []model.Runner, opts ...Option) (
	*Engine, error,
) {
	if course == nil {
		return nil, fmt.Errorf("engine needs a course")
	}
	if len(runners) == 0 {
		return nil, fmt.Errorf("engine needs at least one runner")
	}
	e := &Engine{
		course:         course,
		runners:        runners,
		stepDuration:   DefaultStepDurationSec,
		cellSize:       DefaultCellSizeM,
		timeLimitHours: DefaultTimeLimitHours,
		logger:         log.Default().Named("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.stepDuration <= 0 {
		return nil, fmt.Errorf("step duration must be positive, got %.1f", e.stepDuration)
	}
	if e.cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %.1f", e.cellSize)
	}
	if e.timeLimitHours <= 0 {
		return nil, fmt.Errorf("time limit must be positive, got %.1f", e.timeLimitHours)
	}
	e.cells = BuildCells(course, e.cellSize)
	n := len(runners)
	e.positions = make([]float64, n)
	e.statuses = make([]model.RunnerStatus, n)
	e.occupancy = make([]int, len(e.cells))
	e.order = make([]int, n)
	return e, nil
}

// TotalSteps is the number of recorded steps, including step 0.
func (e *Engine) TotalSteps() int {
	return int(e.timeLimitHours * 3600 / e.stepDuration)
}

// Run executes the whole simulation. The context is checked once per step;
// cancellation aborts the run without producing output.
func (e *Engine) Run(ctx context.Context) (*Trajectory, error) {
	totalSteps := e.TotalSteps()
	if totalSteps < 2 {
		return nil, fmt.Errorf("time limit %.2fh yields %d steps, need at least 2",
			e.timeLimitHours, totalSteps)
	}
	e.logger.Info("starting run",
		log.Int("runners", len(e.runners)),
		log.Int("steps", totalSteps),
		log.Int("cells", len(e.cells)),
		log.Float64("courseLengthM", e.course.Length()))

	traj := newTrajectory(totalSteps, len(e.runners), e.stepDuration)
	traj.record(0, e.positions)
	for t := 1; t < totalSteps; t++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run aborted at step %d: %w", t, err)
		}
		e.step(t)
		traj.record(t, e.positions)
	}

	finished, dnf := 0, 0
	for _, s := range e.statuses {
		switch s {
		case model.StatusFinished:
			finished++
		case model.StatusDNF:
			dnf++
		}
	}
	e.logger.Info("run complete",
		log.Int("finished", finished),
		log.Int("dnf", dnf),
		log.Int("onCourse", len(e.runners)-finished-dnf))
	return traj, nil
}

// Statuses returns the per-runner status after the last executed step.
func (e *Engine) Statuses() []model.RunnerStatus {
	return slices.Clone(e.statuses)
}

func (e *Engine) step(t int) {
	now := float64(t) * e.stepDuration

	// Fresh occupancy snapshot from current positions. DNF runners have
	// left the course and do not occupy cells.
	for i := range e.occupancy {
		e.occupancy[i] = 0
	}
	for r := range e.positions {
		if e.statuses[r] == model.StatusDNF {
			continue
		}
		if c := int(e.positions[r] / e.cellSize); c < len(e.cells) {
			e.occupancy[c]++
		}
	}

	e.applyCutoffs(now)

	// Descending current position; equal positions keep original runner
	// order so results are reproducible.
	for i := range e.order {
		e.order[i] = i
	}
	slices.SortStableFunc(e.order, func(a, b int) int {
		switch {
		case e.positions[a] > e.positions[b]:
			return -1
		case e.positions[a] < e.positions[b]:
			return 1
		default:
			return a - b
		}
	})

	length := e.course.Length()
	for _, r := range e.order {
		status := e.statuses[r]
		if status == model.StatusDNF || status == model.StatusFinished {
			continue
		}
		if now < e.runners[r].StartOffsetSec {
			continue
		}
		if status == model.StatusNotStarted {
			e.statuses[r] = model.StatusActive
		}

		pos := e.positions[r]
		if pos >= length {
			e.statuses[r] = model.StatusFinished
			continue
		}

		curCell := int(pos / e.cellSize)
		ideal := e.stepDuration / (e.runners[r].PaceSecPerMeter * e.paceFactor(curCell))
		idealNext := pos + ideal
		targetCell := int(idealNext / e.cellSize)

		allowed := idealNext
		for c := curCell + 1; c <= targetCell; c++ {
			if c >= len(e.cells) {
				break
			}
			if e.occupancy[c] >= e.cells[c].Capacity {
				allowed = float64(c)*e.cellSize - boundaryEpsilonM
				break
			}
			e.occupancy[c]++
		}

		newPos := math.Min(allowed, length)
		e.positions[r] = newPos
		if newPos >= length {
			e.statuses[r] = model.StatusFinished
		}
	}
}

// paceFactor is the gradient adjustment for the given cell: uphill slows a
// runner twice as much per percent as downhill speeds it up, and the factor
// is floored to keep steep descents from producing runaway speed.
func (e *Engine) paceFactor(cell int) float64 {
	if cell >= len(e.cells) {
		return 1
	}
	g := e.cells[cell].Gradient
	factor := 1 + g*downhillFactorPerPercent
	if g > 0 {
		factor = 1 + g*uphillFactorPerPercent
	}
	return math.Max(factor, minPaceFactor)
}
