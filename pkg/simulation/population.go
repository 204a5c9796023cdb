package simulation

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

// minPaceSecPerMeter is the floor below which a sampled pace is redrawn.
// The Normal distribution has unbounded tails; a pace at or below zero
// would make a runner move backwards or infinitely fast.
const minPaceSecPerMeter = 1e-3

// PopulationConfig are the static parameters of the starting field.
type PopulationConfig struct {
	Runners             int
	AvgPaceMinPerKm     float64
	StdDevPaceMinPerKm  float64
	WaveGroups          int
	WaveIntervalMinutes float64
}

// NewPopulation draws each runner's baseline pace from
// Normal(avg*60/1000, stddev*60/1000) sec/m using src, and assigns wave
// start offsets: runners are split into WaveGroups contiguous blocks of
// ceil(N/WaveGroups) in index order, block k starting k*interval minutes
// after the gun. WaveGroups <= 1 or a zero interval means a mass start.
func NewPopulation(cfg PopulationConfig, src rand.Source) ([]model.Runner, error) {
	if cfg.Runners < 1 {
		return nil, fmt.Errorf("population needs at least 1 runner, got %d", cfg.Runners)
	}
	if cfg.AvgPaceMinPerKm <= 0 {
		return nil, fmt.Errorf("average pace must be positive, got %.2f min/km",
			cfg.AvgPaceMinPerKm)
	}
	if cfg.StdDevPaceMinPerKm < 0 {
		return nil, fmt.Errorf("pace standard deviation must not be negative, got %.2f",
			cfg.StdDevPaceMinPerKm)
	}

	dist := distuv.Normal{
		Mu:    cfg.AvgPaceMinPerKm * 60 / 1000,
		Sigma: cfg.StdDevPaceMinPerKm * 60 / 1000,
		Src:   src,
	}

	runnersPerWave := cfg.Runners
	if cfg.WaveGroups > 1 && cfg.WaveIntervalMinutes > 0 {
		runnersPerWave = int(math.Ceil(float64(cfg.Runners) / float64(cfg.WaveGroups)))
	}

	runners := make([]model.Runner, cfg.Runners)
	for i := range runners {
		pace := dist.Rand()
		for pace < minPaceSecPerMeter {
			pace = dist.Rand()
		}
		wave := i / runnersPerWave
		offset := 0.0
		if cfg.WaveGroups > 1 && cfg.WaveIntervalMinutes > 0 {
			offset = float64(wave) * cfg.WaveIntervalMinutes * 60
		}
		runners[i] = model.Runner{
			ID:              i + 1,
			PaceSecPerMeter: pace,
			StartOffsetSec:  offset,
			Wave:            wave,
		}
	}
	return runners, nil
}
