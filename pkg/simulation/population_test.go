package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestPopulation_MassStartByDefault(t *testing.T) {
	runners, err := NewPopulation(PopulationConfig{
		Runners:            20,
		AvgPaceMinPerKm:    10,
		StdDevPaceMinPerKm: 1.5,
		WaveGroups:         1,
	}, rand.NewSource(1))
	require.NoError(t, err)

	for _, r := range runners {
		assert.Equal(t, 0.0, r.StartOffsetSec)
		assert.Equal(t, 0, r.Wave)
	}
}

func TestPopulation_ZeroIntervalIsMassStart(t *testing.T) {
	runners, err := NewPopulation(PopulationConfig{
		Runners:            10,
		AvgPaceMinPerKm:    10,
		StdDevPaceMinPerKm: 1.5,
		WaveGroups:         4,
	}, rand.NewSource(1))
	require.NoError(t, err)

	for _, r := range runners {
		assert.Equal(t, 0.0, r.StartOffsetSec)
	}
}

func TestPopulation_WaveOffsets(t *testing.T) {
	runners, err := NewPopulation(PopulationConfig{
		Runners:             10,
		AvgPaceMinPerKm:     10,
		StdDevPaceMinPerKm:  1.5,
		WaveGroups:          3,
		WaveIntervalMinutes: 15,
	}, rand.NewSource(1))
	require.NoError(t, err)

	// ceil(10/3) = 4 runners per wave, contiguous blocks in index order
	wantWaves := []int{0, 0, 0, 0, 1, 1, 1, 1, 2, 2}
	for i, r := range runners {
		assert.Equal(t, wantWaves[i], r.Wave, "runner %d", i)
		assert.Equal(t, float64(wantWaves[i])*15*60, r.StartOffsetSec, "runner %d", i)
	}
}

func TestPopulation_PaceAlwaysPositive(t *testing.T) {
	// a distribution with most of its mass below zero still yields
	// positive paces
	runners, err := NewPopulation(PopulationConfig{
		Runners:            1000,
		AvgPaceMinPerKm:    0.1,
		StdDevPaceMinPerKm: 5,
	}, rand.NewSource(7))
	require.NoError(t, err)

	for _, r := range runners {
		assert.Greater(t, r.PaceSecPerMeter, 0.0)
	}
}

func TestPopulation_SeededAndReproducible(t *testing.T) {
	cfg := PopulationConfig{
		Runners:            50,
		AvgPaceMinPerKm:    10,
		StdDevPaceMinPerKm: 1.5,
	}
	first, err := NewPopulation(cfg, rand.NewSource(42))
	require.NoError(t, err)
	second, err := NewPopulation(cfg, rand.NewSource(42))
	require.NoError(t, err)
	other, err := NewPopulation(cfg, rand.NewSource(43))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestPopulation_PaceCentersOnAverage(t *testing.T) {
	runners, err := NewPopulation(PopulationConfig{
		Runners:            5000,
		AvgPaceMinPerKm:    10,
		StdDevPaceMinPerKm: 1.5,
	}, rand.NewSource(3))
	require.NoError(t, err)

	sum := 0.0
	for _, r := range runners {
		sum += r.PaceSecPerMeter
	}
	mean := sum / float64(len(runners))
	// 10 min/km is 0.6 sec/m
	assert.InDelta(t, 0.6, mean, 0.01)
}

func TestPopulation_RejectsBadConfig(t *testing.T) {
	src := rand.NewSource(1)
	_, err := NewPopulation(PopulationConfig{Runners: 0, AvgPaceMinPerKm: 10}, src)
	assert.Error(t, err)
	_, err = NewPopulation(PopulationConfig{Runners: 5, AvgPaceMinPerKm: 0}, src)
	assert.Error(t, err)
	_, err = NewPopulation(PopulationConfig{
		Runners: 5, AvgPaceMinPerKm: 10, StdDevPaceMinPerKm: -1,
	}, src)
	assert.Error(t, err)
}
