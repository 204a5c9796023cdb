package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Full(t *testing.T) {
	scenario, err := LoadScenario(writeScenario(t, `
runners: 2000
avgPaceMinPerKm: 9.5
stdDevPaceMinPerKm: 1.2
timeLimitHours: 26
waveGroups: 4
waveIntervalMinutes: 15
seed: 42
cutoffs:
  - distanceKm: 46
    timeHours: 11
  - distanceKm: 80
    timeHours: 19
singleTracks:
  explicit:
    - startKm: 12
      endKm: 14.5
      capacity: 2
  percentage:
    - startPercent: 60
      endPercent: 65
      capacity: 3
  random:
    percent: 10
    capacity: 1
`))
	require.NoError(t, err)

	assert.Equal(t, 2000, scenario.Runners)
	assert.Equal(t, 9.5, scenario.AvgPaceMinPerKm)
	assert.Equal(t, uint64(42), scenario.Seed)

	cutoffs := scenario.CutoffList()
	require.Len(t, cutoffs, 2)
	assert.Equal(t, model.Cutoff{DistanceM: 46000, TimeSec: 39600}, cutoffs[0])

	specs := scenario.SectionSpecs()
	require.Len(t, specs, 3)
	assert.Equal(t, model.ExplicitSection(12, 14.5, 2), specs[0])
	assert.Equal(t, model.PercentageSection(60, 65, 3), specs[1])
	assert.Equal(t, model.RandomSection(10, 1), specs[2])
}

func TestLoadScenario_DefaultsApply(t *testing.T) {
	scenario, err := LoadScenario(writeScenario(t, "runners: 100\n"))
	require.NoError(t, err)

	assert.Equal(t, 100, scenario.Runners)
	assert.Equal(t, 10.0, scenario.AvgPaceMinPerKm)
	assert.Equal(t, 1.5, scenario.StdDevPaceMinPerKm)
	assert.Equal(t, 24.0, scenario.TimeLimitHours)
	assert.Empty(t, scenario.SectionSpecs())
	assert.Empty(t, scenario.CutoffList())
}

func TestLoadScenario_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"zero runners", "runners: 0\n"},
		{"negative pace", "avgPaceMinPerKm: -3\n"},
		{"inverted section", "singleTracks:\n  explicit:\n    - startKm: 5\n      endKm: 2\n      capacity: 2\n"},
		{"zero capacity", "singleTracks:\n  random:\n    percent: 10\n    capacity: 0\n"},
		{"cutoff without time", "cutoffs:\n  - distanceKm: 46\n"},
		{"not yaml", "runners: [unclosed\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
