package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mountain-software-jp/trail-simulator/pkg/config"
)

func resetFlags() {
	config.ScenarioFile = ""
	config.Runners = 500
	config.AvgPaceMinPerKm = 10
	config.StdDevPaceMinPerKm = 1.5
	config.TimeLimitHours = 24
	config.WaveGroups = 1
	config.WaveIntervalMinutes = 0
	config.Seed = 0
	config.SingleTracks = nil
	config.PercentTracks = nil
	config.RandomTrack = ""
	config.Cutoffs = nil
}

func TestResolveScenario_FromFlags(t *testing.T) {
	resetFlags()
	config.Runners = 1200
	config.Seed = 7
	config.SingleTracks = []string{"12,14.5,2", "20,21,1"}
	config.Cutoffs = []string{"46,11"}

	scenario, err := resolveScenario()
	require.NoError(t, err)

	assert.Equal(t, 1200, scenario.Runners)
	assert.Equal(t, uint64(7), scenario.Seed)
	require.Len(t, scenario.SingleTracks.Explicit, 2)
	assert.Equal(t, config.ExplicitSection{StartKm: 12, EndKm: 14.5, Capacity: 2},
		scenario.SingleTracks.Explicit[0])
	require.Len(t, scenario.Cutoffs, 1)
	assert.Equal(t, config.CutoffSpec{DistanceKm: 46, TimeHours: 11},
		scenario.Cutoffs[0])
}

func TestResolveScenario_SectionStylesAreExclusive(t *testing.T) {
	resetFlags()
	config.SingleTracks = []string{"12,14,2"}
	config.RandomTrack = "10,1"

	_, err := resolveScenario()
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestResolveScenario_BadFlagValues(t *testing.T) {
	cases := []struct {
		name string
		set  func()
	}{
		{"malformed section", func() { config.SingleTracks = []string{"12,14"} }},
		{"non-numeric section", func() { config.SingleTracks = []string{"a,b,c"} }},
		{"malformed cutoff", func() { config.Cutoffs = []string{"46"} }},
		{"zero runners", func() { config.Runners = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resetFlags()
			tc.set()
			_, err := resolveScenario()
			assert.Error(t, err)
		})
	}
}

func TestParseFloats(t *testing.T) {
	vals, err := parseFloats(" 12, 14.5 ,2", 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{12, 14.5, 2}, vals)

	_, err = parseFloats("12,14", 3)
	assert.ErrorContains(t, err, "want 3")

	_, err = parseFloats("12,x,2", 3)
	assert.Error(t, err)
}
