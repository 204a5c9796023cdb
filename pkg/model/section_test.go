package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionSpec_Validate(t *testing.T) {
	assert.NoError(t, ExplicitSection(2, 3.5, 1).Validate())
	assert.NoError(t, PercentageSection(0, 100, 5).Validate())
	assert.NoError(t, RandomSection(30, 2).Validate())

	assert.Error(t, ExplicitSection(2, 2, 1).Validate())
	assert.Error(t, ExplicitSection(-1, 2, 1).Validate())
	assert.Error(t, ExplicitSection(2, 3, 0).Validate())
	assert.Error(t, PercentageSection(30, 10, 1).Validate())
	assert.Error(t, PercentageSection(0, 101, 1).Validate())
	assert.Error(t, RandomSection(0, 1).Validate())
	assert.Error(t, RandomSection(110, 1).Validate())
	assert.Error(t, SectionSpec{Kind: SectionKind(99), Capacity: 1}.Validate())
}

func TestNewCutoff(t *testing.T) {
	c := NewCutoff(46, 11)
	assert.Equal(t, 46000.0, c.DistanceM)
	assert.Equal(t, 39600.0, c.TimeSec)
}

func TestRunnerStatus_String(t *testing.T) {
	assert.Equal(t, "NotStarted", StatusNotStarted.String())
	assert.Equal(t, "Active", StatusActive.String())
	assert.Equal(t, "Finished", StatusFinished.String())
	assert.Equal(t, "DNF", StatusDNF.String())
}
