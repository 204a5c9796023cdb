package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

func TestBuildCells_CountAndDefaults(t *testing.T) {
	course := flatCourse(t, 1000)
	cells := BuildCells(course, 10)

	require.Len(t, cells, 100)
	for _, c := range cells {
		assert.Equal(t, model.DefaultCapacity, c.Capacity)
		assert.Equal(t, 0.0, c.Gradient)
	}
}

func TestBuildCells_PartialLastCell(t *testing.T) {
	course, err := model.NewCourse([]model.CourseSample{
		{Distance: 0},
		{Distance: 95},
	})
	require.NoError(t, err)

	// 95 m at 10 m cells rounds up to 10 cells
	assert.Len(t, BuildCells(course, 10), 10)
}

func TestBuildCells_TakesCapacityFromMidpointSample(t *testing.T) {
	course := flatCourse(t, 1000)
	course.SetCapacity(500, 509, 1)

	cells := BuildCells(course, 10)
	// only cell 50 has its midpoint (505 m) nearest the 500 m sample
	assert.Equal(t, 1, cells[50].Capacity)
	assert.Equal(t, model.DefaultCapacity, cells[49].Capacity)
	assert.Equal(t, model.DefaultCapacity, cells[51].Capacity)
}

func TestBuildCells_TakesGradientFromMidpointSample(t *testing.T) {
	course := gradedCourse(t, 100, 5)
	cells := BuildCells(course, 10)
	for _, c := range cells {
		assert.Equal(t, 5.0, c.Gradient)
	}
}
