package simulation

import (
	"math"

	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

// Cell is one fixed-width slice of the course. Capacity and gradient are
// taken from the course sample nearest to the cell midpoint.
type Cell struct {
	Capacity int
	Gradient float64
}

// BuildCells discretizes the course into cells of cellSize meters.
func BuildCells(course *model.Course, cellSize float64) []Cell {
	numCells := int(math.Ceil(course.Length() / cellSize))
	cells := make([]Cell, numCells)
	for i := range cells {
		midpoint := float64(i)*cellSize + cellSize/2
		sample := course.Sample(course.NearestIndex(midpoint))
		cells[i] = Cell{Capacity: sample.Capacity, Gradient: sample.Gradient}
	}
	return cells
}
