package simulation

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/exp/rand"

	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

// randomChunkSizeM is the granularity used when placing random single-track
// sections along the course.
const randomChunkSizeM = 100.0

// ResolveSections turns section specs of any style into the canonical
// ordered list of capacity ranges. Specs are resolved in input order, so a
// later range overrides an earlier one where they overlap once applied.
// rng is only consulted for SectionRandom specs.
func ResolveSections(
	course *model.Course, specs []model.SectionSpec, rng *rand.Rand,
) ([]model.CapacityRange, error) {
	ranges := make([]model.CapacityRange, 0, len(specs))
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		switch spec.Kind {
		case model.SectionExplicit:
			ranges = append(ranges, model.CapacityRange{
				StartM:   spec.StartKm * 1000,
				EndM:     spec.EndKm * 1000,
				Capacity: spec.Capacity,
			})
		case model.SectionPercentage:
			length := course.Length()
			ranges = append(ranges, model.CapacityRange{
				StartM:   length * spec.StartPercent / 100,
				EndM:     length * spec.EndPercent / 100,
				Capacity: spec.Capacity,
			})
		case model.SectionRandom:
			if rng == nil {
				return nil, fmt.Errorf("section %d: random sections need a random source", i)
			}
			ranges = append(ranges, placeRandomChunks(course.Length(), spec, rng)...)
		}
	}
	return ranges, nil
}

// placeRandomChunks picks chunks covering spec.TotalPercent of the course
// without replacement and merges adjacent picks into contiguous ranges.
func placeRandomChunks(
	lengthM float64, spec model.SectionSpec, rng *rand.Rand,
) []model.CapacityRange {
	numChunks := int(math.Ceil(lengthM / randomChunkSizeM))
	numPicked := int(float64(numChunks) * spec.TotalPercent / 100)
	if numPicked == 0 {
		return nil
	}
	picked := rng.Perm(numChunks)[:numPicked]
	slices.Sort(picked)

	ranges := []model.CapacityRange{}
	start, end := picked[0], picked[0]
	flush := func() {
		ranges = append(ranges, model.CapacityRange{
			StartM:   float64(start) * randomChunkSizeM,
			EndM:     float64(end+1) * randomChunkSizeM,
			Capacity: spec.Capacity,
		})
	}
	for _, chunk := range picked[1:] {
		if chunk == end+1 {
			end = chunk
			continue
		}
		flush()
		start, end = chunk, chunk
	}
	flush()
	return ranges
}

// ApplyRanges overlays the resolved capacity ranges on the course, in order.
func ApplyRanges(course *model.Course, ranges []model.CapacityRange) {
	for _, r := range ranges {
		course.SetCapacity(r.StartM, r.EndM, r.Capacity)
	}
}
