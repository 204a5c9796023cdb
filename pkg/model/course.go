package model

import "fmt"

// CourseSample is one row of the course table. Distance is cumulative from
// the start, Gradient is the percent slope of the segment ending at this
// sample.
type CourseSample struct {
	Distance  float64
	Elevation float64
	Gradient  float64
	Latitude  float64
	Longitude float64
	Capacity  int
}

// Course is the immutable spatial profile of the race route. Samples are
// ordered by non-decreasing distance and cover [0, Length()].
type Course struct {
	samples []CourseSample
}

// DefaultCapacity is the effectively unbounded capacity assigned to course
// samples outside any single-track section (a wide path).
const DefaultCapacity = 1000

// NewCourse validates the sample sequence and wraps it. Samples with
// capacity 0 get DefaultCapacity.
func NewCourse(samples []CourseSample) (*Course, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("course needs at least 2 samples, got %d", len(samples))
	}
	for i := range samples {
		if i > 0 && samples[i].Distance < samples[i-1].Distance {
			return nil, fmt.Errorf(
				"course distances must be non-decreasing: sample %d (%.1fm) after %.1fm",
				i, samples[i].Distance, samples[i-1].Distance)
		}
		if samples[i].Capacity == 0 {
			samples[i].Capacity = DefaultCapacity
		}
	}
	return &Course{samples: samples}, nil
}

func (c *Course) Samples() []CourseSample { return c.samples }

func (c *Course) Sample(i int) CourseSample { return c.samples[i] }

func (c *Course) NumSamples() int { return len(c.samples) }

// Length is the total course length in meters.
func (c *Course) Length() float64 {
	return c.samples[len(c.samples)-1].Distance
}

// NearestIndex returns the index of the sample closest to distance.
// Ties resolve to the lower index.
func (c *Course) NearestIndex(distance float64) int {
	lo, hi := 0, len(c.samples)
	for lo < hi {
		mid := (lo + hi) / 2
		if c.samples[mid].Distance < distance {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	// lo is the first sample with Distance >= distance
	if lo == 0 {
		return 0
	}
	if lo == len(c.samples) {
		return len(c.samples) - 1
	}
	if distance-c.samples[lo-1].Distance <= c.samples[lo].Distance-distance {
		return lo - 1
	}
	return lo
}

// SetCapacity assigns capacity to every sample whose distance falls within
// [startM, endM].
func (c *Course) SetCapacity(startM, endM float64, capacity int) {
	for i := range c.samples {
		if c.samples[i].Distance >= startM && c.samples[i].Distance <= endM {
			c.samples[i].Capacity = capacity
		}
	}
}
