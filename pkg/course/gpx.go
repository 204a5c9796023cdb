package course

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

// ConvertGPX parses a GPX file into a course table. Cumulative distance is
// accumulated with the haversine formula over consecutive track points, the
// per-segment gradient is the elevation change as a percentage of segment
// distance. Zero-length segments get gradient 0.
func ConvertGPX(path string) (*model.Course, error) {
	gpxFile, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing GPX file %s: %w", path, err)
	}

	samples := []model.CourseSample{}
	cumulative := 0.0
	var prev *gpx.GPXPoint
	for _, track := range gpxFile.Tracks {
		for _, segment := range track.Segments {
			for i := range segment.Points {
				point := &segment.Points[i]
				if prev != nil {
					cumulative += geo.DistanceHaversine(
						orb.Point{prev.Longitude, prev.Latitude},
						orb.Point{point.Longitude, point.Latitude})
				}
				samples = append(samples, model.CourseSample{
					Distance:  cumulative,
					Elevation: point.Elevation.Value(),
					Latitude:  point.Latitude,
					Longitude: point.Longitude,
				})
				prev = point
			}
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("GPX file %s has no track points", path)
	}

	for i := 1; i < len(samples); i++ {
		segDist := samples[i].Distance - samples[i-1].Distance
		if segDist > 0 {
			elevDiff := samples[i].Elevation - samples[i-1].Elevation
			samples[i].Gradient = elevDiff / segDist * 100
		}
	}
	return model.NewCourse(samples)
}
