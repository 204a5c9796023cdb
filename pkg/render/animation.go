// Package render turns a trajectory into a self-contained HTML animation:
// runner dots moving along the course path on a Leaflet map.
package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math"
	"slices"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/mountain-software-jp/trail-simulator/pkg/model"
	"github.com/mountain-software-jp/trail-simulator/pkg/simulation"
)

//go:embed animation.html.tmpl
var animationTemplate string

// Frame holds the visible runner coordinates at one animation timestamp.
type Frame struct {
	TimeSec int
	Points  [][2]float64 // lat, lon
}

// Animation is the prepared payload for the HTML page.
type Animation struct {
	Center [2]float64
	Path   [][2]float64
	Frames []Frame
}

// BuildAnimation samples the trajectory every intervalMin minutes and maps
// each runner distance onto lat/lon by linear interpolation between the two
// course samples bounding it. Runners at or past the finish are dropped
// from a frame. When the field exceeds maxRunners, a random subset is
// displayed; rng drives that selection.
func BuildAnimation(
	traj *simulation.Trajectory,
	course *model.Course,
	intervalMin int,
	maxRunners int,
	rng *rand.Rand,
) (*Animation, error) {
	if intervalMin <= 0 {
		return nil, fmt.Errorf("frame interval must be positive, got %d min", intervalMin)
	}
	if course.Sample(0).Latitude == 0 && course.Sample(0).Longitude == 0 {
		return nil, fmt.Errorf("course has no coordinates; convert it from GPX first")
	}

	selected := make([]int, traj.NumRunners())
	for i := range selected {
		selected[i] = i
	}
	if maxRunners > 0 && traj.NumRunners() > maxRunners {
		if rng == nil {
			return nil, fmt.Errorf("down-sampling %d runners needs a random source",
				traj.NumRunners())
		}
		selected = rng.Perm(traj.NumRunners())[:maxRunners]
		slices.Sort(selected)
	}

	anim := &Animation{}
	latSum, lonSum := 0.0, 0.0
	for _, s := range course.Samples() {
		anim.Path = append(anim.Path, [2]float64{s.Latitude, s.Longitude})
		latSum += s.Latitude
		lonSum += s.Longitude
	}
	n := float64(course.NumSamples())
	anim.Center = [2]float64{latSum / n, lonSum / n}

	intervalSec := float64(intervalMin * 60)
	length := course.Length()
	for t := range traj.NumSteps() {
		timeSec := traj.Time(t)
		if t != 0 && math.Mod(timeSec, intervalSec) != 0 {
			continue
		}
		frame := Frame{TimeSec: int(timeSec)}
		for _, r := range selected {
			pos := traj.Position(t, r)
			if pos >= length {
				continue
			}
			lat, lon := interpolate(course, pos)
			frame.Points = append(frame.Points, [2]float64{lat, lon})
		}
		anim.Frames = append(anim.Frames, frame)
	}
	return anim, nil
}

// interpolate maps a course distance to lat/lon between the two bounding
// samples. Zero-length segments reuse the lower sample's coordinates.
func interpolate(course *model.Course, distance float64) (lat, lon float64) {
	samples := course.Samples()
	// first sample strictly beyond distance, then back up one
	i := sort.Search(len(samples), func(i int) bool {
		return samples[i].Distance > distance
	}) - 1
	if i < 0 {
		i = 0
	}
	if i > len(samples)-2 {
		i = len(samples) - 2
	}
	a, b := samples[i], samples[i+1]
	segment := b.Distance - a.Distance
	ratio := 0.0
	if segment > 0 {
		ratio = (distance - a.Distance) / segment
	}
	return a.Latitude + (b.Latitude-a.Latitude)*ratio,
		a.Longitude + (b.Longitude-a.Longitude)*ratio
}

// WriteHTML renders the standalone animation page.
func (a *Animation) WriteHTML(w io.Writer) error {
	frames := map[string][][2]float64{}
	times := make([]int, 0, len(a.Frames))
	for _, f := range a.Frames {
		frames[fmt.Sprintf("%d", f.TimeSec)] = f.Points
		times = append(times, f.TimeSec)
	}
	payload := func(v any) (template.JS, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(data), nil
	}

	pathJSON, err := payload(a.Path)
	if err != nil {
		return err
	}
	centerJSON, err := payload(a.Center)
	if err != nil {
		return err
	}
	framesJSON, err := payload(frames)
	if err != nil {
		return err
	}
	timesJSON, err := payload(times)
	if err != nil {
		return err
	}

	tmpl, err := template.New("animation").Parse(animationTemplate)
	if err != nil {
		return fmt.Errorf("parsing animation template: %w", err)
	}
	return tmpl.Execute(w, map[string]template.JS{
		"Path":   pathJSON,
		"Center": centerJSON,
		"Frames": framesJSON,
		"Times":  timesJSON,
	})
}
