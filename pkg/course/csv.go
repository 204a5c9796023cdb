// Package course reads and writes the course table consumed by the
// simulator: one row per track sample with cumulative distance, elevation,
// gradient and coordinates.
package course

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

// Load reads a course table from path.
func Load(path string) (*model.Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening course file %s: %w", path, err)
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("course file %s: %w", path, err)
	}
	return c, nil
}

// Read parses a course table. The distance and elevation columns are
// required; gradient, latitude and longitude are optional, any further
// columns are ignored.
func Read(r io.Reader) (*model.Course, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 3 {
		return nil, fmt.Errorf("need at least 2 sample rows, got %d", len(records)-1)
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[name] = i
	}
	distCol, ok := cols["distance"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "distance")
	}
	elevCol, ok := cols["elevation"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "elevation")
	}

	readOpt := func(rec []string, name string) (float64, error) {
		col, ok := cols[name]
		if !ok || rec[col] == "" {
			return 0, nil
		}
		return strconv.ParseFloat(rec[col], 64)
	}

	samples := make([]model.CourseSample, 0, len(records)-1)
	for line, rec := range records[1:] {
		s := model.CourseSample{}
		if s.Distance, err = strconv.ParseFloat(rec[distCol], 64); err != nil {
			return nil, fmt.Errorf("row %d: bad distance %q: %w", line+2, rec[distCol], err)
		}
		if s.Elevation, err = strconv.ParseFloat(rec[elevCol], 64); err != nil {
			return nil, fmt.Errorf("row %d: bad elevation %q: %w", line+2, rec[elevCol], err)
		}
		if s.Gradient, err = readOpt(rec, "gradient"); err != nil {
			return nil, fmt.Errorf("row %d: bad gradient: %w", line+2, err)
		}
		if s.Latitude, err = readOpt(rec, "latitude"); err != nil {
			return nil, fmt.Errorf("row %d: bad latitude: %w", line+2, err)
		}
		if s.Longitude, err = readOpt(rec, "longitude"); err != nil {
			return nil, fmt.Errorf("row %d: bad longitude: %w", line+2, err)
		}
		samples = append(samples, s)
	}
	return model.NewCourse(samples)
}

// Write emits the course table with all known columns.
func Write(w io.Writer, c *model.Course) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"distance", "elevation", "gradient", "latitude", "longitude",
	}); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, s := range c.Samples() {
		err := cw.Write([]string{
			f(s.Distance), f(s.Elevation), f(s.Gradient), f(s.Latitude), f(s.Longitude),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes the course table to path.
func Save(path string, c *model.Course) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating course file %s: %w", path, err)
	}
	defer f.Close()
	if err := Write(f, c); err != nil {
		return fmt.Errorf("writing course file %s: %w", path, err)
	}
	return nil
}
