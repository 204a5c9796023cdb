package course

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

func TestRead_FullTable(t *testing.T) {
	input := "distance,elevation,gradient,latitude,longitude\n" +
		"0,850,0,35.36,138.72\n" +
		"120.5,862,9.5,35.361,138.721\n"
	c, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 2, c.NumSamples())
	assert.Equal(t, model.CourseSample{
		Distance: 120.5, Elevation: 862, Gradient: 9.5,
		Latitude: 35.361, Longitude: 138.721,
		Capacity: model.DefaultCapacity,
	}, c.Sample(1))
}

func TestRead_OptionalColumnsMayBeMissing(t *testing.T) {
	input := "distance,elevation\n0,100\n50,105\n"
	c, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 0.0, c.Sample(1).Gradient)
	assert.Equal(t, 0.0, c.Sample(1).Latitude)
}

func TestRead_IgnoresUnknownColumns(t *testing.T) {
	input := "distance,elevation,surface\n0,100,rock\n50,105,mud\n"
	_, err := Read(strings.NewReader(input))
	assert.NoError(t, err)
}

func TestRead_Errors(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"too few rows", "distance,elevation\n0,100\n", "at least 2 sample rows"},
		{"missing distance", "elevation\n100\n105\n", `missing required column "distance"`},
		{"missing elevation", "distance\n0\n50\n", `missing required column "elevation"`},
		{"bad distance", "distance,elevation\nx,100\n50,105\n", "bad distance"},
		{"bad gradient", "distance,elevation,gradient\n0,100,x\n50,105,2\n", "bad gradient"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.input))
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	orig, err := model.NewCourse([]model.CourseSample{
		{Distance: 0, Elevation: 850, Latitude: 35.36, Longitude: 138.72},
		{Distance: 120.5, Elevation: 862, Gradient: 9.5},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "course.csv")
	require.NoError(t, Save(path, orig))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(orig.Samples(), loaded.Samples()); diff != "" {
		t.Errorf("course changed in round trip: %s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
