// Package analysis derives reports from a recorded trajectory table. The
// analyzers only see the trajectory and the course profile, never the
// engine internals.
package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/mountain-software-jp/trail-simulator/pkg/simulation"
)

// DefaultHistogramBins matches the bin count used for passage-time
// histograms in reports.
const DefaultHistogramBins = 50

// StationReport summarizes when runners pass one aid station.
type StationReport struct {
	StationKm   float64
	PassageSec  []float64 // first crossing time per runner that crossed
	Counts      []int     // histogram over [min, max] passage hours
	BinEdges    []float64 // len(Counts)+1 edges, hours
	PeakHour    float64   // left edge of the fullest bin
	PeakRunners int
}

// PassageTimes returns each runner's first crossing time past stationM, in
// seconds. Runners that never reach the station are omitted.
func PassageTimes(traj *simulation.Trajectory, stationM float64) []float64 {
	times := []float64{}
	for r := range traj.NumRunners() {
		for t := range traj.NumSteps() {
			if traj.Position(t, r) >= stationM {
				times = append(times, traj.Time(t))
				break
			}
		}
	}
	return times
}

// AnalyzeStations builds a report per aid station distance.
func AnalyzeStations(
	traj *simulation.Trajectory, stationsKm []float64, bins int,
) []StationReport {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	return lo.Map(stationsKm, func(stationKm float64, _ int) StationReport {
		report := StationReport{
			StationKm:  stationKm,
			PassageSec: PassageTimes(traj, stationKm*1000),
		}
		if len(report.PassageSec) == 0 {
			return report
		}
		hours := lo.Map(report.PassageSec, func(sec float64, _ int) float64 {
			return sec / 3600
		})
		report.Counts, report.BinEdges = Histogram(hours, bins)
		peak := 0
		for i, c := range report.Counts {
			if c > report.Counts[peak] {
				peak = i
			}
		}
		report.PeakHour = report.BinEdges[peak]
		report.PeakRunners = report.Counts[peak]
		return report
	})
}

// Histogram bins values into equal-width buckets spanning [min, max].
// The maximum value lands in the last bucket.
func Histogram(values []float64, bins int) (counts []int, edges []float64) {
	minVal := lo.Min(values)
	maxVal := lo.Max(values)
	counts = make([]int, bins)
	edges = make([]float64, bins+1)
	width := (maxVal - minVal) / float64(bins)
	for i := range edges {
		edges[i] = minVal + float64(i)*width
	}
	for _, v := range values {
		bin := bins - 1
		if width > 0 {
			bin = int((v - minVal) / width)
			if bin >= bins {
				bin = bins - 1
			}
		}
		counts[bin]++
	}
	return counts, edges
}

// WriteStationReportsCSV emits one row per station: distance, how many
// runners passed, and the peak bucket.
func WriteStationReportsCSV(w io.Writer, reports []StationReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"station_km", "runners_passed", "peak_hour", "peak_runners",
	}); err != nil {
		return err
	}
	for _, rep := range reports {
		err := cw.Write([]string{
			strconv.FormatFloat(rep.StationKm, 'f', 2, 64),
			strconv.Itoa(len(rep.PassageSec)),
			strconv.FormatFloat(rep.PeakHour, 'f', 2, 64),
			strconv.Itoa(rep.PeakRunners),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseStationList parses a comma-separated list of station distances in km.
func ParseStationList(arg string) ([]float64, error) {
	stations := []float64{}
	for field := range strings.SplitSeq(arg, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("bad station distance %q: %w", field, err)
		}
		stations = append(stations, v)
	}
	if len(stations) == 0 {
		return nil, fmt.Errorf("no station distances given")
	}
	return stations, nil
}
