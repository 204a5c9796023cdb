package analyze

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mountain-software-jp/trail-simulator/log"
	"github.com/mountain-software-jp/trail-simulator/pkg/analysis"
	"github.com/mountain-software-jp/trail-simulator/pkg/config"
	courseio "github.com/mountain-software-jp/trail-simulator/pkg/course"
)

func NewDistributionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribution results-csv course-csv",
		Short: "snapshots the field distribution at chosen times",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeDistribution(args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&config.SnapshotTimes, "times", "5,10,15,20",
		"comma separated snapshot times in hours")
	cmd.Flags().Float64Var(&config.DensityBinKm, "bin-km", 1.0,
		"density bin width in km")
	cmd.Flags().StringVarP(&config.OutputFile, "output", "o",
		"runner_distribution.csv",
		"output CSV path")
	return cmd
}

func analyzeDistribution(resultsPath, coursePath string) error {
	logger := log.Default().Named("analyze")

	times := []float64{}
	for field := range strings.SplitSeq(config.SnapshotTimes, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return fmt.Errorf("bad snapshot time %q: %w", field, err)
		}
		times = append(times, v)
	}

	traj, err := loadTrajectory(resultsPath)
	if err != nil {
		return err
	}
	course, err := courseio.Load(coursePath)
	if err != nil {
		return err
	}

	snaps := make([]analysis.Snapshot, 0, len(times))
	for _, hours := range times {
		snap := analysis.SnapshotAt(traj, course.Length(), hours*3600, config.DensityBinKm)
		logger.Info("field snapshot",
			log.Float64("hours", snap.TimeSec/3600),
			log.Int("active", snap.Active),
			log.Int("finished", snap.Finished),
			log.Int("dnf", snap.DNF))
		snaps = append(snaps, snap)
	}

	f, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("creating report file %s: %w", config.OutputFile, err)
	}
	defer f.Close()
	if err := analysis.WriteSnapshotsCSV(f, snaps); err != nil {
		return fmt.Errorf("writing report file %s: %w", config.OutputFile, err)
	}
	logger.Info("report written", log.String("output", config.OutputFile))
	return nil
}
