package analyze

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mountain-software-jp/trail-simulator/log"
	"github.com/mountain-software-jp/trail-simulator/pkg/analysis"
	"github.com/mountain-software-jp/trail-simulator/pkg/config"
)

func NewAidStationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aid-stations results-csv",
		Short: "reports passage time distributions at aid stations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeAidStations(args[0])
		},
	}
	cmd.Flags().StringVar(&config.Stations, "stations", "17,26,46,63,80,96",
		"comma separated aid station distances in km")
	cmd.Flags().IntVar(&config.HistogramBins, "bins", analysis.DefaultHistogramBins,
		"number of histogram bins")
	cmd.Flags().StringVarP(&config.OutputFile, "output", "o",
		"aid_station_report.csv",
		"output CSV path")
	return cmd
}

func analyzeAidStations(resultsPath string) error {
	logger := log.Default().Named("analyze")

	stations, err := analysis.ParseStationList(config.Stations)
	if err != nil {
		return err
	}
	traj, err := loadTrajectory(resultsPath)
	if err != nil {
		return err
	}

	reports := analysis.AnalyzeStations(traj, stations, config.HistogramBins)
	for _, rep := range reports {
		if len(rep.PassageSec) == 0 {
			logger.Warn("no runners passed station",
				log.Float64("stationKm", rep.StationKm))
			continue
		}
		logger.Info("station congestion",
			log.Float64("stationKm", rep.StationKm),
			log.Int("passed", len(rep.PassageSec)),
			log.Float64("peakHour", rep.PeakHour),
			log.Int("peakRunners", rep.PeakRunners))
	}

	f, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("creating report file %s: %w", config.OutputFile, err)
	}
	defer f.Close()
	if err := analysis.WriteStationReportsCSV(f, reports); err != nil {
		return fmt.Errorf("writing report file %s: %w", config.OutputFile, err)
	}
	logger.Info("report written", log.String("output", config.OutputFile))
	return nil
}
