package simulate

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/mountain-software-jp/trail-simulator/log"
	"github.com/mountain-software-jp/trail-simulator/pkg/config"
	courseio "github.com/mountain-software-jp/trail-simulator/pkg/course"
	"github.com/mountain-software-jp/trail-simulator/pkg/simulation"
)

func NewSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate course-csv",
		Short: "runs the congestion simulation over a course",
		Long: `Simulates runners over the given course table, resolving
contention for single-track capacity each step. Parameters come from flags
or from a scenario file (--scenario), which takes precedence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd.Context(), args[0])
		},
	}
	cmd.Flags().StringVarP(&config.OutputFile, "output", "o", "",
		"output CSV path (default congestion_sim_results_<N>runners.csv)")
	cmd.Flags().StringVar(&config.ScenarioFile, "scenario", "",
		"path to a YAML scenario file")
	cmd.Flags().IntVarP(&config.Runners, "runners", "n", 500,
		"number of runners")
	cmd.Flags().Float64VarP(&config.AvgPaceMinPerKm, "avg-pace", "p", 10.0,
		"average pace in minutes per km")
	cmd.Flags().Float64VarP(&config.StdDevPaceMinPerKm, "std-dev", "s", 1.5,
		"standard deviation of pace in minutes per km")
	cmd.Flags().Float64VarP(&config.TimeLimitHours, "time-limit", "t", 24,
		"race time limit in hours")
	cmd.Flags().IntVar(&config.WaveGroups, "wave-groups", 1,
		"number of wave start groups (1 means mass start)")
	cmd.Flags().Float64Var(&config.WaveIntervalMinutes, "wave-interval", 0,
		"start interval between waves in minutes")
	cmd.Flags().Uint64Var(&config.Seed, "seed", 0,
		"random seed for reproducible runs (0 picks a time-based seed)")
	cmd.Flags().StringArrayVar(&config.SingleTracks, "single-track", nil,
		"explicit single-track section startKm,endKm,capacity (repeatable)")
	cmd.Flags().StringArrayVar(&config.PercentTracks, "percent-track", nil,
		"single-track section startPercent,endPercent,capacity (repeatable)")
	cmd.Flags().StringVar(&config.RandomTrack, "random-track", "",
		"random single-track sections totalPercent,capacity")
	cmd.Flags().StringArrayVar(&config.Cutoffs, "cutoff", nil,
		"cutoff distanceKm,timeHours (repeatable)")
	return cmd
}

//nolint:funlen // top-level command flow
func runSimulation(ctx context.Context, coursePath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.GetFromContext(ctx).Named("simulate")
	runID := uuid.New()

	scenario, err := resolveScenario()
	if err != nil {
		return err
	}
	seed := scenario.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info("simulation setup",
		log.String("runId", runID.String()),
		log.String("course", coursePath),
		log.Int("runners", scenario.Runners),
		log.Uint64("seed", seed))

	course, err := courseio.Load(coursePath)
	if err != nil {
		return err
	}

	sectionRng := rand.New(rand.NewSource(seed + 1))
	ranges, err := simulation.ResolveSections(course, scenario.SectionSpecs(), sectionRng)
	if err != nil {
		return fmt.Errorf("resolving single-track sections: %w", err)
	}
	for _, r := range ranges {
		logger.Info("single-track section",
			log.Float64("startKm", r.StartM/1000),
			log.Float64("endKm", r.EndM/1000),
			log.Int("capacity", r.Capacity))
	}
	simulation.ApplyRanges(course, ranges)

	runners, err := simulation.NewPopulation(simulation.PopulationConfig{
		Runners:             scenario.Runners,
		AvgPaceMinPerKm:     scenario.AvgPaceMinPerKm,
		StdDevPaceMinPerKm:  scenario.StdDevPaceMinPerKm,
		WaveGroups:          scenario.WaveGroups,
		WaveIntervalMinutes: scenario.WaveIntervalMinutes,
	}, rand.NewSource(seed))
	if err != nil {
		return fmt.Errorf("building population: %w", err)
	}

	engine, err := simulation.NewEngine(course, runners,
		simulation.WithTimeLimit(scenario.TimeLimitHours),
		simulation.WithCutoffs(scenario.CutoffList()),
		simulation.WithLogger(logger.Named("engine")),
	)
	if err != nil {
		return err
	}
	traj, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	output := config.OutputFile
	if output == "" {
		output = fmt.Sprintf("congestion_sim_results_%drunners.csv", scenario.Runners)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", output, err)
	}
	defer f.Close()
	if err := traj.WriteCSV(f); err != nil {
		return fmt.Errorf("writing output file %s: %w", output, err)
	}
	logger.Info("results written",
		log.String("runId", runID.String()),
		log.String("output", output),
		log.Int("steps", traj.NumSteps()))
	return nil
}

// resolveScenario merges the parameter sources: a scenario file wins, CLI
// flags otherwise. The three flag-based section styles are mutually
// exclusive; a scenario file may combine them.
func resolveScenario() (*config.Scenario, error) {
	if config.ScenarioFile != "" {
		return config.LoadScenario(config.ScenarioFile)
	}

	scenario := config.DefaultScenario()
	scenario.Runners = config.Runners
	scenario.AvgPaceMinPerKm = config.AvgPaceMinPerKm
	scenario.StdDevPaceMinPerKm = config.StdDevPaceMinPerKm
	scenario.TimeLimitHours = config.TimeLimitHours
	scenario.WaveGroups = config.WaveGroups
	scenario.WaveIntervalMinutes = config.WaveIntervalMinutes
	scenario.Seed = config.Seed

	styles := 0
	if len(config.SingleTracks) > 0 {
		styles++
	}
	if len(config.PercentTracks) > 0 {
		styles++
	}
	if config.RandomTrack != "" {
		styles++
	}
	if styles > 1 {
		return nil, fmt.Errorf(
			"--single-track, --percent-track and --random-track are mutually exclusive")
	}

	for _, arg := range config.SingleTracks {
		vals, err := parseFloats(arg, 3)
		if err != nil {
			return nil, fmt.Errorf("bad --single-track %q: %w", arg, err)
		}
		scenario.SingleTracks.Explicit = append(scenario.SingleTracks.Explicit,
			config.ExplicitSection{
				StartKm: vals[0], EndKm: vals[1], Capacity: int(vals[2]),
			})
	}
	for _, arg := range config.PercentTracks {
		vals, err := parseFloats(arg, 3)
		if err != nil {
			return nil, fmt.Errorf("bad --percent-track %q: %w", arg, err)
		}
		scenario.SingleTracks.Percentage = append(scenario.SingleTracks.Percentage,
			config.PercentageSection{
				StartPercent: vals[0], EndPercent: vals[1], Capacity: int(vals[2]),
			})
	}
	if config.RandomTrack != "" {
		vals, err := parseFloats(config.RandomTrack, 2)
		if err != nil {
			return nil, fmt.Errorf("bad --random-track %q: %w", config.RandomTrack, err)
		}
		scenario.SingleTracks.Random = &config.RandomSection{
			Percent: vals[0], Capacity: int(vals[1]),
		}
	}
	for _, arg := range config.Cutoffs {
		vals, err := parseFloats(arg, 2)
		if err != nil {
			return nil, fmt.Errorf("bad --cutoff %q: %w", arg, err)
		}
		scenario.Cutoffs = append(scenario.Cutoffs,
			config.CutoffSpec{DistanceKm: vals[0], TimeHours: vals[1]})
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation parameters: %w", err)
	}
	return &scenario, nil
}

func parseFloats(arg string, want int) ([]float64, error) {
	fields := strings.Split(arg, ",")
	if len(fields) != want {
		return nil, fmt.Errorf("want %d comma separated values, got %d", want, len(fields))
	}
	vals := make([]float64, want)
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
