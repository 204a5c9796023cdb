package animate

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/mountain-software-jp/trail-simulator/log"
	"github.com/mountain-software-jp/trail-simulator/pkg/config"
	courseio "github.com/mountain-software-jp/trail-simulator/pkg/course"
	"github.com/mountain-software-jp/trail-simulator/pkg/render"
	"github.com/mountain-software-jp/trail-simulator/pkg/simulation"
)

func NewAnimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animate results-csv course-csv",
		Short: "renders a standalone HTML animation of the race",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderAnimation(args[0], args[1])
		},
	}
	cmd.Flags().IntVar(&config.FrameIntervalMin, "frame-interval", 10,
		"minutes between animation frames")
	cmd.Flags().IntVar(&config.MaxRunners, "max-runners", 200,
		"display cap; a random sample is shown beyond it")
	cmd.Flags().Uint64Var(&config.Seed, "seed", 0,
		"random seed for the display sample (0 picks a time-based seed)")
	cmd.Flags().StringVarP(&config.OutputFile, "output", "o", "race_animation.html",
		"output HTML path")
	return cmd
}

func renderAnimation(resultsPath, coursePath string) error {
	logger := log.Default().Named("animate")

	f, err := os.Open(resultsPath)
	if err != nil {
		return fmt.Errorf("opening simulation results %s: %w", resultsPath, err)
	}
	defer f.Close()
	traj, err := simulation.ReadTrajectoryCSV(f)
	if err != nil {
		return fmt.Errorf("simulation results %s: %w", resultsPath, err)
	}
	course, err := courseio.Load(coursePath)
	if err != nil {
		return err
	}

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	anim, err := render.BuildAnimation(traj, course,
		config.FrameIntervalMin, config.MaxRunners, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("creating animation file %s: %w", config.OutputFile, err)
	}
	defer out.Close()
	if err := anim.WriteHTML(out); err != nil {
		return fmt.Errorf("writing animation file %s: %w", config.OutputFile, err)
	}
	logger.Info("animation written",
		log.String("output", config.OutputFile),
		log.Int("frames", len(anim.Frames)))
	return nil
}
