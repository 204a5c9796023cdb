package analyze

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mountain-software-jp/trail-simulator/pkg/simulation"
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "commands to analyze simulation results",
	}

	cmd.AddCommand(NewAidStationsCmd())
	cmd.AddCommand(NewDistributionCmd())

	return cmd
}

func loadTrajectory(path string) (*simulation.Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening simulation results %s: %w", path, err)
	}
	defer f.Close()
	traj, err := simulation.ReadTrajectoryCSV(f)
	if err != nil {
		return nil, fmt.Errorf("simulation results %s: %w", path, err)
	}
	return traj, nil
}
