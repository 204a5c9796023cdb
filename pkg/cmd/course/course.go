package course

import (
	"github.com/spf13/cobra"
)

func NewCourseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "commands to prepare course data",
	}

	cmd.AddCommand(NewConvertCmd())

	return cmd
}
