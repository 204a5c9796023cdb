package course

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mountain-software-jp/trail-simulator/log"
	"github.com/mountain-software-jp/trail-simulator/pkg/config"
	courseio "github.com/mountain-software-jp/trail-simulator/pkg/course"
)

func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert gpx-file",
		Short: "converts a GPX track into a course table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertCourse(args[0])
		},
	}
	cmd.Flags().StringVarP(&config.OutputFile, "output", "o", "",
		"output CSV path (default <gpx-name>_course_data.csv)")
	return cmd
}

func convertCourse(gpxPath string) error {
	logger := log.Default().Named("course")

	course, err := courseio.ConvertGPX(gpxPath)
	if err != nil {
		return err
	}

	output := config.OutputFile
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(gpxPath), filepath.Ext(gpxPath))
		output = fmt.Sprintf("%s_course_data.csv", base)
	}
	if err := courseio.Save(output, course); err != nil {
		return err
	}
	logger.Info("course converted",
		log.String("gpx", gpxPath),
		log.String("output", output),
		log.Int("samples", course.NumSamples()),
		log.Float64("lengthKm", course.Length()/1000))
	return nil
}
