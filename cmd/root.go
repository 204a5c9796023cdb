/*
	Copyright 2025 Mountain Software
*/

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mountain-software-jp/trail-simulator/log"
	analyzeCmd "github.com/mountain-software-jp/trail-simulator/pkg/cmd/analyze"
	animateCmd "github.com/mountain-software-jp/trail-simulator/pkg/cmd/animate"
	courseCmd "github.com/mountain-software-jp/trail-simulator/pkg/cmd/course"
	simulateCmd "github.com/mountain-software-jp/trail-simulator/pkg/cmd/simulate"
	"github.com/mountain-software-jp/trail-simulator/pkg/config"
	"github.com/mountain-software-jp/trail-simulator/version"
)

const envPrefix = "TRAILSIM"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trailsim",
	Short: "Trail race congestion simulator",
	Long: `Simulates mass-participation trail races: runners contend for
scarce capacity on narrow single-track sections while the clock, the
gradient and the cutoffs do their work.`,
	Version: version.FullVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(); err != nil {
			return err
		}
		cmd.SetContext(log.AddToContext(cmd.Context(), log.Default()))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.trailsim.yml)")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat, "log-format",
		"text",
		"controls the log output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&config.LogConfig, "log-config",
		"",
		"path to a file with zapfilter rules")

	// add commands here
	rootCmd.AddCommand(simulateCmd.NewSimulateCmd())
	rootCmd.AddCommand(courseCmd.NewCourseCmd())
	rootCmd.AddCommand(analyzeCmd.NewAnalyzeCmd())
	rootCmd.AddCommand(animateCmd.NewAnimateCmd())
}

func setupLogger() error {
	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	var logger *log.Logger
	switch {
	case config.LogConfig != "":
		rules, err := log.LoadRules(config.LogConfig)
		if err != nil {
			return fmt.Errorf("loading log config: %w", err)
		}
		if logger, err = log.NewWithRules(os.Stderr, level, rules); err != nil {
			return fmt.Errorf("invalid log config: %w", err)
		}
	case config.LogFormat == "json":
		logger = log.New(os.Stderr, level)
	default:
		logger = log.DevLogger(os.Stderr, level)
	}
	log.ResetDefault(logger)
	return nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".trailsim" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".trailsim")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --avg-pace to TRAILSIM_AVG_PACE
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
