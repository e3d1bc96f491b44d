package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-cascade/pkg/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	workers    int
)

var rootCmd = &cobra.Command{
	Use:   "cascade <input.net> <output.csv>",
	Short: "Cascade ABCD two-port frequency sweep analyser",
	Long: `Sweep a ladder of R, L, C and G elements across frequency, cascading
the ABCD matrix of every element, and write the requested terminal
quantities (impedances, voltages, currents, powers, gains) to a CSV table.

Examples:
  cascade lowpass.net lowpass.csv                  # Analyse a netlist
  cascade -v --plot bode.png lowpass.net out.csv   # Also draw a Bode plot
  cascade check lowpass.net                        # Cross-check against nodal analysis`,
	Version:       "0.1.0",
	Args:          cobra.ExactArgs(2),
	RunE:          runAnalyse,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML run configuration")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "parallel sweep workers (0 = GOMAXPROCS)")

	rootCmd.Flags().StringVarP(&plotPath, "plot", "p", "", "also write a Bode plot (.png, .svg or .pdf)")
}

// loadConfig reads --config and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("workers") {
		if workers < 0 {
			return nil, fmt.Errorf("--workers %d must not be negative", workers)
		}
		cfg.Workers = workers
	}
	return cfg, nil
}
