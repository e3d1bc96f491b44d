package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-cascade/pkg/analysis"
	"github.com/edp1096/toy-cascade/pkg/util"
)

var tolerance float64

var checkCmd = &cobra.Command{
	Use:   "check <input.net>",
	Short: "Cross-check the cascade solution against nodal analysis",
	Long: `Solve the netlist twice, by ABCD cascade and by sparse nodal analysis,
and compare the input voltage, input current and input impedance at every
sweep point.

Examples:
  cascade check lowpass.net
  cascade check --tolerance 1e-9 lowpass.net`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Float64VarP(&tolerance, "tolerance", "t", 0,
		"relative tolerance (default from config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input := args[0]
	if err := checkExtension(input, ".net"); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("tolerance") {
		if tolerance <= 0 {
			return fmt.Errorf("--tolerance %g must be positive", tolerance)
		}
		cfg.CheckTolerance = tolerance
	}

	j, err := prepare(out, input, cfg)
	if err != nil {
		return err
	}

	ca, err := sweep(out, j, cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(out, "[4] Nodal analysis\n")
	}
	na := analysis.NewNodal(j.sweep, j.term)
	if err := na.Setup(j.circuit); err != nil {
		return fmt.Errorf("nodal setup error: %w", err)
	}
	if err := na.Execute(); err != nil {
		return fmt.Errorf("nodal analysis error: %w", err)
	}

	report, err := analysis.Compare(ca.Points(), na.Points(), cfg.CheckTolerance)
	if report != nil {
		w := report.Worst
		fmt.Fprintf(out, "Checked %d points: worst %s deviation %.3g at %s (tolerance %.3g)\n",
			report.Points, w.Variable, w.Relative, util.FormatFrequency(w.Frequency), report.Tolerance)
		if verbose {
			fmt.Fprintf(out, "    cascade %s\n    nodal   %s\n",
				util.FormatPhasor(string(w.Variable), w.Cascade), util.FormatPhasor(string(w.Variable), w.Nodal))
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "OK")
	return nil
}
