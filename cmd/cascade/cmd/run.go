package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-cascade/pkg/analysis"
	"github.com/edp1096/toy-cascade/pkg/bode"
	"github.com/edp1096/toy-cascade/pkg/circuit"
	"github.com/edp1096/toy-cascade/pkg/config"
	"github.com/edp1096/toy-cascade/pkg/netlist"
	"github.com/edp1096/toy-cascade/pkg/output"
	"github.com/edp1096/toy-cascade/pkg/terminal"
	"github.com/edp1096/toy-cascade/pkg/util"
)

var plotPath string

// job is a parsed and resolved netlist ready to sweep.
type job struct {
	netlist *netlist.Netlist
	circuit *circuit.Circuit
	term    terminal.Termination
	sweep   analysis.Sweep
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	input, outputPath := args[0], args[1]
	if err := checkExtension(input, ".net"); err != nil {
		return err
	}
	if err := checkExtension(outputPath, ".csv"); err != nil {
		return err
	}

	j, ca, err := analyse(cmd, input, outputPath)
	if err != nil {
		// A run that fails before the table is written leaves an empty file
		if werr := os.WriteFile(outputPath, nil, 0o644); werr != nil {
			return errors.Join(err, werr)
		}
		return err
	}

	if plotPath != "" {
		return plotSweep(cmd.OutOrStdout(), j, ca)
	}
	return nil
}

func analyse(cmd *cobra.Command, input, outputPath string) (*job, *analysis.CascadeAnalysis, error) {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	j, err := prepare(out, input, cfg)
	if err != nil {
		return nil, nil, err
	}

	ca, err := sweep(out, j, cfg)
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		printPoints(out, ca.Points(), j.netlist.Requests)
		fmt.Fprintf(out, "\nWriting %s\n", outputPath)
	}
	if err := writeTable(outputPath, j.netlist.Requests, ca.Points()); err != nil {
		return nil, nil, err
	}

	return j, ca, nil
}

func plotSweep(out io.Writer, j *job, ca *analysis.CascadeAnalysis) error {
	opts := bode.DefaultOptions()
	opts.Title = j.circuit.Name()
	if err := bode.Render(ca.GetResults(), plotVariables(j.netlist.Requests), plotPath, opts); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(out, "Plots written to %s and %s\n", plotPath, bode.PhasePath(plotPath))
	}
	return nil
}

// prepare parses input and resolves its terminations and sweep.
func prepare(out io.Writer, input string, cfg *config.Config) (*job, error) {
	if verbose {
		fmt.Fprintf(out, "[1] Reading netlist file: %s\n", input)
	}
	n, err := netlist.ParseFile(input)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	ckt, err := n.Circuit(name)
	if err != nil {
		return nil, err
	}

	term, err := n.Termination(cfg.SourceImpedance, cfg.LoadImpedance)
	if err != nil {
		return nil, err
	}

	s, err := n.Sweep(cfg.DefaultSweep())
	if err != nil {
		return nil, err
	}

	if verbose {
		fmt.Fprintf(out, "[2] Circuit %s: %d elements, output node %d\n", ckt.Name(), len(ckt.Elements()), ckt.OutputNode())
		for _, dev := range ckt.GetDevices() {
			nodes := dev.GetNodes()
			fmt.Fprintf(out, "    %-4s n1=%d n2=%d %s\n", dev.GetName(), nodes[0], nodes[1], util.FormatValueFactor(dev.GetValue(), unitOf(dev.GetType())))
		}
		fmt.Fprintf(out, "    Source: %s, Rs=%s, Rl=%s\n", util.FormatPhasor(sourceName(term), term.Source),
			util.FormatValueFactor(real(term.SourceImpedance), "ohm"), util.FormatValueFactor(real(term.LoadImpedance), "ohm"))
		fmt.Fprintf(out, "    Sweep: %s\n", s)
	}

	return &job{netlist: n, circuit: ckt, term: term, sweep: s}, nil
}

func sweep(out io.Writer, j *job, cfg *config.Config) (*analysis.CascadeAnalysis, error) {
	if verbose {
		fmt.Fprintf(out, "[3] Cascade analysis\n")
	}

	ca := analysis.NewCascade(j.sweep, j.term, cfg.Workers)
	if err := ca.Setup(j.circuit); err != nil {
		return nil, fmt.Errorf("cascade setup error: %w", err)
	}
	if err := ca.Execute(); err != nil {
		return nil, fmt.Errorf("cascade analysis error: %w", err)
	}
	return ca, nil
}

func writeTable(path string, requests []output.Request, points []analysis.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := output.NewWriter(w, requests).WriteAll(points); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return f.Close()
}

func printPoints(out io.Writer, points []analysis.Point, requests []output.Request) {
	variables := plotVariables(requests)

	fmt.Fprintf(out, "\nCascade Analysis Results (%d frequency points):\n", len(points))
	fmt.Fprintln(out, "-----------------------------------------------------------------------------")
	for _, p := range points {
		fmt.Fprintf(out, "%-13s", util.FormatFrequency(p.Frequency))
		for _, v := range variables {
			value, _ := p.Result.Value(v)
			fmt.Fprintf(out, "%s  ", util.FormatPhasor(string(v), value))
		}
		fmt.Fprintln(out)
	}
}

// plotVariables lists each requested variable once, or Av if none was
// requested.
func plotVariables(requests []output.Request) []terminal.Variable {
	seen := make(map[terminal.Variable]bool)
	var variables []terminal.Variable
	for _, req := range requests {
		if !seen[req.Variable] {
			seen[req.Variable] = true
			variables = append(variables, req.Variable)
		}
	}
	if len(variables) == 0 {
		variables = []terminal.Variable{terminal.Av}
	}
	return variables
}

func checkExtension(path, ext string) error {
	if !strings.EqualFold(filepath.Ext(path), ext) {
		return fmt.Errorf("%s: expected a %s file", path, ext)
	}
	return nil
}

func sourceName(t terminal.Termination) string {
	if t.Kind == terminal.Norton {
		return "IN"
	}
	return "VT"
}

func unitOf(deviceType string) string {
	switch deviceType {
	case "R":
		return "ohm"
	case "L":
		return "H"
	case "C":
		return "F"
	case "G":
		return "S"
	}
	return ""
}
