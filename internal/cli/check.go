package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cee/internal/repair"
)

// CheckResult holds the read-only diagnostics for one graph.
type CheckResult struct {
	Connectivity repair.ConnectivityDiagnostic `json:"connectivity"`
	Cycles       repair.StructuralMeta         `json:"cycles"`
	Warnings     []repair.StructuralWarning    `json:"warnings"`
	Uncertain    []string                      `json:"uncertain_node_ids,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <graph.json>",
		Short: "Run read-only structural diagnostics on a graph",
		Long: `Run the connectivity analyzer, cycle detector and structural warning
scan over a candidate graph without repairing it.

Exit code 1 when connectivity fails; the graph file is never modified.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	g, err := loadGraph(path, formatter)
	if err != nil {
		return err
	}

	cycles := repair.DetectCycles(g)
	warnings, uncertain := repair.DetectWarnings(g, cycles)
	result := CheckResult{
		Connectivity: repair.CheckConnectedMinimumStructure(g),
		Cycles:       cycles,
		Warnings:     warnings,
		Uncertain:    uncertain,
	}

	if err := formatter.SuccessText(formatCheckText(result), result); err != nil {
		return err
	}
	if !result.Connectivity.Passed {
		return NewExitError(ExitFailure, "graph failed connectivity diagnostics")
	}
	return nil
}

func formatCheckText(r CheckResult) string {
	var b strings.Builder
	if r.Connectivity.Passed {
		b.WriteString("connectivity: passed\n")
	} else {
		fmt.Fprintf(&b, "connectivity: FAILED (%s)\n", r.Connectivity.FailureClass)
		if r.Connectivity.Hint != "" {
			fmt.Fprintf(&b, "  hint: %s\n", r.Connectivity.Hint)
		}
		if len(r.Connectivity.UnreachableNodes) > 0 {
			fmt.Fprintf(&b, "  unreachable: %s\n", strings.Join(r.Connectivity.UnreachableNodes, ", "))
		}
	}
	if r.Cycles.HadCycles {
		fmt.Fprintf(&b, "cycles: %s\n", strings.Join(r.Cycles.CycleNodeIDs, ", "))
	} else {
		b.WriteString("cycles: none\n")
	}
	fmt.Fprintf(&b, "warnings: %d", len(r.Warnings))
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "\n  [%s] %s", w.Severity, w.ID)
		if len(w.NodeIDs) > 0 {
			fmt.Fprintf(&b, " nodes=%s", strings.Join(w.NodeIDs, ","))
		}
		if len(w.EdgeIDs) > 0 {
			fmt.Fprintf(&b, " edges=%s", strings.Join(w.EdgeIDs, ","))
		}
	}
	return b.String()
}
