package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cee/internal/repair"
	"github.com/roach88/cee/internal/store"
)

// repairFlags holds flags specific to the repair command.
type repairFlags struct {
	output      string
	auditDB     string
	noSizeCheck bool
}

// NewRepairCommand creates the repair command.
func NewRepairCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &repairFlags{}

	cmd := &cobra.Command{
		Use:   "repair <graph.json>",
		Short: "Repair a graph into canonical, analysis-ready form",
		Long: `Run the full repair pipeline over a candidate graph: single-goal
enforcement, belief normalization, orphan wiring, unreachable pruning,
canonical edge enforcement and determinism finalization.

The repaired graph and its field-level audit trail are printed; with
--output the repaired graph is also written to a file, and with --audit-db
the audit trail is persisted to a SQLite database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(rootOpts, flags, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the repaired graph to this file")
	cmd.Flags().StringVar(&flags.auditDB, "audit-db", "", "persist the audit trail to this SQLite database")
	cmd.Flags().BoolVar(&flags.noSizeCheck, "no-size-check", false, "disable node/edge count limits")

	return cmd
}

func runRepair(opts *RootOptions, flags *repairFlags, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid config", err)
	}

	g, err := loadGraph(path, formatter)
	if err != nil {
		return err
	}

	pipelineOpts := cfg.Apply(repair.DefaultOptions())
	if flags.noSizeCheck {
		pipelineOpts.CheckSizeLimits = false
	}

	result := repair.ValidateAndFixGraph(g, nil, pipelineOpts)
	formatter.VerboseLog("run %s: valid=%t repairs=%d warnings=%d",
		result.RunID, result.Valid, len(result.Repairs), len(result.Warnings))

	if flags.auditDB != "" {
		if err := persistRun(cmd, flags.auditDB, result); err != nil {
			return WrapExitError(ExitCommandError, "persist audit trail", err)
		}
	}

	if flags.output != "" && result.Graph != nil {
		data, err := json.MarshalIndent(result.Graph, "", "  ")
		if err != nil {
			return WrapExitError(ExitCommandError, "encode repaired graph", err)
		}
		if err := os.WriteFile(flags.output, append(data, '\n'), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "write repaired graph", err)
		}
		formatter.VerboseLog("wrote repaired graph to %s", flags.output)
	}

	if !result.Valid {
		if err := formatter.Failure(result.ErrorCode, result.Error, result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, result.Error)
	}

	return formatter.SuccessText(formatRepairText(result), result)
}

func persistRun(cmd *cobra.Command, dbPath string, result repair.Result) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.WriteRun(cmd.Context(), result)
}

func formatRepairText(r repair.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s: graph repaired\n", r.RunID)
	fmt.Fprintf(&b, "fixes: single_goal=%t outcome_beliefs=%t branches_normalized=%t\n",
		r.Fixes.SingleGoalApplied, r.Fixes.OutcomeBeliefsFilled, r.Fixes.DecisionBranchesNormalized)
	if len(r.MergedGoalIDs) > 0 {
		fmt.Fprintf(&b, "merged goals: %s\n", strings.Join(r.MergedGoalIDs, ", "))
	}
	if len(r.PrunedNodeIDs) > 0 {
		fmt.Fprintf(&b, "pruned nodes: %s\n", strings.Join(r.PrunedNodeIDs, ", "))
	}
	fmt.Fprintf(&b, "repairs: %d\n", len(r.Repairs))
	for _, rec := range r.Repairs {
		fmt.Fprintf(&b, "  %s %s %s→%s: %v → %v (%s)\n",
			rec.Action, rec.Field, rec.EdgeFrom, rec.EdgeTo, rec.FromValue, rec.ToValue, rec.Reason)
	}
	fmt.Fprintf(&b, "warnings: %d", len(r.Warnings))
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "\n  [%s] %s", w.Severity, w.ID)
	}
	return b.String()
}
