package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cee/internal/store"
)

// NewAuditCommand creates the audit command group.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect persisted repair audit trails",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "cee-audit.db", "path to the audit SQLite database")

	cmd.AddCommand(newAuditLsCommand(rootOpts, &dbPath))
	cmd.AddCommand(newAuditShowCommand(rootOpts, &dbPath))
	return cmd
}

func newAuditLsCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "ls",
		Short:         "List recorded repair runs, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			db, err := openAuditDB(*dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.ListRuns(cmd.Context(), limit)
			if err != nil {
				return WrapExitError(ExitCommandError, "list runs", err)
			}
			return formatter.SuccessText(formatRunList(runs), runs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum runs to list")
	return cmd
}

func newAuditShowCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <run-id>",
		Short:         "Show the full audit trail for one run",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			db, err := openAuditDB(*dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			detail, err := db.GetRun(cmd.Context(), args[0])
			if errors.Is(err, store.ErrRunNotFound) {
				return WrapExitError(ExitCommandError, "unknown run id", err)
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "read run", err)
			}
			return formatter.SuccessText(formatRunDetail(detail), detail)
		},
	}
	return cmd
}

func newFormatter(rootOpts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}
}

func openAuditDB(path string) (*store.Store, error) {
	db, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("open audit database %s", path), err)
	}
	return db, nil
}

func formatRunList(runs []store.RunSummary) string {
	if len(runs) == 0 {
		return "no runs recorded"
	}
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteByte('\n')
		}
		status := "valid"
		if !r.Valid {
			status = r.ErrorCode
		}
		fmt.Fprintf(&b, "%s  %s  %s  repairs=%d warnings=%d",
			r.ID, r.CreatedAt, status, r.Repairs, r.Warnings)
	}
	return b.String()
}

func formatRunDetail(d *store.RunDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s (%s)\n", d.ID, d.CreatedAt)
	if d.Valid {
		b.WriteString("status: valid\n")
	} else {
		fmt.Fprintf(&b, "status: %s (%s)\n", d.ErrorCode, d.Error)
	}
	if d.InputHash != "" {
		fmt.Fprintf(&b, "input:  %s\n", d.InputHash)
	}
	if d.OutputHash != "" {
		fmt.Fprintf(&b, "output: %s\n", d.OutputHash)
	}
	fmt.Fprintf(&b, "repairs: %d\n", len(d.Records))
	for _, rec := range d.Records {
		fmt.Fprintf(&b, "  %s %s %s→%s: %v → %v\n",
			rec.Action, rec.Field, rec.EdgeFrom, rec.EdgeTo, rec.FromValue, rec.ToValue)
	}
	fmt.Fprintf(&b, "deletions: %d\n", len(d.Deletions))
	for _, del := range d.Deletions {
		fmt.Fprintf(&b, "  [%s] %s.%s (%s)\n", del.Stage, del.NodeID, del.Field, del.Reason)
	}
	fmt.Fprintf(&b, "warnings: %d", len(d.Warns))
	for _, w := range d.Warns {
		fmt.Fprintf(&b, "\n  [%s] %s", w.Severity, w.ID)
	}
	return b.String()
}
