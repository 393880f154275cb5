package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rotp/internal/audit"
	"github.com/PolarWolf314/rotp/internal/ui"
	"github.com/PolarWolf314/rotp/internal/workflows"
)

func newLogCmd() *cobra.Command {
	var (
		limit      int
		reverse    bool
		operations string
		since      string
		until      string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the audit log of archive changes",
		Long: `Shows when the archive was created or changed and by whom. The log
records counts only, never labels or secrets, and needs no passphrase.

Examples:
  rotp log -n 10
  rotp log --operation add,remove --since 2026-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting log command")

			result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
				Path:       auditLog.Path(),
				Limit:      limit,
				Reverse:    reverse,
				Operations: operations,
				Since:      since,
				Until:      until,
			})
			if err != nil {
				return fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				entries := result.Entries
				if entries == nil {
					entries = []audit.Entry{}
				}
				return enc.Encode(entries)
			}

			if len(result.Entries) == 0 {
				fmt.Fprintln(out, "No audit entries found")
				return nil
			}

			rows := make([][]string, 0, len(result.Entries))
			for _, e := range result.Entries {
				rows = append(rows, []string{e.Timestamp, e.User, e.Operation, changeSummary(e), strconv.Itoa(e.Total)})
			}
			if err := ui.WriteTable(out, []string{"time", "user", "operation", "changes", "total"}, rows); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Muted.Sprintf("%d of %d entries", len(result.Entries), result.Total))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "number", "n", 0, "show only the last N entries")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "newest first")
	cmd.Flags().StringVar(&operations, "operation", "", "only these operations (comma-separated)")
	cmd.Flags().StringVar(&since, "since", "", "entries on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "entries on or before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func changeSummary(e audit.Entry) string {
	s := ""
	add := func(n int, sign string) {
		if n > 0 {
			if s != "" {
				s += " "
			}
			s += sign + strconv.Itoa(n)
		}
	}
	add(e.Added, "+")
	add(e.Replaced, "~")
	add(e.Removed, "-")
	add(e.Skipped, "skip:")
	if s == "" {
		return "-"
	}
	return s
}
