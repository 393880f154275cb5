package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rotp/internal/ui"
	"github.com/PolarWolf314/rotp/internal/utils"
	"github.com/PolarWolf314/rotp/internal/workflows"
)

func newImportCmd() *cobra.Command {
	var (
		mode   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import <file-or-glob>...",
		Short: "Import otpauth:// URIs from text files",
		Long: `Imports credentials from text files holding one otpauth:// URI per line.

Blank lines and lines starting with # are ignored. Lines that do not parse
are reported and skipped. Globs may use ** and directories are searched
recursively.

When an imported label already exists, --mode decides what happens:
  merge    keep the existing credential (default)
  replace  overwrite it
  rename   store the import as label-2, label-3, ...

Examples:
  rotp import exported.txt
  rotp import 'backups/**/*.txt' --mode rename --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting import command")

			importMode, err := workflows.ParseImportMode(mode)
			if err != nil {
				return fail(cmd, err)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fail(cmd, fmt.Errorf("failed to get working directory: %w", err))
			}
			files, err := utils.ResolveFiles(args, cwd)
			if err != nil {
				return fail(cmd, err)
			}
			Logger.Debugf("Resolved %d file(s): %s", len(files), utils.FormatPaths(files))

			opts, err := archiveOptions(cmd)
			if err != nil {
				return fail(cmd, err)
			}
			defer opts.Passphrase.Destroy()

			s, cleanup := startSpinner(cmd, "Importing credentials...")
			defer cleanup()

			result, err := workflows.Import(cmd.Context(), workflows.ImportOptions{
				ArchiveOptions: opts,
				Files:          files,
				Mode:           importMode,
				DryRun:         dryRun,
			})
			if err != nil {
				Logger.Errorf("Import failed: %v", err)
				s.FinalMSG = formatError(err)
				return printed(err)
			}

			for _, bad := range result.Invalid {
				Logger.WarnfUser("%s:%d: %v", bad.File, bad.Line, bad.Err)
			}

			s.FinalMSG = importSummary(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "merge", "conflict handling: merge, replace or rename")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without saving")
	return cmd
}

func importSummary(r *workflows.ImportResult) string {
	head := ui.Success.Sprint("✓") + " Imported"
	if r.DryRun {
		head = ui.Warning.Sprint("[dry-run]") + " Would import"
	}

	msg := fmt.Sprintf("%s %d new credential(s) (mode: %s)", head, r.Added, r.Mode)
	if r.Replaced > 0 {
		msg += fmt.Sprintf("\n  %d replaced", r.Replaced)
	}
	if r.Renamed > 0 {
		msg += fmt.Sprintf("\n  %d renamed", r.Renamed)
	}
	if r.Skipped > 0 {
		msg += fmt.Sprintf("\n  %d skipped (label exists)", r.Skipped)
	}
	if len(r.Invalid) > 0 {
		msg += "\n  " + ui.Warning.Sprint(fmt.Sprintf("%d invalid line(s)", len(r.Invalid)))
	}
	msg += "\n" + ui.Muted.Sprint(fmt.Sprintf("%d in archive", r.Total))
	return msg
}
