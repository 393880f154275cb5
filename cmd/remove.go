package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rotp/internal/ui"
	"github.com/PolarWolf314/rotp/internal/workflows"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <label>...",
		Aliases: []string{"rm"},
		Short:   "Remove credentials by label",
		Long: `Removes the named credentials in one save. If any label is not in the
archive nothing is removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting remove command")

			opts, err := archiveOptions(cmd)
			if err != nil {
				return fail(cmd, err)
			}
			defer opts.Passphrase.Destroy()

			s, cleanup := startSpinner(cmd, "Removing credentials...")
			defer cleanup()

			result, err := workflows.Remove(cmd.Context(), workflows.RemoveOptions{
				ArchiveOptions: opts,
				Labels:         args,
			})
			if err != nil {
				Logger.Errorf("Remove failed: %v", err)
				s.FinalMSG = formatError(err)
				return printed(err)
			}

			msg := ui.Success.Sprint("✓") + fmt.Sprintf(" Removed %d credential(s)", len(result.Removed))
			for _, label := range result.Removed {
				msg += "\n  - " + ui.Label.Sprint(label)
			}
			msg += "\n" + ui.Muted.Sprint(fmt.Sprintf("%d in archive", result.Total))
			s.FinalMSG = msg
			return nil
		},
	}

	return cmd
}
