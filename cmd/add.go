package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rotp/internal/ui"
	"github.com/PolarWolf314/rotp/internal/utils"
	"github.com/PolarWolf314/rotp/internal/workflows"
)

func newAddCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "add [otpauth-uri...]",
		Short: "Add credentials from otpauth:// URIs",
		Long: `Adds one or more credentials to the archive.

URIs are taken from the arguments, or one per line from stdin when no
arguments are given. Every URI must parse before anything is written. A
label that already exists is an error unless --replace is set.

Examples:
  rotp add 'otpauth://totp/GitHub:alice?secret=JBSWY3DPEHPK3PXP&issuer=GitHub'
  zbarimg -q --raw qr.png | rotp add`,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting add command")

			uris := args
			if len(uris) == 0 {
				lines, err := utils.ReadStdinLines()
				if err != nil {
					return fail(cmd, err)
				}
				uris = lo.Map(lines, func(l utils.Line, _ int) string { return l.Text })
			}
			Logger.Debugf("Adding %d URI(s)", len(uris))

			opts, err := archiveOptions(cmd)
			if err != nil {
				return fail(cmd, err)
			}
			defer opts.Passphrase.Destroy()

			s, cleanup := startSpinner(cmd, "Adding credentials...")
			defer cleanup()

			result, err := workflows.Add(cmd.Context(), workflows.AddOptions{
				ArchiveOptions: opts,
				URIs:           uris,
				Replace:        replace,
			})
			if err != nil {
				Logger.Errorf("Add failed: %v", err)
				s.FinalMSG = formatError(err)
				return printed(err)
			}

			msg := ui.Success.Sprint("✓") + fmt.Sprintf(" Added %d credential(s)", len(result.Added))
			for _, label := range result.Added {
				msg += "\n  + " + ui.Label.Sprint(label)
			}
			for _, label := range result.Replaced {
				msg += "\n  ~ " + ui.Label.Sprint(label) + " " + ui.Muted.Sprint("replaced")
			}
			msg += "\n" + ui.Muted.Sprint(fmt.Sprintf("%d in archive", result.Total))
			s.FinalMSG = msg
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite credentials whose label already exists")
	return cmd
}
