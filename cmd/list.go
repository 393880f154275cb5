package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rotp/internal/otp"
	"github.com/PolarWolf314/rotp/internal/ui"
	"github.com/PolarWolf314/rotp/internal/workflows"
)

func newListCmd() *cobra.Command {
	var (
		filter string
		kind   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored credentials without their secrets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting list command")

			k := otp.Kind(strings.ToLower(kind))
			if k != "" && k != otp.KindHOTP && k != otp.KindTOTP {
				return fail(cmd, fmt.Errorf("unknown kind %q (want totp or hotp)", kind))
			}

			opts, err := archiveOptions(cmd)
			if err != nil {
				return fail(cmd, err)
			}
			defer opts.Passphrase.Destroy()

			result, err := workflows.List(cmd.Context(), workflows.ListOptions{
				ArchiveOptions: opts,
				Filter:         filter,
				Kind:           k,
			})
			if err != nil {
				Logger.Errorf("List failed: %v", err)
				return fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			if len(result.Entries) == 0 {
				if result.Total == 0 {
					fmt.Fprintln(out, "The archive is empty. Add credentials with "+ui.Code.Sprint("rotp add"))
				} else {
					fmt.Fprintf(out, "No credentials match (%d stored)\n", result.Total)
				}
				return nil
			}

			rows := make([][]string, 0, len(result.Entries))
			for _, e := range result.Entries {
				rows = append(rows, []string{e.Label, string(e.Kind), e.Issuer, e.Algorithm, movingFactor(e)})
			}
			if err := ui.WriteTable(out, []string{"label", "type", "issuer", "algorithm", "period/counter"}, rows); err != nil {
				return err
			}
			if len(result.Entries) != result.Total {
				fmt.Fprintln(out, ui.Muted.Sprintf("%d of %d shown", len(result.Entries), result.Total))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show labels or issuers containing this text")
	cmd.Flags().StringVar(&kind, "kind", "", "only show totp or hotp credentials")
	return cmd
}

func movingFactor(s workflows.Summary) string {
	if s.Kind == otp.KindHOTP {
		return strconv.FormatUint(s.Counter, 10)
	}
	return strconv.FormatUint(uint64(s.Step), 10) + "s"
}
