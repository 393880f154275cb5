package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rotp/internal/otp"
	"github.com/PolarWolf314/rotp/internal/ui"
	"github.com/PolarWolf314/rotp/internal/workflows"
)

func newShowCmd() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show <label>",
		Short: "Show one credential's parameters",
		Long: `Shows the parameters of one credential. The secret is only printed
with --uri, which outputs the full otpauth:// URI for moving the credential
to another authenticator.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting show command")

			opts, err := archiveOptions(cmd)
			if err != nil {
				return fail(cmd, err)
			}
			defer opts.Passphrase.Destroy()

			result, err := workflows.Show(cmd.Context(), workflows.ShowOptions{
				ArchiveOptions: opts,
				Label:          args[0],
				RevealURI:      reveal,
			})
			if err != nil {
				Logger.Errorf("Show failed: %v", err)
				return fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Label:     %s\n", ui.Label.Sprint(result.Label))
			fmt.Fprintf(out, "Type:      %s\n", result.Kind)
			fmt.Fprintf(out, "Issuer:    %s\n", result.Issuer)
			fmt.Fprintf(out, "Algorithm: %s\n", result.Algorithm)
			fmt.Fprintf(out, "Digits:    %d\n", result.Digits)
			if result.Kind == otp.KindHOTP {
				fmt.Fprintf(out, "Counter:   %d\n", result.Counter)
			} else {
				fmt.Fprintf(out, "Period:    %ds\n", result.Step)
			}

			if reveal {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Danger.Sprint("The URI below contains the secret"))
				fmt.Fprintln(out, result.URI)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "uri", false, "print the otpauth:// URI, including the secret")
	return cmd
}
