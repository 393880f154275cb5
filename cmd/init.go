package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
	"github.com/PolarWolf314/rotp/internal/store"
	"github.com/PolarWolf314/rotp/internal/ui"
	"github.com/PolarWolf314/rotp/internal/utils"
	"github.com/PolarWolf314/rotp/internal/workflows"
)

// defaultArchiveName is used by init when no location is given or configured.
const defaultArchiveName = "codes" + store.Suffix

func newInitCmd() *cobra.Command {
	var noBanner bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a new, empty encrypted archive",
		Long: `Creates a new archive protected by a passphrase you choose.

The path must end in .tar.rotp. Without an argument the archive goes to the
location from --db or ROTP_DB, or to codes.tar.rotp in the rotp config
directory. The chosen path is saved to the user config so later commands
find it. An existing file is never overwritten.

Examples:
  rotp init
  rotp init ~/vault/work.tar.rotp`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting init command")

			location := ""
			if len(args) == 1 {
				location = args[0]
			} else {
				resolved, err := resolveLocation(cmd)
				if err != nil {
					return fail(cmd, err)
				}
				location = resolved
			}
			if location == "" {
				location = filepath.Join(settings.UserConfigsPath, defaultArchiveName)
			}

			path, err := store.Resolve(location)
			if err != nil {
				return fail(cmd, err)
			}
			if _, err := os.Lstat(path); err == nil {
				return fail(cmd, fmt.Errorf("%s: %w", path, rerrors.ErrAlreadyExists))
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fail(cmd, fmt.Errorf("checking %s: %w", path, err))
			}
			Logger.Debugf("Creating archive at %s", path)

			if !noBanner {
				banner := figure.NewFigure("rotp", "small", true)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint(banner.String()))
			}

			pass, err := utils.ReadNewPassphrase(readPassphrase)
			if err != nil {
				return fail(cmd, err)
			}
			defer pass.Destroy()

			s, cleanup := startSpinner(cmd, "Creating archive...")
			defer cleanup()

			result, err := workflows.Init(cmd.Context(), workflows.InitOptions{
				ArchiveOptions: workflows.ArchiveOptions{
					Location:   path,
					Passphrase: pass,
					Params:     kdfParams,
					Audit:      auditLog,
				},
				ConfigFile: settings.ConfigFile,
			})
			if err != nil {
				Logger.Errorf("Init failed: %v", err)
				s.FinalMSG = formatError(err)
				return printed(err)
			}

			msg := ui.Success.Sprint("✓") + " Created archive at " + ui.Path.Sprint(result.Path)
			if result.Remembered {
				msg += "\n" + ui.Info.Sprint("→") + " Saved as the default archive in " + ui.Path.Sprint(settings.ConfigFile)
			}
			msg += "\n" + ui.Info.Sprint("→") + " Add credentials with " + ui.Code.Sprint("rotp add <otpauth-uri>")
			s.FinalMSG = msg
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "skip the ASCII banner")
	return cmd
}
