package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rotp/internal/audit"
	"github.com/PolarWolf314/rotp/internal/configs"
	"github.com/PolarWolf314/rotp/internal/envelope"
	logger "github.com/PolarWolf314/rotp/internal/logging"
	"github.com/PolarWolf314/rotp/internal/utils"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	settings *configs.UserSettings
	auditLog *audit.Log

	// readPassphrase and kdfParams are replaced in tests.
	readPassphrase utils.PassphraseReader = utils.ReadPassphrase
	kdfParams      envelope.Params
)

// NewRootCmd builds the rotp command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rotp",
		Short: "rotp - an encrypted local archive of OTP credentials",
		Long: `rotp keeps otpauth:// credentials in a single passphrase-encrypted file.

The archive location comes from --db, then the ROTP_DB environment variable,
then the "db" key in the user config file written by 'rotp init'.

Usage:
  rotp <command> [flags]

Run 'rotp help <command>' for more details on a specific command.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.OutOrStdout(),
				Err:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing rotp with verbose=%t, debug=%t", verbose, debug)

			s, err := configs.LoadUserSettings()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to load user settings: %v", err)
			}
			settings = s
			auditLog = audit.New(settings.AuditFile)
			Logger.Debugf("Config file: %s, audit log: %s", settings.ConfigFile, settings.AuditFile)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	root.PersistentFlags().String(configs.KeyDB, "", "archive path (overrides ROTP_DB and the config file)")

	root.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newImportCmd(),
		newListCmd(),
		newShowCmd(),
		newRemoveCmd(),
		newLogCmd(),
		newConfigCmd(),
	)

	return root
}

// Execute runs the root command and reports any error not already printed.
func Execute(ctx context.Context) error {
	root := NewRootCmd()
	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		reportUnprinted(cmd, err)
	}
	return err
}
