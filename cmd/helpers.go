package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rotp/internal/configs"
	rerrors "github.com/PolarWolf314/rotp/internal/errors"
	"github.com/PolarWolf314/rotp/internal/ui"
	"github.com/PolarWolf314/rotp/internal/workflows"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message and prints it to the command's
// output instead of letting the spinner print it.
func startSpinner(cmd *cobra.Command, message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(cmd.OutOrStdout(), finalMsg)
		}
	}

	return s, cleanup
}

// printedError marks an error whose message has already reached the user.
type printedError struct {
	err error
}

func (e printedError) Error() string { return e.err.Error() }
func (e printedError) Unwrap() error { return e.err }

// printed returns err wrapped so Execute does not print it a second time.
func printed(err error) error {
	if err == nil {
		return nil
	}
	return printedError{err: err}
}

// fail prints err to stderr now and returns it marked as printed.
func fail(cmd *cobra.Command, err error) error {
	fmt.Fprint(cmd.ErrOrStderr(), ui.EnsureNewline(formatError(err)))
	return printed(err)
}

func reportUnprinted(cmd *cobra.Command, err error) {
	var p printedError
	if errors.As(err, &p) {
		return
	}
	w := io.Writer(os.Stderr)
	if cmd != nil {
		w = cmd.ErrOrStderr()
	}
	fmt.Fprint(w, ui.EnsureNewline(formatError(err)))
}

// formatError turns a workflow error into a user-facing message.
func formatError(err error) string {
	cross := ui.Error.Sprint("✗")

	switch {
	case errors.Is(err, rerrors.ErrNotConfigured):
		return cross + " No archive configured\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("rotp init") +
			", pass " + ui.Flag.Sprint("--db") + " or set " + ui.Flag.Sprint(configs.EnvDB)

	case errors.Is(err, rerrors.ErrBadName):
		return cross + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Archive files must be named like " + ui.Path.Sprint("codes.tar.rotp")

	case errors.Is(err, rerrors.ErrNotFound):
		return cross + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("rotp init") + " to create one"

	case errors.Is(err, rerrors.ErrAlreadyExists):
		return cross + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The existing file was left untouched"

	case errors.Is(err, rerrors.ErrDecryptFailed):
		return cross + " Cannot decrypt the archive: wrong passphrase or corrupt file"

	case errors.Is(err, rerrors.ErrArchiveCorrupt),
		errors.Is(err, rerrors.ErrEntryMissing),
		errors.Is(err, rerrors.ErrTableCorrupt):
		return cross + " The archive decrypted but its contents are damaged\n" +
			ui.Muted.Sprint(err.Error())

	case errors.Is(err, rerrors.ErrEntryNotFound):
		return cross + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("rotp list") + " to see stored labels"
	}

	return cross + " " + err.Error()
}

// resolveLocation returns the archive location from --db, ROTP_DB or the
// user config file.
func resolveLocation(cmd *cobra.Command) (string, error) {
	resolver, err := configs.NewResolver(settings.ConfigFile, cmd.Flags())
	if err != nil {
		return "", err
	}
	location := resolver.DB()
	Logger.Debugf("Resolved archive location: %q", location)
	return location, nil
}

// archiveOptions resolves the archive and prompts for its passphrase. The
// caller must defer Destroy on the returned passphrase.
func archiveOptions(cmd *cobra.Command) (workflows.ArchiveOptions, error) {
	location, err := resolveLocation(cmd)
	if err != nil {
		return workflows.ArchiveOptions{}, err
	}
	if location == "" {
		return workflows.ArchiveOptions{}, rerrors.ErrNotConfigured
	}

	pass, err := readPassphrase("Passphrase: ")
	if err != nil {
		return workflows.ArchiveOptions{}, err
	}

	return workflows.ArchiveOptions{
		Location:   location,
		Passphrase: pass,
		Params:     kdfParams,
		Audit:      auditLog,
	}, nil
}
