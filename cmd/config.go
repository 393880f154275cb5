package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rotp/internal/configs"
	rerrors "github.com/PolarWolf314/rotp/internal/errors"
	"github.com/PolarWolf314/rotp/internal/store"
	"github.com/PolarWolf314/rotp/internal/ui"
)

// configReport is what config show prints.
type configReport struct {
	ConfigFile string `json:"config_file"`
	AuditFile  string `json:"audit_file"`
	Archive    string `json:"archive"`
	Source     string `json:"source"`
	Status     string `json:"status"`
}

// Archive status values in a configReport.
const (
	statusPresent = "present"
	statusMissing = "missing"
	statusBadName = "bad name"
	statusUnset   = "unset"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect rotp configuration",
		Long:  `Commands for inspecting where rotp keeps its archive, config and audit log.`,
	}
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the resolved configuration",
		Long: `Displays which archive rotp would use and why.

The archive comes from --db, then ROTP_DB, then the "db" key in the user
config file. The output names the winning source and whether the archive
exists. No passphrase is asked for.

Examples:
  rotp config show
  rotp config show --json
  rotp --db ~/work.tar.rotp config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting config show command")
			Logger.Debugf("Flags: json=%t", asJSON)

			resolver, err := configs.NewResolver(settings.ConfigFile, cmd.Flags())
			if err != nil {
				return fail(cmd, err)
			}

			report := configReport{
				ConfigFile: settings.ConfigFile,
				AuditFile:  settings.AuditFile,
				Archive:    resolver.DB(),
				Source:     resolver.Source(),
				Status:     archiveStatus(resolver.DB()),
			}
			Logger.Debugf("Archive %q from %s is %s", report.Archive, report.Source, report.Status)

			if asJSON {
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fail(cmd, fmt.Errorf("failed to marshal config to JSON: %w", err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			writeConfigReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func archiveStatus(location string) string {
	if location == "" {
		return statusUnset
	}
	_, err := store.Locate(location)
	switch {
	case err == nil:
		return statusPresent
	case errors.Is(err, rerrors.ErrBadName):
		return statusBadName
	}
	return statusMissing
}

func writeConfigReport(w io.Writer, r configReport) {
	fmt.Fprintln(w, ui.Info.Sprint("rotp configuration")+":")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-12s %s\n", "Config:", ui.Path.Sprint(r.ConfigFile))
	fmt.Fprintf(w, "  %-12s %s\n", "Audit log:", ui.Path.Sprint(r.AuditFile))

	if r.Archive == "" {
		fmt.Fprintf(w, "  %-12s %s\n", "Archive:", ui.Warning.Sprint("not configured"))
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("rotp init")+
			", pass "+ui.Flag.Sprint("--db")+" or set "+ui.Flag.Sprint(configs.EnvDB))
		return
	}

	fmt.Fprintf(w, "  %-12s %s %s\n", "Archive:", ui.Path.Sprint(r.Archive), ui.Muted.Sprint("from "+r.Source))
	status := ui.Success.Sprint(r.Status)
	if r.Status != statusPresent {
		status = ui.Warning.Sprint(r.Status)
	}
	fmt.Fprintf(w, "  %-12s %s\n", "Status:", status)
}
