package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/rotp/internal/configs"
	"github.com/PolarWolf314/rotp/internal/secret"
)

func showConfigJSON(t *testing.T, args ...string) configReport {
	t.Helper()
	stdout, _, err := execute(t, append(args, "config", "show", "--json")...)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	var report configReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	return report
}

func TestConfigShow_NotConfigured(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(stdout, "not configured") {
		t.Errorf("expected not configured notice, got: %s", stdout)
	}

	report := showConfigJSON(t)
	if report.Source != configs.SourceUnset || report.Status != statusUnset {
		t.Errorf("unexpected report: %+v", report)
	}
	if !strings.HasSuffix(report.AuditFile, "audit.jsonl") {
		t.Errorf("unexpected audit file: %s", report.AuditFile)
	}
}

func TestConfigShow_Sources(t *testing.T) {
	dir := setupTestEnvironment(t)
	remembered := initArchive(t, dir)

	report := showConfigJSON(t)
	if report.Archive != remembered || report.Source != configs.SourceConfig || report.Status != statusPresent {
		t.Errorf("expected remembered archive from config, got %+v", report)
	}

	missing := filepath.Join(dir, "gone.tar.rotp")
	t.Setenv("ROTP_DB", missing)
	report = showConfigJSON(t)
	if report.Archive != missing || report.Source != configs.SourceEnv || report.Status != statusMissing {
		t.Errorf("expected missing archive from env, got %+v", report)
	}

	badName := filepath.Join(dir, "codes.txt")
	report = showConfigJSON(t, "--db", badName)
	if report.Archive != badName || report.Source != configs.SourceFlag || report.Status != statusBadName {
		t.Errorf("expected bad name from flag, got %+v", report)
	}
}

func TestConfigShow_NeverPrompts(t *testing.T) {
	dir := setupTestEnvironment(t)
	initArchive(t, dir)

	original := readPassphrase
	readPassphrase = func(prompt string) (*secret.Passphrase, error) {
		t.Fatalf("unexpected passphrase prompt %q", prompt)
		return nil, nil
	}
	t.Cleanup(func() { readPassphrase = original })

	stdout, _, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(stdout, "from config") || !strings.Contains(stdout, statusPresent) {
		t.Errorf("unexpected output: %s", stdout)
	}
}
