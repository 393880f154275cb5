package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/rotp/internal/envelope"
	"github.com/PolarWolf314/rotp/internal/secret"
)

const testPassphrase = "correct horse battery staple"

// cheapParams keeps key derivation fast in tests.
var cheapParams = envelope.Params{Time: 1, Memory: 8, Threads: 1}

// setupTestEnvironment points the user config directory at a temp dir and
// replaces the passphrase prompt. It returns the temp dir.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv("ROTP_DB", "")
	t.Setenv("NO_COLOR", "1")

	SetPassphrases(t, testPassphrase)
	SetParams(t, cheapParams)
	return dir
}

// SetPassphrases makes each prompt answer with the next value, repeating the
// last one once they run out.
func SetPassphrases(t *testing.T, answers ...string) {
	t.Helper()
	original := readPassphrase
	i := 0
	readPassphrase = func(string) (*secret.Passphrase, error) {
		answer := answers[len(answers)-1]
		if i < len(answers) {
			answer = answers[i]
		}
		i++
		return secret.FromString(answer), nil
	}
	t.Cleanup(func() { readPassphrase = original })
}

// SetParams overrides the key derivation cost for new archives.
func SetParams(t *testing.T, p envelope.Params) {
	t.Helper()
	original := kdfParams
	kdfParams = p
	t.Cleanup(func() { kdfParams = original })
}

// execute runs rotp with args the way Execute does and captures its output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(context.Background())
	if err != nil {
		reportUnprinted(cmd, err)
	}
	return stdout.String(), stderr.String(), err
}

// initArchive creates an archive in dir and returns its path.
func initArchive(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "codes.tar.rotp")
	if _, _, err := execute(t, "init", "--no-banner", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return path
}
