package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
)

func TestFormatError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		err  error
		want string
	}{
		{rerrors.ErrNotConfigured, "rotp init"},
		{rerrors.ErrBadName, ".tar.rotp"},
		{fmt.Errorf("opening x: %w", rerrors.ErrDecryptFailed), "wrong passphrase"},
		{fmt.Errorf("opening x: %w", rerrors.ErrTableCorrupt), "contents are damaged"},
		{fmt.Errorf("%q: %w", "bank", rerrors.ErrEntryNotFound), "rotp list"},
		{errors.New("something else"), "something else"},
	}

	for _, tt := range tests {
		got := formatError(tt.err)
		if !strings.HasPrefix(got, "✗ ") {
			t.Errorf("formatError(%v) = %q, want cross prefix", tt.err, got)
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("formatError(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
	}
}

func TestPrintedErrorKeepsChain(t *testing.T) {
	err := printed(fmt.Errorf("wrapped: %w", rerrors.ErrNotFound))
	if !errors.Is(err, rerrors.ErrNotFound) {
		t.Error("printed error lost its chain")
	}
	if printed(nil) != nil {
		t.Error("printed(nil) should be nil")
	}
}
