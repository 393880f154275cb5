package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(verbose, debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	return Logger{Verbose: verbose, Debug: debug, Out: &out, Err: &errOut}, &out, &errOut
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		debug       bool
		wantInfo    bool
		wantDebug   bool
		wantWarn    bool
		wantErrorLn bool
	}{
		{"Quiet", false, false, false, false, false, false},
		{"Verbose", true, false, true, false, true, false},
		{"Debug", false, true, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, out, errOut := newTestLogger(tt.verbose, tt.debug)

			l.Infof("info %d", 1)
			l.Debugf("debug %d", 2)
			l.Warnf("warn %d", 3)
			l.Errorf("error %d", 4)

			if got := strings.Contains(out.String(), "[info] info 1"); got != tt.wantInfo {
				t.Errorf("info shown = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out.String(), "[debug] debug 2"); got != tt.wantDebug {
				t.Errorf("debug shown = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(errOut.String(), "[warn] warn 3"); got != tt.wantWarn {
				t.Errorf("warn shown = %v, want %v", got, tt.wantWarn)
			}
			if got := strings.Contains(errOut.String(), "[error] error 4"); got != tt.wantErrorLn {
				t.Errorf("error shown = %v, want %v", got, tt.wantErrorLn)
			}
		})
	}
}

func TestWarnfUserAlwaysShown(t *testing.T) {
	l, _, errOut := newTestLogger(false, false)
	l.WarnfUser("skipped line %d", 7)

	if !strings.Contains(errOut.String(), "skipped line 7") {
		t.Errorf("Expected user warning, got %q", errOut.String())
	}
}

func TestErrorfAndReturnWraps(t *testing.T) {
	l, _, _ := newTestLogger(false, false)
	sentinel := errors.New("boom")

	err := l.ErrorfAndReturn("opening archive: %w", sentinel)
	if !errors.Is(err, sentinel) {
		t.Errorf("Expected wrapped sentinel, got %v", err)
	}
	if err.Error() != "opening archive: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
