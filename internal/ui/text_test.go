package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	// t.Setenv restores NO_COLOR afterwards; it must be absent, not empty.
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	original := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = original }()

	result := Code.Sprint("rotp init")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}

	label := Label.Sprintf("%s:%s", "GitHub", "alice")
	if strings.HasPrefix(label, "'") {
		t.Errorf("Label should not be quoted when color is enabled, got: %s", label)
	}
	if !strings.Contains(label, "GitHub:alice") {
		t.Errorf("Label should contain the text, got: %s", label)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "rotp init", "`rotp init`"},
		{"Path has no decoration", Path, "~/codes.tar.rotp", "~/codes.tar.rotp"},
		{"Flag has no decoration", Flag, "--db", "--db"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Label adds quotes", Label, "GitHub:alice", "'GitHub:alice'"},
		{"Muted adds parentheses", Muted, "totp", "(totp)"},
		{"Danger adds markers", Danger, "secret shown", "!! secret shown !!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.formatter.Sprint(tt.input); got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}

	if got := Code.Sprintf("rotp %s", "list"); got != "`rotp list`" {
		t.Errorf("Code.Sprintf() = %q, want %q", got, "`rotp list`")
	}
}

func TestEnsureNewline(t *testing.T) {
	for in, want := range map[string]string{"": "\n", "a": "a\n", "a\n": "a\n"} {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, []string{"label", "kind"}, [][]string{
		{"GitHub:alice", "totp"},
		{"bank", "hotp"},
	})
	if err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "LABEL") {
		t.Errorf("Expected upper-case header, got %q", lines[0])
	}
	if strings.Index(lines[1], "totp") != strings.Index(lines[2], "hotp") {
		t.Errorf("Columns are not aligned:\n%s", buf.String())
	}
}
