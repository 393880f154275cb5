package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Line is one non-blank input line and its 1-based position.
type Line struct {
	Number int
	Text   string
}

// ReadLines returns the non-blank, non-comment lines of r with surrounding
// whitespace trimmed. Lines starting with # are comments.
func ReadLines(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, Line{Number: n, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

// ReadStdinLines reads lines piped on stdin.
// Returns an error if stdin is a terminal (no piped data) or holds no lines.
func ReadStdinLines() ([]Line, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// ModeCharDevice means stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no data provided on stdin (hint: pass otpauth:// URIs as arguments or pipe them in)")
	}

	lines, err := ReadLines(os.Stdin)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("stdin is empty")
	}
	return lines, nil
}
