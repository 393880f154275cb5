package utils

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
	"github.com/PolarWolf314/rotp/internal/secret"
)

// PassphraseReader reads one passphrase after showing prompt.
type PassphraseReader func(prompt string) (*secret.Passphrase, error)

// ReadPassphrase prompts for a passphrase without echoing input. It reads
// from stdin when that is a terminal and from the controlling TTY otherwise,
// so URIs can still be piped on stdin.
func ReadPassphrase(prompt string) (*secret.Passphrase, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		return readHidden(fd, prompt)
	}
	return ReadPassphraseFromTTY(prompt)
}

// ReadPassphraseFromTTY prompts on /dev/tty (or CON on Windows).
func ReadPassphraseFromTTY(prompt string) (*secret.Passphrase, error) {
	tty, err := os.Open(ttyPath())
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for passphrase input: %w", ttyPath(), err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", ttyPath())
	}
	return readHidden(fd, prompt)
}

func readHidden(fd int, prompt string) (*secret.Passphrase, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Newline after hidden input.

	if err != nil {
		secret.Wipe(raw)
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return secret.New(raw), nil
}

// ReadNewPassphrase asks for a passphrase twice and returns it only if both
// entries match and are non-empty.
func ReadNewPassphrase(read PassphraseReader) (*secret.Passphrase, error) {
	first, err := read("New passphrase: ")
	if err != nil {
		return nil, err
	}
	if first.Empty() {
		first.Destroy()
		return nil, rerrors.ErrEmptyPassphrase
	}

	second, err := read("Confirm passphrase: ")
	if err != nil {
		first.Destroy()
		return nil, err
	}
	defer second.Destroy()

	if !first.Equal(second) {
		first.Destroy()
		return nil, rerrors.ErrPassphraseMismatch
	}
	return first, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}
