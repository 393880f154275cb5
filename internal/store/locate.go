package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
)

// Suffix is the file name ending every archive must carry.
const Suffix = ".tar.rotp"

// Locate validates a configured archive location and returns the path to an
// existing archive. A leading "~/" is expanded to the home directory.
func Locate(configured string) (string, error) {
	path, err := Resolve(configured)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", path, rerrors.ErrNotFound)
		}
		return "", fmt.Errorf("checking archive %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory: %w", path, rerrors.ErrNotFound)
	}

	return path, nil
}

// Resolve checks the naming rules shared by Locate and Create and expands a
// leading "~/". It does not touch the filesystem.
func Resolve(configured string) (string, error) {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		return "", rerrors.ErrNotConfigured
	}
	if !strings.HasSuffix(configured, Suffix) {
		return "", fmt.Errorf("%q: %w", configured, rerrors.ErrBadName)
	}
	return expandHome(configured)
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, path[2:]), nil
}
