package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/rotp/internal/audit"
	"github.com/PolarWolf314/rotp/internal/configs"
	"github.com/PolarWolf314/rotp/internal/store"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	ArchiveOptions

	// ConfigFile, when set, receives the new archive path so later commands
	// find it without --db or ROTP_DB.
	ConfigFile string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Path is the absolute path of the new archive.
	Path string

	// Remembered reports whether the path was written to ConfigFile.
	Remembered bool
}

// Init creates a new, empty archive and records its location.
//
// Returns ErrNotConfigured if no location was given.
// Returns ErrBadName if the location does not end in .tar.rotp.
// Returns ErrAlreadyExists if a file is already there; it is left untouched.
// Returns ErrEmptyPassphrase if the passphrase is empty.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	location, err := store.Resolve(opts.Location)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(location), 0700); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	st := store.New(store.Options{Params: opts.Params})
	defer st.Close()

	if err := st.Create(location, opts.Passphrase); err != nil {
		return nil, err
	}

	path, err := filepath.Abs(st.Path())
	if err != nil {
		return nil, fmt.Errorf("resolving archive path: %w", err)
	}
	result := &InitResult{Path: path}

	if opts.ConfigFile != "" {
		if err := configs.RememberDB(opts.ConfigFile, path); err != nil {
			return result, fmt.Errorf("archive created, but saving its location failed: %w", err)
		}
		result.Remembered = true
	}

	opts.Audit.Record(audit.Entry{Operation: "init", Archive: path})

	return result, nil
}
