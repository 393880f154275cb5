package workflows

import (
	"context"
	"fmt"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
)

// ShowOptions configures the show workflow.
type ShowOptions struct {
	ArchiveOptions

	Label string

	// RevealURI includes the otpauth:// URI, and so the secret, in the result.
	RevealURI bool
}

// ShowResult contains the outcome of a show operation.
type ShowResult struct {
	Summary

	// URI is empty unless RevealURI was set.
	URI string

	// Digits is the code length a generator should use.
	Digits int
}

// Show returns one entry's parameters, and its URI on request.
//
// Returns ErrEntryNotFound if no entry has the label.
// Returns ErrDecryptFailed if the passphrase is wrong or the file damaged.
func Show(ctx context.Context, opts ShowOptions) (*ShowResult, error) {
	st, err := openStore(ctx, opts.ArchiveOptions)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	tbl, err := st.Table()
	if err != nil {
		return nil, err
	}

	e, ok := tbl.Get(opts.Label)
	if !ok {
		return nil, fmt.Errorf("%q: %w", opts.Label, rerrors.ErrEntryNotFound)
	}

	key, err := e.Key()
	if err != nil {
		return nil, fmt.Errorf("building key for %q: %w", opts.Label, err)
	}

	result := &ShowResult{
		Summary: summarize(e),
		Digits:  key.Digits().Length(),
	}
	if opts.RevealURI {
		result.URI = e.Base().SourceURI
		if result.URI == "" {
			result.URI = key.String()
		}
	}
	return result, nil
}
