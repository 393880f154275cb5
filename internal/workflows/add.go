package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/rotp/internal/audit"
	rerrors "github.com/PolarWolf314/rotp/internal/errors"
	"github.com/PolarWolf314/rotp/internal/otp"
)

// AddOptions configures the add workflow.
type AddOptions struct {
	ArchiveOptions

	// URIs are otpauth:// links, usually decoded from QR codes.
	URIs []string

	// Replace overwrites entries whose label already exists.
	Replace bool
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	// Added and Replaced list labels in input order.
	Added    []string
	Replaced []string

	// Total is the number of entries in the archive afterwards.
	Total int
}

// Add parses every URI, then stores them all in one save. Nothing is written
// unless every URI parses and every label is accepted.
//
// Returns a URI error (ErrNotAnOtpLink, ErrSecretMissing, ...) naming the
// offending position if any URI is invalid.
// Returns ErrEntryExists if a label is taken and Replace is false.
// Returns ErrDecryptFailed if the passphrase is wrong or the file damaged.
func Add(ctx context.Context, opts AddOptions) (*AddResult, error) {
	if len(opts.URIs) == 0 {
		return nil, fmt.Errorf("no otpauth URIs given")
	}

	// Parse before paying for key derivation.
	entries := make([]otp.Entry, 0, len(opts.URIs))
	for i, uri := range opts.URIs {
		e, err := otp.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("URI %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}

	st, err := openStore(ctx, opts.ArchiveOptions)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	tbl, err := st.Table()
	if err != nil {
		return nil, err
	}

	result := &AddResult{}
	for _, e := range entries {
		label := e.Base().Label
		if tbl.Has(label) {
			if !opts.Replace {
				return nil, fmt.Errorf("%q: %w (use --replace to overwrite)", label, rerrors.ErrEntryExists)
			}
			result.Replaced = append(result.Replaced, label)
		} else {
			result.Added = append(result.Added, label)
		}
		if err := tbl.Put(e); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := st.Save(); err != nil {
		return nil, err
	}
	result.Total = tbl.Len()

	opts.Audit.Record(audit.Entry{
		Operation: "add",
		Archive:   st.Path(),
		Added:     len(result.Added),
		Replaced:  len(result.Replaced),
		Total:     result.Total,
	})

	return result, nil
}
