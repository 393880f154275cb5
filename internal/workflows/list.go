package workflows

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/PolarWolf314/rotp/internal/otp"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	ArchiveOptions

	// Filter keeps entries whose label or issuer contains it,
	// case-insensitively. Empty keeps everything.
	Filter string

	// Kind keeps only entries of this kind when set.
	Kind otp.Kind
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Entries are in archive order.
	Entries []Summary

	// Total is the number of entries before filtering.
	Total int
}

// List returns a secret-free summary of the archive's entries.
//
// Returns ErrDecryptFailed if the passphrase is wrong or the file damaged.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	st, err := openStore(ctx, opts.ArchiveOptions)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	tbl, err := st.Table()
	if err != nil {
		return nil, err
	}

	all := summarizeAll(tbl.Entries())
	needle := strings.ToLower(opts.Filter)

	filtered := lo.Filter(all, func(s Summary, _ int) bool {
		if opts.Kind != "" && s.Kind != opts.Kind {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(s.Label), needle) ||
			strings.Contains(strings.ToLower(s.Issuer), needle)
	})

	return &ListResult{Entries: filtered, Total: len(all)}, nil
}
