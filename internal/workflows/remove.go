package workflows

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/PolarWolf314/rotp/internal/audit"
	rerrors "github.com/PolarWolf314/rotp/internal/errors"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	ArchiveOptions

	Labels []string
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	Removed []string

	// Total is the number of entries left in the archive.
	Total int
}

// Remove deletes the given labels in one save. If any label is missing
// nothing is removed.
//
// Returns ErrEntryNotFound naming the first missing label.
// Returns ErrDecryptFailed if the passphrase is wrong or the file damaged.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	if len(opts.Labels) == 0 {
		return nil, fmt.Errorf("no labels given")
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

	labels := lo.Uniq(opts.Labels)
	if missing, found := lo.Find(labels, func(l string) bool { return !tbl.Has(l) }); found {
		return nil, fmt.Errorf("%q: %w", missing, rerrors.ErrEntryNotFound)
	}

	for _, l := range labels {
		if err := tbl.Delete(l); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := st.Save(); err != nil {
		return nil, err
	}

	result := &RemoveResult{Removed: labels, Total: tbl.Len()}

	opts.Audit.Record(audit.Entry{
		Operation: "remove",
		Archive:   st.Path(),
		Removed:   len(result.Removed),
		Total:     result.Total,
	})

	return result, nil
}
