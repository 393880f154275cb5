package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/PolarWolf314/rotp/internal/audit"
)

const auditTimeLayout = "2006-01-02T15:04:05.000000Z"

// LogOptions configures the log workflow.
type LogOptions struct {
	// Path is the audit log file.
	Path string

	// Limit keeps only the most recent N entries. 0 means no limit.
	Limit int

	// Reverse orders entries newest first.
	Reverse bool

	// Operations keeps only these operations (comma-separated).
	Operations string

	// Since and Until bound the entry date, inclusive (YYYY-MM-DD).
	Since string
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// Total is the number of entries before filtering.
	Total int
}

// Log reads and filters the audit log. A missing log yields no entries.
// It does not need the archive passphrase.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	result := &LogResult{Total: len(entries)}

	if opts.Operations != "" {
		ops := lo.Map(strings.Split(opts.Operations, ","), func(op string, _ int) string {
			return strings.ToLower(strings.TrimSpace(op))
		})
		entries = lo.Filter(entries, func(e audit.Entry, _ int) bool {
			return lo.Contains(ops, strings.ToLower(e.Operation))
		})
	}

	if opts.Since != "" || opts.Until != "" {
		since, until, err := dateBounds(opts.Since, opts.Until)
		if err != nil {
			return nil, err
		}
		entries = lo.Filter(entries, func(e audit.Entry, _ int) bool {
			ts, err := time.Parse(auditTimeLayout, e.Timestamp)
			if err != nil {
				ts, err = time.Parse(time.RFC3339, e.Timestamp)
			}
			return err == nil && !ts.Before(since) && !ts.After(until)
		})
	}

	// The log is oldest first, so the most recent entries are at the end.
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[len(entries)-opts.Limit:]
	}
	if opts.Reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	result.Entries = entries
	return result, nil
}

func dateBounds(since, until string) (time.Time, time.Time, error) {
	from, to := time.Time{}, time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	if since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			return from, to, fmt.Errorf("--since date format invalid, use YYYY-MM-DD")
		}
		from = t
	}
	if until != "" {
		t, err := time.Parse("2006-01-02", until)
		if err != nil {
			return from, to, fmt.Errorf("--until date format invalid, use YYYY-MM-DD")
		}
		// Include the whole day.
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
