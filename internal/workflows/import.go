package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/rotp/internal/audit"
	"github.com/PolarWolf314/rotp/internal/otp"
	"github.com/PolarWolf314/rotp/internal/utils"
)

// ImportMode decides what happens when an imported label already exists.
type ImportMode int

const (
	// ImportModeMerge keeps the existing entry and skips the imported one.
	ImportModeMerge ImportMode = iota
	// ImportModeReplace overwrites the existing entry.
	ImportModeReplace
	// ImportModeRename stores the imported entry under the first free
	// "label-N".
	ImportModeRename
)

func (m ImportMode) String() string {
	switch m {
	case ImportModeReplace:
		return "replace"
	case ImportModeRename:
		return "rename"
	default:
		return "merge"
	}
}

// ParseImportMode maps a --mode flag value onto an ImportMode.
func ParseImportMode(s string) (ImportMode, error) {
	switch s {
	case "", "merge":
		return ImportModeMerge, nil
	case "replace":
		return ImportModeReplace, nil
	case "rename":
		return ImportModeRename, nil
	}
	return ImportModeMerge, fmt.Errorf("unknown import mode %q (want merge, replace or rename)", s)
}

// ImportOptions configures the import workflow.
type ImportOptions struct {
	ArchiveOptions

	// Files are text files holding one otpauth:// URI per line.
	Files []string

	Mode ImportMode

	// DryRun reports what would change without saving.
	DryRun bool
}

// InvalidLine is an input line that did not parse.
type InvalidLine struct {
	File string
	Line int
	Err  error
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Added    int
	Replaced int
	Renamed  int
	Skipped  int

	// Invalid lists lines that were not imported because they did not parse.
	Invalid []InvalidLine

	// Total is the number of entries in the archive afterwards (or that
	// there would be, for a dry run).
	Total int

	DryRun bool
	Mode   ImportMode
}

// Import reads URI files and adds their entries in one save. Unlike Add, a
// line that does not parse is reported in the result and skipped rather than
// aborting the import.
//
// Returns ErrDecryptFailed if the passphrase is wrong or the file damaged.
// Returns an error if an input file cannot be read.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{DryRun: opts.DryRun, Mode: opts.Mode}

	var entries []otp.Entry
	for _, file := range opts.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		parsed, invalid, err := readURIFile(file)
		if err != nil {
			return nil, err
		}
		entries = append(entries, parsed...)
		result.Invalid = append(result.Invalid, invalid...)
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

	for _, e := range entries {
		label := e.Base().Label
		if !tbl.Has(label) {
			result.Added++
		} else {
			switch opts.Mode {
			case ImportModeMerge:
				result.Skipped++
				continue
			case ImportModeReplace:
				result.Replaced++
			case ImportModeRename:
				e.Base().Label = utils.UniqueName(label, tbl.Has)
				result.Renamed++
			}
		}
		if err := tbl.Put(e); err != nil {
			return nil, err
		}
	}
	result.Total = tbl.Len()

	changed := result.Added+result.Replaced+result.Renamed > 0
	if opts.DryRun || !changed {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := st.Save(); err != nil {
		return nil, err
	}

	opts.Audit.Record(audit.Entry{
		Operation: "import",
		Archive:   st.Path(),
		Added:     result.Added + result.Renamed,
		Replaced:  result.Replaced,
		Skipped:   result.Skipped + len(result.Invalid),
		Total:     result.Total,
	})

	return result, nil
}

func readURIFile(path string) ([]otp.Entry, []InvalidLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lines, err := utils.ReadLines(f)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var entries []otp.Entry
	var invalid []InvalidLine
	for _, line := range lines {
		e, err := otp.Parse(line.Text)
		if err != nil {
			invalid = append(invalid, InvalidLine{File: path, Line: line.Number, Err: err})
			continue
		}
		entries = append(entries, e)
	}
	return entries, invalid, nil
}
