// Package workflows provides high-level orchestration for rotp commands.
//
// Each workflow handles one command's business logic, independent of CLI
// concerns like flag parsing, prompting, spinners and output formatting.
// The cmd/ package parses flags, reads the passphrase, calls a workflow and
// prints its Result.
//
// # Available Workflows
//
//   - Init: creates an empty archive and remembers its location
//   - Add: parses otpauth:// URIs and stores them, all or nothing
//   - Import: reads URI files, skipping lines that do not parse
//   - List: summarizes entries without secrets
//   - Show: one entry's parameters, and its URI on request
//   - Remove: deletes entries by label
//   - Log: reads the local audit trail
//
// Every workflow that opens the archive defers store.Close, so the
// passphrase and decrypted table are wiped on every return path.
//
// # Error Handling
//
// Workflows return sentinel errors from internal/errors, wrapped with
// context. Use errors.Is to check for specific conditions:
//
//	result, err := workflows.Add(ctx, opts)
//	if errors.Is(err, rerrors.ErrDecryptFailed) {
//	    // Wrong passphrase or damaged archive
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter
// and check it before key derivation and before saving.
package workflows
