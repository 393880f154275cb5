// Package errors provides typed error values for rotp.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Configuration errors: archive location unresolved (ErrNotConfigured, ErrBadName)
//   - Archive I/O errors: missing or pre-existing file (ErrNotFound, ErrAlreadyExists)
//   - Crypto errors: a single indistinguishable decrypt failure (ErrDecryptFailed)
//   - Container errors: unreadable tar, missing entry, bad table (ErrArchiveCorrupt,
//     ErrEntryMissing, ErrTableCorrupt)
//   - URI errors: one sentinel per otpauth parse failure (ErrNotAnOtpLink, ...)
//   - Store errors: lifecycle misuse and lookups (ErrStoreNotOpen, ErrEntryNotFound)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading %s: %w", path, errors.ErrNotFound)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, rerrors.ErrDecryptFailed) {
//	    // Ask the user to retry the passphrase
//	}
//
// ErrDecryptFailed is deliberately the only error an envelope Open returns, so
// the CLI cannot tell a wrong passphrase from a modified file either.
package errors
