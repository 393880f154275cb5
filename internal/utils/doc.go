// Package utils provides shared helpers for the rotp CLI.
//
// # Terminal Utilities
//
//   - ReadPassphrase: prompts without echo, falling back to /dev/tty when
//     stdin is piped
//   - ReadNewPassphrase: onboarding prompt, asked twice and compared in
//     constant time
//
// Passphrases come back as *secret.Passphrase; callers defer Destroy.
//
// # I/O Utilities
//
//   - ReadLines, ReadStdinLines: one otpauth:// URI per line, skipping blanks
//     and # comments
//   - ResolveFiles: glob expansion with doublestar for import
//
// # String Utilities
//
//   - FormatPaths: bullet list of paths for human output
//   - UniqueName: first free "label-N" for imports that keep both entries
package utils
