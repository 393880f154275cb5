// Package audit keeps a local trail of rotp operations.
//
// Each init, add, import and remove appends one JSON object per line to
// $XDG_CONFIG_HOME/rotp/audit.jsonl:
//
//	{"ts":"2026-10-18T09:12:44.120391Z","session":"…","user":"alice","op":"add","archive":"/home/alice/codes.tar.rotp","added":1,"total":7}
//
// Entries hold counts only. Labels, issuers and secrets never reach the log,
// since it sits next to the config in plain text.
//
// Logging is best-effort. If the file cannot be written the operation
// continues without error. ReadEntries skips malformed lines left by partial
// writes.
package audit
