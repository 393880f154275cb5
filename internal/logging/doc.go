// Package logger provides leveled logging for rotp CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with coloured prefixes from fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags, only user-facing warnings are shown. Errors reach the user
// through the command's returned error instead.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfUser()       // Always shown
//	Logger.Errorf()          // Shown with --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//
// Nothing secret is ever passed to a Logger: OTP entries and passphrases
// render redacted under every fmt verb, but callers log labels and counts
// only.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Opened archive with %d credentials", n)
package logger
