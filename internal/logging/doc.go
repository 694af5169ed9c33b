// Package logger provides leveled logging for installer commands.
//
// Output verbosity is controlled by two flags shared by every command:
//
//   - --verbose: shows info messages
//   - --debug: shows debug messages
//
// Warnings and errors are always shown; the installer's whole error policy
// depends on degraded paths staying visible even in quiet mode.
//
// # Log Methods
//
//	Logger.Infof()            // Shown with --verbose
//	Logger.Debugf()           // Shown only with --debug
//	Logger.Warnf()            // Always shown
//	Logger.Errorf()           // Always shown
//	Logger.ErrorfAndReturn()  // Always shown, also returned as an error
//
// # Usage
//
// Commands create a logger in their PersistentPreRun and pass it to the
// internal packages:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Warnf("Homebrew not found")
package logger
