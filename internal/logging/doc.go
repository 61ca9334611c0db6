// Package logging provides structured logging for formguard.
//
// This package wraps a package-global zap logger with level helpers and a few
// domain-specific functions. It is silent by default so that the interactive
// form and the run-once CLI output are not interleaved with log lines.
//
// # Configuration
//
// Set FORMGUARD_LOG_LEVEL to "debug", "info", "warn" or "error", or call
// Initialize with an explicit level:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Domain helpers
//
//	logging.LogTransition("email", "blur", states)
//	logging.LogRegistryEvent("register", "email", 3)
//	logging.LogSessionMessage(remoteAddr, "received", "change", 42)
//
// Transition logs are emitted at debug level; they fire on every keystroke in
// the interactive form.
package logging
