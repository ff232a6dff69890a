package main

import (
	"errors"
	"os"

	xlsx2docx "github.com/j3rryl/go-xlsx2docx"
	"github.com/j3rryl/go-xlsx2docx/internal/config"
)

// Exit codes for the xlsx2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// Per-record failures do not change the exit code.
const (
	ExitSuccess = 0 // Batch ran (possibly with per-record failures)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or arguments
	ExitIO      = 3 // Input missing, output directory unwritable
	ExitData    = 4 // Corrupt data file or no records
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Data errors (exit 4)
	if errors.Is(err, xlsx2docx.ErrCorruptInput) ||
		errors.Is(err, xlsx2docx.ErrNoData) {
		return ExitData
	}

	// I/O errors (exit 3)
	if errors.Is(err, xlsx2docx.ErrInputMissing) ||
		errors.Is(err, xlsx2docx.ErrOutputDir) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, xlsx2docx.ErrEmptyPath) ||
		errors.Is(err, xlsx2docx.ErrUnsupportedFormat) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
