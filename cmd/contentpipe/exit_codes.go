package main

import (
	"errors"
	"os"

	contentpipe "github.com/ldelmas/go-contentpipe"
	"github.com/ldelmas/go-contentpipe/internal/config"
)

// Exit codes for the contentpipe CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadDocument) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidBudget) ||
		errors.Is(err, contentpipe.ErrEmptySource) ||
		errors.Is(err, contentpipe.ErrMalformedMetadata) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidPrefix) {
		return ExitUsage
	}

	return ExitGeneral
}
