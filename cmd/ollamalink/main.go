// Command ollamalink links locally downloaded Ollama models into a
// directory layout LM Studio can read.
//
// Overrides are available as flags on the link subcommand; the source
// directory can also be set via the OLLAMA_MODELS environment variable.
package main

import (
	"errors"
	"os"

	ollamalink "github.com/ollamalink/ollamalink"
)

// CLI exit codes for standardized error reporting.
const (
	// ExitSuccess indicates the operation completed successfully,
	// including runs that found nothing to link.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitSourceNotFound indicates the Ollama models directory is missing.
	ExitSourceNotFound = 2

	// ExitSourceUnreadable indicates the Ollama models directory cannot be
	// read.
	ExitSourceUnreadable = 3

	// ExitDestUnavailable indicates the destination directory cannot be
	// created or written.
	ExitDestUnavailable = 4

	// ExitSymlinkUnsupported indicates the symlink capability probe failed
	// on a platform that should support links.
	ExitSymlinkUnsupported = 5

	// ExitLocked indicates another run holds the destination lock.
	ExitLocked = 6

	// ExitNoHome indicates the home directory cannot be determined.
	ExitNoHome = 7
)

func main() {
	cmd := ollamalink.NewCommand(ollamalink.Config{})
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCodeFromError(err))
	}
}

// exitCodeFromError maps sentinel errors to exit codes.
func exitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ollamalink.ErrSourceNotFound):
		return ExitSourceNotFound
	case errors.Is(err, ollamalink.ErrSourceUnreadable):
		return ExitSourceUnreadable
	case errors.Is(err, ollamalink.ErrDestUnavailable):
		return ExitDestUnavailable
	case errors.Is(err, ollamalink.ErrSymlinkUnsupported):
		return ExitSymlinkUnsupported
	case errors.Is(err, ollamalink.ErrLocked):
		return ExitLocked
	case errors.Is(err, ollamalink.ErrNoHome):
		return ExitNoHome
	default:
		return ExitGeneralError
	}
}
