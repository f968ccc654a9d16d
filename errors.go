package ollamalink

import "errors"

// Sentinel errors for fatal preconditions.
// Use errors.Is() to check for specific error conditions.
var (
	// ErrSourceNotFound indicates the Ollama models directory does not exist.
	ErrSourceNotFound = errors.New("ollamalink: models directory not found")

	// ErrSourceUnreadable indicates the Ollama models directory exists but
	// cannot be read.
	ErrSourceUnreadable = errors.New("ollamalink: models directory not readable")

	// ErrDestUnavailable indicates the destination directory cannot be
	// created or written.
	ErrDestUnavailable = errors.New("ollamalink: destination directory unavailable")

	// ErrSymlinkUnsupported indicates the symbolic link capability probe
	// failed on a platform that is expected to support links.
	ErrSymlinkUnsupported = errors.New("ollamalink: symbolic links unsupported")

	// ErrLocked indicates another run currently owns the destination tree.
	ErrLocked = errors.New("ollamalink: destination locked by another run")

	// ErrNoHome indicates the current user's home directory cannot be
	// determined.
	ErrNoHome = errors.New("ollamalink: cannot determine home directory")

	// ErrInvalidName indicates a manifest path that does not follow the
	// {registry}/{namespace}/{model}/{tag} layout.
	ErrInvalidName = errors.New("ollamalink: invalid model name")
)
