//go:build !windows

package ollamalink

// symlinkFallback controls whether a failed symlink falls back to a byte
// copy. Unix filesystems are expected to support links, so a failure there
// is surfaced instead of silently consuming disk space.
const symlinkFallback = false
