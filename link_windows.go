//go:build windows

package ollamalink

// symlinkFallback controls whether a failed symlink falls back to a byte
// copy. Creating symlinks on Windows requires elevated privileges or
// developer mode, so the copy fallback keeps unprivileged runs working.
const symlinkFallback = true
