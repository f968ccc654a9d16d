package ollamalink

// Version is the release version, overridden at build time via
// -ldflags="-X github.com/ollamalink/ollamalink.Version=...".
var Version = "0.0.0"
