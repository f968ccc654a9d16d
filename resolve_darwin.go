//go:build darwin

package ollamalink

import "os"

// platformSourceProbes returns the macOS probe chain. The desktop app keeps
// its store under the caller's home directory; there is no system-wide
// install.
func platformSourceProbes() []sourceProbe {
	return []sourceProbe{
		{name: "home", find: homeProbe},
		{name: "home fallback", find: homeFallbackProbe},
	}
}

// destSearchRoots returns the roots scanned for an existing LM Studio
// directory: the home directory and mounted volumes.
func destSearchRoots() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	roots := []string{home}
	if dirExists("/Volumes") {
		roots = append(roots, "/Volumes")
	}
	return roots, nil
}
