//go:build windows

package ollamalink

import "os"

// platformSourceProbes returns the Windows probe chain. Ollama installs
// per-user, so only the home directory applies.
func platformSourceProbes() []sourceProbe {
	return []sourceProbe{
		{name: "home", find: homeProbe},
		{name: "home fallback", find: homeFallbackProbe},
	}
}

// destSearchRoots returns the roots scanned for an existing LM Studio
// directory: the home directory followed by every mounted drive letter.
func destSearchRoots() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	roots := []string{home}
	for c := 'C'; c <= 'Z'; c++ {
		drive := string(c) + `:\`
		if dirExists(drive) {
			roots = append(roots, drive)
		}
	}
	return roots, nil
}
