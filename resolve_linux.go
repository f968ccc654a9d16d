//go:build linux

package ollamalink

import (
	"os"
	"os/exec"
	"os/user"
)

// systemModelsDir is where the packaged Ollama systemd service keeps its
// store.
const systemModelsDir = "/usr/share/ollama/.ollama/models"

// platformSourceProbes returns the Linux probe chain: the service account
// shortcut, the systemd service check, the system-wide path, then the
// caller's home directory.
func platformSourceProbes() []sourceProbe {
	return []sourceProbe{
		{name: "service account", find: serviceAccountProbe},
		{name: "systemd service", find: systemdProbe},
		{name: "system path", find: systemPathProbe},
		{name: "home", find: homeProbe},
		{name: "home fallback", find: homeFallbackProbe},
	}
}

// serviceAccountProbe matches when the process itself runs as the ollama
// service account.
func serviceAccountProbe(Config) (string, bool, error) {
	u, err := user.Current()
	if err != nil || u.Username != "ollama" {
		return "", false, nil
	}
	if !dirExists(systemModelsDir) {
		return "", false, nil
	}
	return systemModelsDir, true, nil
}

// systemdProbe matches when the ollama systemd unit is active and the
// system-wide store is readable by the caller. Lack of access falls through
// to the next probe rather than failing.
func systemdProbe(Config) (string, bool, error) {
	if err := exec.Command("systemctl", "is-active", "--quiet", "ollama").Run(); err != nil {
		return "", false, nil
	}
	if !dirReadable(systemModelsDir) {
		return "", false, nil
	}
	return systemModelsDir, true, nil
}

// systemPathProbe matches when the system-wide store exists and is readable,
// regardless of how Ollama is run.
func systemPathProbe(Config) (string, bool, error) {
	if !dirReadable(systemModelsDir) {
		return "", false, nil
	}
	return systemModelsDir, true, nil
}

// destSearchRoots returns the roots scanned for an existing LM Studio
// directory: the home directory and common removable-media mount points.
func destSearchRoots() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	roots := []string{home}
	for _, p := range []string{"/mnt", "/media", "/run/media"} {
		if dirExists(p) {
			roots = append(roots, p)
		}
	}
	return roots, nil
}
