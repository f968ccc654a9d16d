package ollamalink

import (
	"fmt"
	"os"
	"path/filepath"
)

// modelsEnvVar overrides source discovery, mirroring the variable the Ollama
// server itself honors.
const modelsEnvVar = "OLLAMA_MODELS"

// maxSearchDepth bounds the destination directory search.
const maxSearchDepth = 5

// sourceProbe is one strategy for locating the Ollama models directory.
// Probes run in order; the first that reports found wins. A probe returns an
// error only for fatal conditions (an explicit path that does not exist);
// ambiguous detection falls through to the next probe.
type sourceProbe struct {
	// name identifies the probe in diagnostic output.
	name string

	// find reports the directory, whether it applies, and any fatal error.
	find func(cfg Config) (path string, found bool, err error)
}

// resolveSource determines the Ollama models directory by evaluating the
// explicit override, the OLLAMA_MODELS environment variable, then the
// platform probe chain. The final platform probe always matches.
func resolveSource(cfg Config, logger Logger) (string, error) {
	probes := append([]sourceProbe{
		{name: "explicit override", find: explicitProbe},
		{name: "environment", find: envProbe},
	}, platformSourceProbes()...)

	for _, p := range probes {
		path, found, err := p.find(cfg)
		if err != nil {
			return "", err
		}
		if found {
			logger.Debug("resolved models directory", "probe", p.name, "path", path)
			return path, nil
		}
	}

	return "", ErrSourceNotFound
}

// explicitProbe applies the Config.SourceDir override. The directory must
// exist.
func explicitProbe(cfg Config) (string, bool, error) {
	if cfg.SourceDir == "" {
		return "", false, nil
	}
	if !dirExists(cfg.SourceDir) {
		return "", false, fmt.Errorf("%w: %s", ErrSourceNotFound, cfg.SourceDir)
	}
	return cfg.SourceDir, true, nil
}

// envProbe applies the OLLAMA_MODELS environment variable. When set, the
// directory must exist.
func envProbe(Config) (string, bool, error) {
	dir := os.Getenv(modelsEnvVar)
	if dir == "" {
		return "", false, nil
	}
	if !dirExists(dir) {
		return "", false, fmt.Errorf("%w: %s=%s", ErrSourceNotFound, modelsEnvVar, dir)
	}
	return dir, true, nil
}

// homeModelsDir returns ~/.ollama/models for the current user.
func homeModelsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHome, err)
	}
	return filepath.Join(home, ".ollama", "models"), nil
}

// homeProbe matches ~/.ollama/models when it already exists.
func homeProbe(Config) (string, bool, error) {
	dir, err := homeModelsDir()
	if err != nil {
		return "", false, err
	}
	if !dirExists(dir) {
		return "", false, nil
	}
	return dir, true, nil
}

// homeFallbackProbe matches ~/.ollama/models unconditionally. It terminates
// every platform probe chain.
func homeFallbackProbe(Config) (string, bool, error) {
	dir, err := homeModelsDir()
	if err != nil {
		return "", false, err
	}
	return dir, true, nil
}

// resolveStore validates the manifests/ and blobs/ directories beneath the
// source root. Both must exist and be readable.
func resolveStore(source string) (manifestRoot, blobRoot string, err error) {
	manifestRoot = filepath.Join(source, "manifests")
	blobRoot = filepath.Join(source, "blobs")

	for _, dir := range []string{manifestRoot, blobRoot} {
		fi, err := os.Stat(dir)
		if err != nil || !fi.IsDir() {
			return "", "", fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
		}
		f, err := os.Open(dir)
		if err != nil {
			return "", "", fmt.Errorf("%w: %s", ErrSourceUnreadable, dir)
		}
		f.Close()
	}

	return manifestRoot, blobRoot, nil
}

// resolveDest determines the destination root: the explicit override, a
// bounded search for an existing LM Studio directory, then the default
// ~/.lmstudio/models.
func resolveDest(cfg Config, logger Logger) (string, error) {
	if cfg.DestDir != "" {
		return cfg.DestDir, nil
	}

	roots, err := destSearchRoots()
	if err != nil {
		return "", err
	}
	if dir := searchLMStudioDir(roots); dir != "" {
		logger.Debug("found LM Studio directory", "path", dir)
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHome, err)
	}
	return filepath.Join(home, ".lmstudio", "models"), nil
}

// searchLMStudioDir walks the given roots breadth-first looking for an
// .lmstudio directory with a models child. Depth is bounded by
// maxSearchDepth, unreadable directories are skipped, and the first match
// wins. Directory symlinks are not followed.
func searchLMStudioDir(roots []string) string {
	type item struct {
		path  string
		depth int
	}

	queue := make([]item, 0, len(roots))
	for _, r := range roots {
		queue = append(queue, item{path: r})
	}

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		if filepath.Base(it.path) == ".lmstudio" {
			models := filepath.Join(it.path, "models")
			if dirExists(models) {
				return models
			}
		}

		if it.depth >= maxSearchDepth {
			continue
		}
		entries, err := os.ReadDir(it.path)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				queue = append(queue, item{path: filepath.Join(it.path, e.Name()), depth: it.depth + 1})
			}
		}
	}

	return ""
}

// dirExists reports whether path exists and is a directory.
func dirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// dirReadable reports whether path is a directory the caller can open.
func dirReadable(path string) bool {
	if !dirExists(path) {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
