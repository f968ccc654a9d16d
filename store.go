package ollamalink

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// digestPrefix is the only digest scheme the source store emits.
const digestPrefix = "sha256:"

// store provides read-only access to the model manager's on-disk layout:
// one manifest file per model version under the manifest root, and
// content-addressed blobs named sha256-<hex> stored flat under the blob
// root. The store is never mutated.
type store struct {
	// manifestRoot is the manifests/ directory.
	manifestRoot string

	// blobRoot is the blobs/ directory.
	blobRoot string

	// logger receives per-entry warnings during enumeration and parsing.
	logger Logger
}

// newStore creates a store over validated manifest and blob roots.
func newStore(manifestRoot, blobRoot string, logger Logger) *store {
	return &store{
		manifestRoot: manifestRoot,
		blobRoot:     blobRoot,
		logger:       logger,
	}
}

// listManifests returns every regular file nested beneath the manifest root.
// The order is lexical, so repeated calls within a run see the same
// sequence. Unreadable subtrees are warned about and skipped.
func (s *store) listManifests() ([]string, error) {
	paths := []string{}
	err := filepath.WalkDir(s.manifestRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.manifestRoot {
				return err
			}
			s.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return paths, nil
}

// modelName derives the model identity from a manifest path. Separators are
// normalized before parsing since the relative path may mix them on some
// hosts.
func (s *store) modelName(manifestPath string) (ModelName, error) {
	rel, err := filepath.Rel(s.manifestRoot, manifestPath)
	if err != nil {
		return ModelName{}, fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return parseModelName(filepath.ToSlash(rel))
}

// blobPath maps a digest of the form "sha256:<hex>" to its location in the
// blob store: {blobRoot}/sha256-<hex>. The colon becomes a hyphen; nothing
// else is transformed. Existence is not checked here.
func (s *store) blobPath(digest string) string {
	return filepath.Join(s.blobRoot, "sha256-"+strings.TrimPrefix(digest, digestPrefix))
}

// modelConfig reads the config blob for digest and extracts its descriptive
// fields. An empty digest or an absent blob yields the zero ModelConfig; a
// blob that exists but cannot be read or decoded is an error, which callers
// treat as a per-manifest skip.
func (s *store) modelConfig(digest string) (ModelConfig, error) {
	var cfg ModelConfig
	if digest == "" {
		return cfg, nil
	}

	path := s.blobPath(digest)
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config blob %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config blob %s: %w", path, err)
	}
	return cfg, nil
}
