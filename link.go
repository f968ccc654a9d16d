package ollamalink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// materializer turns resolved blob paths into destination filesystem
// entries: a symbolic link normally, a byte copy where links are
// unavailable.
type materializer struct {
	// skipExisting preserves pre-existing destination entries.
	skipExisting bool
}

// fileName constructs the destination file name for one model:
// {model}[-{type}][-{quant}][.{format}]. Missing config fields simply drop
// their segment, so a model without a config blob links as its bare name.
func fileName(name ModelName, cfg ModelConfig) string {
	n := name.Model
	if cfg.ModelType != "" {
		n += "-" + cfg.ModelType
	}
	if cfg.FileType != "" {
		n += "-" + cfg.FileType
	}
	if cfg.ModelFormat != "" {
		n += "." + cfg.ModelFormat
	}
	return n
}

// probeSymlinks creates and removes a throwaway symbolic link in scratchDir,
// verifying the filesystem supports links before any destination mutation.
func probeSymlinks(scratchDir string) error {
	target := filepath.Join(scratchDir, ".ollamalink-probe-target")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		return fmt.Errorf("creating probe target: %w", err)
	}
	defer os.Remove(target)

	link := filepath.Join(scratchDir, ".ollamalink-probe-link")
	if err := os.Symlink(target, link); err != nil {
		return err
	}
	return os.Remove(link)
}

// materialize ensures the destination's parent directories exist and
// establishes a link from destPath to blobPath, overwriting any existing
// entry unless skip-existing applies. On platforms without symlink support
// the blob content is copied instead. The returned error is set only for
// OutcomeFailed.
func (m *materializer) materialize(blobPath, destPath string) (Outcome, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return OutcomeFailed, fmt.Errorf("creating destination directory: %w", err)
	}

	if m.skipExisting {
		if _, err := os.Lstat(destPath); err == nil {
			return OutcomeSkipped, nil
		}
	}

	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return OutcomeFailed, fmt.Errorf("removing existing entry: %w", err)
	}

	if err := os.Symlink(blobPath, destPath); err != nil {
		if !symlinkFallback {
			return OutcomeFailed, fmt.Errorf("creating link: %w", err)
		}
		if err := copyFile(blobPath, destPath); err != nil {
			return OutcomeFailed, fmt.Errorf("copying blob: %w", err)
		}
		return OutcomeCopied, nil
	}

	return OutcomeLinked, nil
}

// copyFile copies src to dst in full.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// pruneEmptyDirs removes any directories nested under root that are left
// empty, for example when a manifest yielded no artifact after its directory
// was created. The root itself is preserved.
func pruneEmptyDirs(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := pruneTree(filepath.Join(root, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// pruneTree removes dir if it is empty once its subdirectories are pruned.
func pruneTree(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := pruneTree(filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
	}

	entries, err = os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return os.Remove(dir)
	}
	return nil
}
