package ollamalink

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Config configures a Manager. It is built once at startup and passed
// explicitly; nothing reads flags or the environment after construction.
type Config struct {
	// SourceDir overrides discovery of the Ollama models directory.
	// If set, the directory must exist.
	SourceDir string

	// DestDir overrides discovery of the LM Studio models directory.
	// The lmstudio link tree is created beneath it.
	DestDir string

	// SkipExisting preserves destination entries created by earlier runs
	// instead of rebuilding the link tree from scratch.
	SkipExisting bool

	// Verbose enables diagnostic output from the default logger.
	Verbose bool

	// Quiet suppresses informational and success output from the default
	// logger. Warnings and errors are always emitted.
	Quiet bool
}

// ModelName identifies one model version in the source store. It is derived
// from a manifest's path relative to the manifest root, which Ollama lays
// out as {registry}/{namespace}/{model}/{tag}.
type ModelName struct {
	// Registry is the originating registry host, e.g. "registry.ollama.ai".
	Registry string

	// Namespace is the publisher path, e.g. "library". Nested namespaces
	// keep their interior slashes.
	Namespace string

	// Model is the model's display name, e.g. "llama3".
	Model string

	// Tag is the version tag, e.g. "latest".
	Tag string
}

// parseModelName parses a slash-normalized manifest path relative to the
// manifest root. Returns ErrInvalidName if fewer than four segments remain.
func parseModelName(rel string) (ModelName, error) {
	parts := strings.Split(rel, "/")
	if len(parts) < 4 {
		return ModelName{}, fmt.Errorf("%w: %q", ErrInvalidName, rel)
	}
	for _, p := range parts {
		if p == "" {
			return ModelName{}, fmt.Errorf("%w: %q", ErrInvalidName, rel)
		}
	}

	return ModelName{
		Registry:  parts[0],
		Namespace: strings.Join(parts[1:len(parts)-2], "/"),
		Model:     parts[len(parts)-2],
		Tag:       parts[len(parts)-1],
	}, nil
}

// String returns the short display form, omitting the default namespace:
// "llama3:latest" or "myuser/mymodel:v2".
func (n ModelName) String() string {
	if n.Namespace == "library" {
		return n.Model + ":" + n.Tag
	}
	return n.Namespace + "/" + n.Model + ":" + n.Tag
}

// relDir returns the model's directory below the lmstudio link root,
// using the host path separator.
func (n ModelName) relDir() string {
	return filepath.FromSlash(path.Join(n.Namespace, n.Model, n.Tag))
}

// ModelConfig holds the descriptive fields read from a model's config blob.
// Every field is optional; a missing field is the empty string.
type ModelConfig struct {
	// FileType is the quantization label, e.g. "Q4_0".
	FileType string `json:"file_type"`

	// ModelFormat is the weight file format, e.g. "gguf". Used as the
	// destination file extension.
	ModelFormat string `json:"model_format"`

	// ModelType is the base model family, e.g. "llama".
	ModelType string `json:"model_type"`
}

// ModelInfo describes one model discovered in the source store.
type ModelInfo struct {
	// Name identifies the model version.
	Name ModelName `json:"name"`

	// Type is the base model family from the config blob, if any.
	Type string `json:"type,omitempty"`

	// Quantization is the quantization label from the config blob, if any.
	Quantization string `json:"quantization,omitempty"`

	// Format is the weight file format from the config blob, if any.
	Format string `json:"format,omitempty"`

	// Size is the size in bytes of the primary weight blob, 0 if the
	// manifest carries no model layer.
	Size int64 `json:"size"`

	// BlobPath is the resolved path of the primary weight blob, empty if
	// the manifest carries no model layer.
	BlobPath string `json:"blob_path,omitempty"`
}

// Outcome is the discriminated result of processing one manifest.
type Outcome int

const (
	// OutcomeLinked means a symbolic link was created at the destination.
	OutcomeLinked Outcome = iota

	// OutcomeCopied means the blob was copied because links are
	// unavailable on this platform.
	OutcomeCopied

	// OutcomeSkipped means an existing destination entry was preserved
	// under skip-existing mode.
	OutcomeSkipped

	// OutcomeNoArtifact means the manifest yielded nothing to link: no
	// layer classified as a model, or its blob is missing on disk.
	OutcomeNoArtifact

	// OutcomeFailed means the manifest could not be processed.
	OutcomeFailed
)

// String returns the lowercase outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeLinked:
		return "linked"
	case OutcomeCopied:
		return "copied"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeNoArtifact:
		return "no-artifact"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the outcome of processing one manifest.
type Result struct {
	// Name identifies the model. Zero if the manifest path was unparsable.
	Name ModelName

	// Outcome is the discriminated processing result.
	Outcome Outcome

	// Target is the destination path, empty when no artifact was produced.
	Target string

	// Reason explains a Skipped, NoArtifact or Failed outcome.
	Reason string
}

// Summary aggregates the results of one run.
type Summary struct {
	// Results holds one entry per processed manifest, in enumeration order.
	Results []Result

	// DestDir is the lmstudio link root that LM Studio should be pointed at.
	DestDir string
}

// Count returns the number of results with the given outcome.
func (s *Summary) Count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}
