package ollamalink

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// MediaKind classifies a manifest layer's media type into a closed set,
// decided once at parse time.
type MediaKind int

const (
	// KindUnknown marks media types that play no role in linking.
	KindUnknown MediaKind = iota

	// KindModel marks the primary weight file reference. Only this kind
	// drives link creation.
	KindModel

	// KindTemplate marks the prompt template reference.
	KindTemplate

	// KindParams marks the runtime parameter reference.
	KindParams
)

// kindOf classifies a media type by case-sensitive suffix match, e.g.
// "application/vnd.ollama.image.model" is KindModel.
func kindOf(mediaType string) MediaKind {
	switch {
	case strings.HasSuffix(mediaType, "model"):
		return KindModel
	case strings.HasSuffix(mediaType, "template"):
		return KindTemplate
	case strings.HasSuffix(mediaType, "params"):
		return KindParams
	default:
		return KindUnknown
	}
}

// String returns the lowercase kind label.
func (k MediaKind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindTemplate:
		return "template"
	case KindParams:
		return "params"
	default:
		return "unknown"
	}
}

// Layer is one content entry inside a manifest, referencing a blob and its
// role.
type Layer struct {
	// MediaType is the raw media type string from the manifest.
	MediaType string `json:"mediaType"`

	// Digest addresses the layer's blob, format "sha256:<hex>".
	Digest string `json:"digest"`

	// Size is the blob size in bytes, as recorded by the manifest.
	Size int64 `json:"size"`

	// Kind is the classified media type.
	Kind MediaKind `json:"-"`
}

// manifestFile mirrors the JSON schema the model manager writes: a config
// descriptor plus an ordered layer list. Layers stay raw so a malformed
// entry can be skipped without discarding its siblings.
type manifestFile struct {
	Config struct {
		Digest string `json:"digest"`
	} `json:"config"`
	Layers []json.RawMessage `json:"layers"`
}

// parseManifest reads and decodes one manifest, returning the optional
// config digest and the classified layers in manifest order. A layer that
// fails to decode is warned about and skipped; the remaining layers still
// parse. File-level errors (missing, unreadable, malformed JSON) are
// returned for the caller to classify.
func (s *store) parseManifest(path string) (configDigest string, layers []Layer, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	var mf manifestFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return "", nil, fmt.Errorf("malformed manifest: %w", err)
	}

	layers = make([]Layer, 0, len(mf.Layers))
	for i, raw := range mf.Layers {
		var layer Layer
		if err := json.Unmarshal(raw, &layer); err != nil {
			s.logger.Warn("skipping malformed layer", "manifest", path, "index", i, "error", err)
			continue
		}
		layer.Kind = kindOf(layer.MediaType)
		layers = append(layers, layer)
	}

	return mf.Config.Digest, layers, nil
}

// primaryLayers picks the last layer of each recognized kind, in manifest
// order. Duplicates of a kind overwrite sequentially, so the final one wins.
func primaryLayers(layers []Layer) map[MediaKind]Layer {
	picked := make(map[MediaKind]Layer)
	for _, l := range layers {
		if l.Kind != KindUnknown {
			picked[l.Kind] = l
		}
	}
	return picked
}
