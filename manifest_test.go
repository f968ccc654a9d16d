package ollamalink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		mediaType string
		want      MediaKind
	}{
		{"application/vnd.ollama.image.model", KindModel},
		{"application/vnd.ollama.image.template", KindTemplate},
		{"application/vnd.ollama.image.params", KindParams},
		{"application/vnd.ollama.image.license", KindUnknown},
		{"application/vnd.ollama.image.system", KindUnknown},
		// Suffix match is case-sensitive.
		{"application/vnd.ollama.image.MODEL", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, kindOf(tt.mediaType))
		})
	}
}

func TestMediaKindString(t *testing.T) {
	assert.Equal(t, "model", KindModel.String())
	assert.Equal(t, "template", KindTemplate.String())
	assert.Equal(t, "params", KindParams.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

// writeTestManifest writes content to a file under a fresh directory and
// returns a store rooted there along with the manifest path.
func writeTestManifest(t *testing.T, content string) (*store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "latest")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return newStore(dir, t.TempDir(), testLogger()), path
}

func TestParseManifest(t *testing.T) {
	s, path := writeTestManifest(t, `{
		"schemaVersion": 2,
		"config": {"digest": "sha256:bbbb"},
		"layers": [
			{"mediaType": "application/vnd.ollama.image.model", "digest": "sha256:aaaa", "size": 42},
			{"mediaType": "application/vnd.ollama.image.template", "digest": "sha256:cccc", "size": 10}
		]
	}`)

	configDigest, layers, err := s.parseManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "sha256:bbbb", configDigest)
	require.Len(t, layers, 2)
	assert.Equal(t, "sha256:aaaa", layers[0].Digest)
	assert.Equal(t, int64(42), layers[0].Size)
	assert.Equal(t, KindModel, layers[0].Kind)
	assert.Equal(t, KindTemplate, layers[1].Kind)
}

func TestParseManifestNoConfigDigest(t *testing.T) {
	s, path := writeTestManifest(t, `{
		"layers": [
			{"mediaType": "application/vnd.ollama.image.model", "digest": "sha256:aaaa"}
		]
	}`)

	configDigest, layers, err := s.parseManifest(path)
	require.NoError(t, err)

	assert.Empty(t, configDigest)
	require.Len(t, layers, 1)
}

func TestParseManifestMalformed(t *testing.T) {
	s, path := writeTestManifest(t, `{not json`)

	_, _, err := s.parseManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed manifest")
}

func TestParseManifestMissingFile(t *testing.T) {
	s := newStore(t.TempDir(), t.TempDir(), testLogger())

	_, _, err := s.parseManifest(filepath.Join(s.manifestRoot, "nope"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestParseManifestSkipsMalformedLayer(t *testing.T) {
	// The second layer is not an object; only that index is dropped.
	s, path := writeTestManifest(t, `{
		"config": {"digest": "sha256:bbbb"},
		"layers": [
			{"mediaType": "application/vnd.ollama.image.template", "digest": "sha256:t1"},
			"bogus",
			{"mediaType": "application/vnd.ollama.image.model", "digest": "sha256:aaaa"}
		]
	}`)

	configDigest, layers, err := s.parseManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "sha256:bbbb", configDigest)
	require.Len(t, layers, 2)
	assert.Equal(t, KindTemplate, layers[0].Kind)
	assert.Equal(t, KindModel, layers[1].Kind)
	assert.Equal(t, "sha256:aaaa", layers[1].Digest)
}

func TestPrimaryLayersLastWins(t *testing.T) {
	layers := []Layer{
		{MediaType: "application/vnd.ollama.image.model", Digest: "sha256:first", Kind: KindModel},
		{MediaType: "application/vnd.ollama.image.params", Digest: "sha256:p", Kind: KindParams},
		{MediaType: "application/vnd.ollama.image.model", Digest: "sha256:second", Kind: KindModel},
		{MediaType: "application/vnd.ollama.image.license", Digest: "sha256:l", Kind: KindUnknown},
	}

	picked := primaryLayers(layers)

	require.Contains(t, picked, KindModel)
	assert.Equal(t, "sha256:second", picked[KindModel].Digest)
	assert.Equal(t, "sha256:p", picked[KindParams].Digest)
	assert.NotContains(t, picked, KindUnknown)
	assert.NotContains(t, picked, KindTemplate)
}
