package ollamalink

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree with the given args and returns stdout.
func execute(t *testing.T, cfg Config, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(cfg, WithLogger(testLogger()))
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandStructure(t *testing.T) {
	cmd := NewCommand(Config{})

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "link")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "path")
	assert.Contains(t, names, "version")
}

func TestBareInvocationShowsHelp(t *testing.T) {
	// Invoked without a subcommand, nothing destructive happens: usage is
	// printed and the command succeeds.
	out, err := execute(t, Config{})
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "link")
}

func TestLinkCommand(t *testing.T) {
	src := newSourceStore(t)
	src.manifest(t, "registry.ollama.ai/library/llama3/latest", happyManifest)
	src.blob(t, "sha256:aaaa", "weights")
	src.blob(t, "sha256:bbbb", `{"file_type":"Q4_0","model_format":"gguf","model_type":"llama"}`)
	dest := t.TempDir()

	_, err := execute(t, Config{}, "link", "--source", src.root, "--dest", dest)
	require.NoError(t, err)

	link := filepath.Join(dest, "lmstudio", "library", "llama3", "latest", "llama3-llama-Q4_0.gguf")
	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, src.blobPath("sha256:aaaa"), target)
}

func TestLinkRefusesExistingTreeWithoutForce(t *testing.T) {
	src := newSourceStore(t)
	dest := t.TempDir()
	existing := filepath.Join(dest, "lmstudio", "something")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	_, err := execute(t, Config{}, "link", "--source", src.root, "--dest", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	// Nothing was removed.
	assert.FileExists(t, existing)
}

func TestLinkForceRebuildsExistingTree(t *testing.T) {
	src := newSourceStore(t)
	dest := t.TempDir()
	existing := filepath.Join(dest, "lmstudio", "something")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	_, err := execute(t, Config{}, "link", "--source", src.root, "--dest", dest, "--force")
	require.NoError(t, err)
	assert.NoFileExists(t, existing)
}

func TestListCommandJSON(t *testing.T) {
	src := newSourceStore(t)
	src.manifest(t, "registry.ollama.ai/library/llama3/latest", happyManifest)
	src.blob(t, "sha256:aaaa", "weights")
	src.blob(t, "sha256:bbbb", `{"file_type":"Q4_0","model_format":"gguf","model_type":"llama"}`)

	out, err := execute(t, Config{SourceDir: src.root, DestDir: t.TempDir()}, "list", "--json")
	require.NoError(t, err)

	var models []ModelInfo
	require.NoError(t, json.Unmarshal([]byte(out), &models))
	require.Len(t, models, 1)
	assert.Equal(t, "llama3", models[0].Name.Model)
	assert.Equal(t, "Q4_0", models[0].Quantization)
}

func TestListCommandTable(t *testing.T) {
	src := newSourceStore(t)
	src.manifest(t, "registry.ollama.ai/library/llama3/latest", happyManifest)
	src.blob(t, "sha256:aaaa", "weights")
	src.blob(t, "sha256:bbbb", `{"file_type":"Q4_0","model_format":"gguf","model_type":"llama"}`)

	out, err := execute(t, Config{SourceDir: src.root, DestDir: t.TempDir()}, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "llama3:latest")
	assert.Contains(t, out, "Q4_0")
}

func TestPathCommand(t *testing.T) {
	src := newSourceStore(t)
	dest := t.TempDir()

	out, err := execute(t, Config{SourceDir: src.root, DestDir: dest}, "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "lmstudio"), strings.TrimSpace(out))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, Config{}, "version")
	require.NoError(t, err)
	assert.Equal(t, Version, strings.TrimSpace(out))
}
