// Package ollamalink exposes locally downloaded Ollama models to LM Studio
// by linking each model's content-addressed weight blob into a directory
// layout LM Studio can read.
//
// The package serves two primary use cases:
//
//  1. Programmatic API via the Manager interface - Applications can use
//     NewManager to create a Manager that lists the models in the Ollama
//     store and performs the one-shot link run.
//
//  2. Embeddable CLI via NewCommand - Parent CLI tools can attach the
//     complete command tree to their Cobra root command, providing commands
//     like "mytool link", "mytool list", etc.
//
// # How linking works
//
// Ollama keeps one manifest per downloaded model version under
// manifests/{registry}/{namespace}/{model}/{tag} and stores the referenced
// content flat under blobs/, named sha256-<hex>. A run reads every manifest,
// resolves the layer whose media type classifies as a model weight file, and
// creates a symbolic link (or a byte copy where links are unavailable) at
//
//	{dest}/lmstudio/{namespace}/{model}/{tag}/{model}[-type][-quant][.format]
//
// The destination lmstudio tree is owned exclusively by this package and is
// rebuilt from scratch on every run; re-running is how newly downloaded
// models are picked up. The Ollama store itself is never modified.
//
// # Directory discovery
//
// The source store is located by an ordered list of probes: an explicit
// override, the OLLAMA_MODELS environment variable, the system-wide install
// used by the Ollama service, and finally ~/.ollama/models. The destination
// defaults to the LM Studio home directory, discovered by a bounded
// filesystem search with ~/.lmstudio/models as the fallback.
//
// # Concurrency
//
// A run is single-threaded and processes manifests strictly in enumeration
// order. Cross-process exclusion over the destination tree is provided by an
// advisory lock file, so two concurrent runs against the same destination
// cannot interleave.
package ollamalink
