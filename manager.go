package ollamalink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// lmstudioDirName is the subdirectory of the destination root that this
// tool exclusively owns. Everything beneath it is rebuilt on each run.
const lmstudioDirName = "lmstudio"

// lockFileName is the advisory lock file created in the destination root.
const lockFileName = ".ollamalink.lock"

// Manager provides programmatic access to the link pipeline.
// For CLI integration, use NewCommand instead.
type Manager interface {
	// Models enumerates the source store and returns one entry per
	// parseable manifest. The store is only read; nothing is linked.
	Models(ctx context.Context) ([]ModelInfo, error)

	// Run performs a full synchronization: it rebuilds the destination
	// lmstudio tree (unless Config.SkipExisting is set) and links every
	// model's primary weight blob into it. Per-model failures are recorded
	// in the Summary and do not abort the run; only fatal preconditions
	// return an error.
	Run(ctx context.Context) (*Summary, error)

	// SourceDir returns the resolved Ollama models directory.
	SourceDir() string

	// DestDir returns the lmstudio link root that LM Studio should be
	// pointed at.
	DestDir() string
}

// Ensure manager implements Manager.
var _ Manager = (*manager)(nil)

// manager is the concrete implementation of the Manager interface.
type manager struct {
	// cfg holds the run configuration.
	cfg Config

	// logger receives status and diagnostic messages.
	logger Logger

	// lockTimeout bounds run lock acquisition.
	lockTimeout time.Duration

	// source is the resolved Ollama models directory.
	source string

	// destRoot is the resolved destination root; the lmstudio tree lives
	// beneath it.
	destRoot string

	// store reads manifests and blobs.
	store *store
}

// NewManager creates a Manager with the given configuration, resolving the
// source and destination directories up front. Resolution failures are
// fatal: ErrSourceNotFound, ErrSourceUnreadable or ErrNoHome.
func NewManager(cfg Config, opts ...ManagerOption) (Manager, error) {
	mcfg := newManagerConfig()
	for _, opt := range opts {
		opt(mcfg)
	}

	logger := mcfg.logger
	if logger == nil {
		logger = NewConsoleLogger(os.Stderr, cfg.Verbose, cfg.Quiet)
	}

	source, err := resolveSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	manifestRoot, blobRoot, err := resolveStore(source)
	if err != nil {
		return nil, err
	}

	destRoot, err := resolveDest(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &manager{
		cfg:         cfg,
		logger:      logger,
		lockTimeout: mcfg.lockTimeout,
		source:      source,
		destRoot:    destRoot,
		store:       newStore(manifestRoot, blobRoot, logger),
	}, nil
}

// SourceDir returns the resolved Ollama models directory.
func (m *manager) SourceDir() string {
	return m.source
}

// DestDir returns the lmstudio link root.
func (m *manager) DestDir() string {
	return filepath.Join(m.destRoot, lmstudioDirName)
}

// Models enumerates the source store without touching the destination.
func (m *manager) Models(ctx context.Context) ([]ModelInfo, error) {
	paths, err := m.store.listManifests()
	if err != nil {
		return nil, err
	}

	infos := make([]ModelInfo, 0, len(paths))
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		name, err := m.store.modelName(p)
		if err != nil {
			m.logger.Warn("skipping manifest with unexpected path", "path", p, "error", err)
			continue
		}

		configDigest, layers, err := m.store.parseManifest(p)
		if err != nil {
			m.logger.Warn("skipping unparsable manifest", "model", name.String(), "error", err)
			continue
		}

		mcfg, err := m.store.modelConfig(configDigest)
		if err != nil {
			m.logger.Warn("skipping manifest with bad config blob", "model", name.String(), "error", err)
			continue
		}

		info := ModelInfo{
			Name:         name,
			Type:         mcfg.ModelType,
			Quantization: mcfg.FileType,
			Format:       mcfg.ModelFormat,
		}
		if layer, ok := primaryLayers(layers)[KindModel]; ok {
			info.Size = layer.Size
			info.BlobPath = m.store.blobPath(layer.Digest)
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// Run executes the pipeline: lock the destination, verify link capability,
// rebuild the lmstudio tree, process every manifest in enumeration order,
// and prune directories left empty.
func (m *manager) Run(ctx context.Context) (*Summary, error) {
	if err := os.MkdirAll(m.destRoot, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDestUnavailable, err)
	}

	// One run owns the destination at a time.
	lock, err := newRunLock(filepath.Join(m.destRoot, lockFileName), m.lockTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocked, err)
	}
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocked, err)
	}
	defer lock.Unlock()

	// Verify link capability before any destination mutation. Platforms
	// with the copy fallback proceed with a warning instead.
	if err := probeSymlinks(m.destRoot); err != nil {
		if !symlinkFallback {
			return nil, fmt.Errorf("%w: %v", ErrSymlinkUnsupported, err)
		}
		m.logger.Warn("symbolic links unavailable, models will be copied instead", "error", err)
	}

	linkRoot := m.DestDir()
	if !m.cfg.SkipExisting {
		// Full resync: the lmstudio tree is rebuilt from scratch, so
		// re-running picks up newly downloaded models and drops removed
		// ones. Anything placed there by hand is lost.
		if err := os.RemoveAll(linkRoot); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDestUnavailable, err)
		}
	}
	if err := os.MkdirAll(linkRoot, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDestUnavailable, err)
	}

	paths, err := m.store.listManifests()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		m.logger.Warn("no manifests found, nothing to link", "dir", m.store.manifestRoot)
	}

	mat := &materializer{skipExisting: m.cfg.SkipExisting}
	summary := &Summary{DestDir: linkRoot}
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		summary.Results = append(summary.Results, m.processManifest(p, mat, linkRoot))
	}

	if err := pruneEmptyDirs(linkRoot); err != nil {
		m.logger.Warn("failed to prune empty directories", "error", err)
	}

	logSuccess(m.logger, "run complete",
		"linked", summary.Count(OutcomeLinked),
		"copied", summary.Count(OutcomeCopied),
		"skipped", summary.Count(OutcomeSkipped),
		"failed", summary.Count(OutcomeFailed))
	m.logger.Info("point LM Studio's models directory here", "dir", linkRoot)

	return summary, nil
}

// processManifest takes one manifest through parse, blob resolution and
// materialization. Every failure is recoverable: it is logged, recorded in
// the Result, and the run moves on to the next manifest.
func (m *manager) processManifest(path string, mat *materializer, linkRoot string) Result {
	name, err := m.store.modelName(path)
	if err != nil {
		m.logger.Warn("skipping manifest with unexpected path", "path", path, "error", err)
		return Result{Outcome: OutcomeFailed, Reason: err.Error()}
	}
	res := Result{Name: name}

	configDigest, layers, err := m.store.parseManifest(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			m.logger.Warn("manifest disappeared", "model", name.String(), "path", path)
		case os.IsPermission(err):
			m.logger.Warn("manifest not readable", "model", name.String(), "path", path)
		default:
			m.logger.Warn("manifest malformed", "model", name.String(), "error", err)
		}
		res.Outcome = OutcomeFailed
		res.Reason = err.Error()
		return res
	}

	if configDigest == "" {
		m.logger.Debug("manifest has no config digest", "model", name.String())
	}

	layer, ok := primaryLayers(layers)[KindModel]
	if !ok {
		m.logger.Warn("no model layer, nothing to link", "model", name.String())
		res.Outcome = OutcomeNoArtifact
		res.Reason = "no model layer"
		return res
	}

	blobPath := m.store.blobPath(layer.Digest)
	fi, err := os.Stat(blobPath)
	if err != nil || !fi.Mode().IsRegular() {
		m.logger.Warn("model blob missing", "model", name.String(), "blob", blobPath)
		res.Outcome = OutcomeNoArtifact
		res.Reason = "model blob missing"
		return res
	}

	mcfg, err := m.store.modelConfig(configDigest)
	if err != nil {
		m.logger.Warn("bad config blob", "model", name.String(), "error", err)
		res.Outcome = OutcomeFailed
		res.Reason = err.Error()
		return res
	}

	res.Target = filepath.Join(linkRoot, name.relDir(), fileName(name, mcfg))
	outcome, err := mat.materialize(blobPath, res.Target)
	res.Outcome = outcome

	switch outcome {
	case OutcomeLinked:
		logSuccess(m.logger, "linked", "model", name.String(), "target", res.Target)
	case OutcomeCopied:
		m.logger.Warn("copied model instead of linking, this uses extra disk space",
			"model", name.String(), "size", HumanBytes(fi.Size()))
	case OutcomeSkipped:
		res.Reason = "destination exists"
		m.logger.Info("destination exists, skipping", "model", name.String(), "target", res.Target)
	case OutcomeFailed:
		res.Reason = err.Error()
		m.logger.Error("failed to materialize", "model", name.String(), "error", err)
	}

	return res
}
