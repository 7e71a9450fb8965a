package ui

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Coder-Harshit/bloglabs/pkg/content"
	"github.com/Coder-Harshit/bloglabs/pkg/model"
	"github.com/Coder-Harshit/bloglabs/pkg/watcher"
)

// WorkerState represents the current state of the content worker.
type WorkerState int

const (
	// WorkerIdle means the worker is waiting for file changes.
	WorkerIdle WorkerState = iota
	// WorkerProcessing means the worker is rebuilding the bundle.
	WorkerProcessing
	// WorkerStopped means the worker has been stopped.
	WorkerStopped
)

// WorkerError wraps errors with phase and retry context.
type WorkerError struct {
	Phase   string // "hash", "build", "write"
	Cause   error
	Time    time.Time
	Retries int
}

func (e WorkerError) Error() string {
	return fmt.Sprintf("%s failed: %v (retries: %d)", e.Phase, e.Cause, e.Retries)
}

func (e WorkerError) Unwrap() error {
	return e.Cause
}

// BundleReadyMsg is sent to the UI when a rebuilt bundle is ready.
type BundleReadyMsg struct {
	Bundle *model.Bundle
}

// BundleErrorMsg is sent to the UI when a rebuild fails.
type BundleErrorMsg struct {
	Err         error
	Recoverable bool // True if we expect to recover on next file change
}

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// ContentWorker rebuilds the content bundle off the UI thread whenever the
// content tree changes.
type ContentWorker struct {
	root       string
	bundlePath string
	builder    *content.Builder

	mu         sync.RWMutex
	state      WorkerState
	dirty      bool
	started    bool
	bundle     *model.Bundle
	lastHash   string
	lastError  *WorkerError
	errorCount int

	watcher *watcher.Watcher
	program Sender

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// WorkerConfig configures the ContentWorker.
type WorkerConfig struct {
	Root          string
	BundlePath    string // optional; rebuilt bundles are written here
	Builder       *content.Builder
	DebounceDelay time.Duration
	Program       Sender
	Watch         bool
}

// NewContentWorker creates a worker. The watcher is only created when
// cfg.Watch is set.
func NewContentWorker(cfg WorkerConfig) (*ContentWorker, error) {
	ctx, cancel := context.WithCancel(context.Background())

	if cfg.DebounceDelay == 0 {
		cfg.DebounceDelay = 200 * time.Millisecond
	}
	if cfg.Builder == nil {
		cfg.Builder = content.NewBuilder(content.Options{Root: cfg.Root})
	}

	w := &ContentWorker{
		root:       cfg.Root,
		bundlePath: cfg.BundlePath,
		builder:    cfg.Builder,
		program:    cfg.Program,
		state:      WorkerIdle,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	if cfg.Watch && cfg.Root != "" {
		fw, err := watcher.NewWatcher(cfg.Root,
			watcher.WithDebounceDuration(cfg.DebounceDelay),
		)
		if err != nil {
			cancel()
			return nil, err
		}
		w.watcher = fw
	}

	return w, nil
}

// SetProgram attaches the program that receives bundle messages. It must be
// called before Start.
func (w *ContentWorker) SetProgram(p Sender) {
	w.mu.Lock()
	w.program = p
	w.mu.Unlock()
}

// Start begins watching for changes. Start is idempotent.
func (w *ContentWorker) Start() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.mu.Unlock()

	if w.watcher != nil {
		if err := w.watcher.Start(); err != nil {
			w.mu.Lock()
			w.started = false
			w.mu.Unlock()
			return err
		}
		go w.processLoop()
	} else {
		close(w.done)
	}
	return nil
}

// Stop halts the worker. Stop is idempotent.
func (w *ContentWorker) Stop() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	w.state = WorkerStopped
	wasStarted := w.started
	w.mu.Unlock()

	w.cancel()

	if w.watcher != nil {
		w.watcher.Stop()
	}

	if wasStarted {
		select {
		case <-w.done:
		case <-time.After(2 * time.Second):
		}
	}
}

// TriggerRefresh rebuilds in the background. A refresh requested while one
// is running is coalesced into a single follow-up run.
func (w *ContentWorker) TriggerRefresh() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	if w.state == WorkerProcessing {
		w.dirty = true
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	go w.process()
}

// Bundle returns the latest bundle (may be nil).
func (w *ContentWorker) Bundle() *model.Bundle {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.bundle
}

// State returns the current worker state.
func (w *ContentWorker) State() WorkerState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// LastError returns the most recent error (nil if the last run succeeded).
func (w *ContentWorker) LastError() *WorkerError {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastError
}

// LastHash returns the source hash of the last successful build.
func (w *ContentWorker) LastHash() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastHash
}

// Refresh rebuilds synchronously and returns the new bundle, or nil when
// the content is unchanged, the build failed, or a build is already running.
func (w *ContentWorker) Refresh() *model.Bundle {
	return w.process()
}

func (w *ContentWorker) processLoop() {
	defer close(w.done)

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.watcher.Changed():
			w.process()
		}
	}
}

func (w *ContentWorker) process() *model.Bundle {
	w.mu.Lock()
	if w.state != WorkerIdle {
		if w.state == WorkerProcessing {
			w.dirty = true
		}
		w.mu.Unlock()
		return nil
	}
	w.state = WorkerProcessing
	w.dirty = false
	w.mu.Unlock()

	bundle := w.rebuild()

	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return nil
	}
	if bundle != nil {
		w.bundle = bundle
	}
	wasDirty := w.dirty
	w.state = WorkerIdle
	program := w.program
	w.mu.Unlock()

	if program != nil && bundle != nil {
		program.Send(BundleReadyMsg{Bundle: bundle})
	}

	if wasDirty {
		go w.process()
	}
	return bundle
}

// safeCompute executes fn and recovers from any panics.
func (w *ContentWorker) safeCompute(phase string, fn func() error) *WorkerError {
	var result *WorkerError
	func() {
		defer func() {
			if r := recover(); r != nil {
				result = &WorkerError{
					Phase: phase,
					Cause: fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
					Time:  time.Now(),
				}
			}
		}()
		if err := fn(); err != nil {
			result = &WorkerError{
				Phase: phase,
				Cause: err,
				Time:  time.Now(),
			}
		}
	}()
	return result
}

func (w *ContentWorker) recordError(err *WorkerError) {
	w.mu.Lock()
	w.lastError = err
	if err != nil {
		w.errorCount++
		err.Retries = w.errorCount
	} else {
		w.errorCount = 0
	}
	w.mu.Unlock()
}

func (w *ContentWorker) fail(err *WorkerError) {
	log.Printf("content worker: %v", err)
	w.recordError(err)
	w.mu.RLock()
	program := w.program
	w.mu.RUnlock()
	if program != nil {
		program.Send(BundleErrorMsg{Err: err, Recoverable: true})
	}
}

// rebuild builds a new bundle from the content root. It returns nil when
// the source is unchanged or the build failed.
func (w *ContentWorker) rebuild() *model.Bundle {
	if w.root == "" {
		return nil
	}
	start := time.Now()

	var hash string
	if err := w.safeCompute("hash", func() error {
		var err error
		hash, err = content.SourceHash(w.root)
		return err
	}); err != nil {
		w.fail(err)
		return nil
	}

	w.mu.RLock()
	lastHash := w.lastHash
	w.mu.RUnlock()
	if hash == lastHash && lastHash != "" {
		log.Printf("content worker: unchanged (hash=%s), skipping rebuild", hashPrefix(hash))
		w.recordError(nil)
		return nil
	}

	var bundle *model.Bundle
	if err := w.safeCompute("build", func() error {
		var err error
		bundle, err = w.builder.Build(w.ctx)
		return err
	}); err != nil {
		w.fail(err)
		return nil
	}

	if w.bundlePath != "" {
		if err := w.safeCompute("write", func() error {
			return content.WriteBundle(w.bundlePath, bundle)
		}); err != nil {
			// the in-memory bundle is still good
			log.Printf("content worker: %v", err)
		}
	}

	w.recordError(nil)
	w.mu.Lock()
	w.lastHash = hash
	w.mu.Unlock()

	log.Printf("content worker: built %d posts, %d projects in %v (hash=%s)",
		len(bundle.Posts), len(bundle.Projects), time.Since(start), hashPrefix(hash))
	return bundle
}

// hashPrefix returns up to 16 characters of a hash for logging.
func hashPrefix(hash string) string {
	if len(hash) > 16 {
		return hash[:16]
	}
	return hash
}
