package ui

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Coder-Harshit/bloglabs/pkg/content"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recordingSender) snapshot() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

func writeContent(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func contentRoot(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "content")
	writeContent(t, filepath.Join(root, "blogs", "hello-world.md"), "---\ntitle: Hello World\ndate: 2024-05-01\n---\nHi.\n")
	writeContent(t, filepath.Join(root, "projects", "one.md"), "---\nname: One\ndescription: first\ngithubUrl: https://github.com/example/one\n---\n")
	return root
}

func TestContentWorker_NewWithoutRoot(t *testing.T) {
	w, err := NewContentWorker(WorkerConfig{})
	if err != nil {
		t.Fatalf("NewContentWorker failed: %v", err)
	}
	defer w.Stop()

	if w.State() != WorkerIdle {
		t.Errorf("Expected idle state, got %v", w.State())
	}
	if w.Refresh() != nil {
		t.Error("Expected nil bundle without a root")
	}
}

func TestContentWorker_RefreshBuildsAndDedups(t *testing.T) {
	root := contentRoot(t)
	sender := &recordingSender{}
	bundlePath := filepath.Join(t.TempDir(), "bundle.json")

	w, err := NewContentWorker(WorkerConfig{
		Root:       root,
		BundlePath: bundlePath,
		Builder:    content.NewBuilder(content.Options{Root: root}),
		Program:    sender,
	})
	if err != nil {
		t.Fatalf("NewContentWorker failed: %v", err)
	}
	defer w.Stop()

	b := w.Refresh()
	if b == nil {
		t.Fatalf("first refresh returned nil (err: %v)", w.LastError())
	}
	if len(b.Posts) != 1 || b.Posts[0].Slug != "hello-world" {
		t.Errorf("posts = %+v", b.Posts)
	}
	if w.LastHash() == "" || w.LastHash() != b.Hash {
		t.Errorf("LastHash %q, bundle hash %q", w.LastHash(), b.Hash)
	}
	if msgs := sender.snapshot(); len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	} else if _, ok := msgs[0].(BundleReadyMsg); !ok {
		t.Errorf("message = %T", msgs[0])
	}

	written, err := content.ReadBundle(bundlePath)
	if err != nil {
		t.Fatalf("bundle not written: %v", err)
	}
	if len(written.Projects) != 1 {
		t.Errorf("written projects = %d", len(written.Projects))
	}

	if again := w.Refresh(); again != nil {
		t.Error("unchanged content rebuilt")
	}
	if len(sender.snapshot()) != 1 {
		t.Error("dedup still notified the UI")
	}
	if w.Bundle() != b {
		t.Error("Bundle() changed on dedup")
	}
}

func TestContentWorker_MissingRootReportsError(t *testing.T) {
	sender := &recordingSender{}
	w, err := NewContentWorker(WorkerConfig{
		Root:    filepath.Join(t.TempDir(), "missing"),
		Program: sender,
	})
	if err != nil {
		t.Fatalf("NewContentWorker failed: %v", err)
	}
	defer w.Stop()

	if w.Refresh() != nil {
		t.Error("expected nil bundle")
	}
	werr := w.LastError()
	if werr == nil {
		t.Fatal("expected an error")
	}
	if werr.Phase != "hash" || werr.Retries != 1 {
		t.Errorf("error = %+v", werr)
	}
	var target *WorkerError
	msgs := sender.snapshot()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages", len(msgs))
	}
	em, ok := msgs[0].(BundleErrorMsg)
	if !ok || !em.Recoverable || !errors.As(em.Err, &target) {
		t.Errorf("message = %+v", msgs[0])
	}

	w.Refresh()
	if w.LastError().Retries != 2 {
		t.Errorf("retries = %d, want 2", w.LastError().Retries)
	}
}

func TestContentWorker_SafeComputeRecoversPanic(t *testing.T) {
	w, _ := NewContentWorker(WorkerConfig{})
	defer w.Stop()

	err := w.safeCompute("build", func() error { panic("boom") })
	if err == nil || err.Phase != "build" {
		t.Fatalf("safeCompute = %+v", err)
	}
	if w.safeCompute("build", func() error { return nil }) != nil {
		t.Error("nil error reported as failure")
	}
}

func TestContentWorker_StopAfterFailedStart(t *testing.T) {
	w, err := NewContentWorker(WorkerConfig{Root: contentRoot(t), Watch: true})
	if err != nil {
		t.Fatalf("NewContentWorker failed: %v", err)
	}
	// A closed fsnotify watcher refuses new paths, so Start fails
	w.watcher.Stop()
	if err := w.Start(); err == nil {
		t.Fatal("Expected Start to fail on a closed watcher")
	}

	start := time.Now()
	w.Stop()
	if d := time.Since(start); d > time.Second {
		t.Errorf("Stop blocked for %v after a failed Start", d)
	}
}

func TestContentWorker_StopIsIdempotent(t *testing.T) {
	w, err := NewContentWorker(WorkerConfig{Root: contentRoot(t), Watch: true, DebounceDelay: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewContentWorker failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	w.Stop()
	w.Stop()
	if w.State() != WorkerStopped {
		t.Errorf("state = %v", w.State())
	}
	w.TriggerRefresh()
	if w.State() != WorkerStopped {
		t.Error("TriggerRefresh revived a stopped worker")
	}
}

func TestContentWorker_WatchRebuildsOnChange(t *testing.T) {
	root := contentRoot(t)
	sender := &recordingSender{}
	w, err := NewContentWorker(WorkerConfig{
		Root:          root,
		Program:       sender,
		Watch:         true,
		DebounceDelay: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewContentWorker failed: %v", err)
	}
	defer w.Stop()
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	writeContent(t, filepath.Join(root, "blogs", "second.md"), "---\ntitle: Second\ndate: 2024-06-01\n---\nMore.\n")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, msg := range sender.snapshot() {
			if ready, ok := msg.(BundleReadyMsg); ok && len(ready.Bundle.Posts) == 2 {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("no rebuilt bundle with the new post")
}
