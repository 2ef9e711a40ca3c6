package content

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatch_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "includes")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	fired := make(chan struct{}, 8)
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(ready)
		done <- Watch(ctx, dir, func() {
			calls.Add(1)
			fired <- struct{}{}
		}, WithDebounce(150*time.Millisecond))
	}()
	<-ready
	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(sub, "a.html"), []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatalf("watch callback not called")
	}
	time.Sleep(400 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("callback calls = %d, want 1 for one burst", n)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Watch did not stop after cancel")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), func() {})
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestIgnored(t *testing.T) {
	for name, want := range map[string]bool{
		"/x/.a.html.swp": true,
		"/x/a.html~":     true,
		"/x/.git":        true,
		"/x/a.html":      false,
		"/x/prelims.md":  false,
	} {
		if got := ignored(name); got != want {
			t.Fatalf("ignored(%q) = %v, want %v", name, got, want)
		}
	}
}
