package app

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/notesnav/internal/content"
	"github.com/five82/notesnav/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := time.Minute

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, time.Minute},
		{"negative failures", -1, time.Minute},
		{"one failure", 1, 2 * time.Minute},
		{"two failures", 2, 4 * time.Minute},
		{"three failures", 3, 8 * time.Minute},
		{"four failures capped", 4, 10 * time.Minute}, // Would be 16m, capped to 10m
		{"many failures capped", 40, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

const minimalManifest = `title: Mini Notes
default_tab: one
tabs:
  - id: one
    name: One
`

const minimalIndex = `<!DOCTYPE html><html><body>
<div id="content-container"></div>
</body></html>`

func TestReload_UpdatesStore(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml":  {Data: []byte(minimalManifest)},
		"index.html": {Data: []byte(minimalIndex)},
	}
	loader := content.NewLoader(content.NewFSSource(fsys, "test"), zerolog.Nop())
	store := &state.Store{}

	reload(context.Background(), store, loader, zerolog.Nop())
	snap := store.Snapshot()
	if snap.Generation != 1 || !snap.HasSite() {
		t.Fatalf("after reload generation=%d hasSite=%v, want 1/true (err %v)", snap.Generation, snap.HasSite(), snap.LastError)
	}

	delete(fsys, "index.html")
	reload(context.Background(), store, loader, zerolog.Nop())
	snap = store.Snapshot()
	if snap.LastError == nil {
		t.Fatal("expected LastError after failed reload")
	}
	if snap.Generation != 1 || !snap.HasSite() {
		t.Fatalf("failed reload replaced the site: generation=%d", snap.Generation)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestReload_SkipsWhenCancelled(t *testing.T) {
	loader := content.NewLoader(content.NewFSSource(fstest.MapFS{}, "empty"), zerolog.Nop())
	store := &state.Store{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reload(ctx, store, loader, zerolog.Nop())
	if snap := store.Snapshot(); snap.LastError != nil || snap.Generation != 0 {
		t.Fatalf("cancelled reload touched the store: %+v", snap)
	}
}
