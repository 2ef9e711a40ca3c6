package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/notesnav/internal/content"
	"github.com/five82/notesnav/internal/dom"
	"github.com/five82/notesnav/internal/site"
)

func testSite(t *testing.T, failed ...string) *content.Site {
	t.Helper()
	doc, err := dom.ParseString(`<html><body><main id="content-container"></main></body></html>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return &content.Site{Manifest: site.Manifest{Title: "Notes"}, Doc: doc, Failed: failed}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(testSite(t, "a.html", "b.html"), nil)

	snap := s.Snapshot()
	if !snap.HasSite() || snap.Site.Manifest.Title != "Notes" {
		t.Fatalf("snapshot site = %#v, want loaded site", snap.Site)
	}
	if snap.Generation != 1 {
		t.Fatalf("Generation = %d, want 1", snap.Generation)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Site.Failed[0] = "changed"
	snap.Site.Manifest.Title = "changed"
	snap2 := s.Snapshot()
	if snap2.Site.Failed[0] != "a.html" || snap2.Site.Manifest.Title != "Notes" {
		t.Fatalf("Snapshot should clone site; got %#v", snap2.Site)
	}
}

func TestStore_GenerationCountsSuccessfulLoads(t *testing.T) {
	var s Store
	if s.Generation() != 0 || s.Snapshot().HasSite() {
		t.Fatalf("zero store should have no site")
	}
	s.Update(testSite(t), nil)
	s.Update(nil, errors.New("boom"))
	s.Update(testSite(t), nil)
	if got := s.Generation(); got != 2 {
		t.Fatalf("Generation = %d, want 2", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(testSite(t), nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.Site == nil || snap.Site.Doc != prev.Site.Doc {
		t.Fatalf("site changed on error")
	}
	if snap.Generation != prev.Generation {
		t.Fatalf("generation changed on error: %d -> %d", prev.Generation, snap.Generation)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_NilSiteIsAnError(t *testing.T) {
	var s Store
	s.Update(nil, nil)
	snap := s.Snapshot()
	if snap.LastError == nil || snap.HasSite() || snap.ConsecutiveFailures != 1 {
		t.Fatalf("snapshot = %#v, want recorded failure", snap)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsFailing() {
		t.Fatalf("fresh store failures = %d", snap.ConsecutiveFailures)
	}

	s.Update(nil, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsFailing() {
		t.Fatalf("after one failure: %d failing=%v", snap.ConsecutiveFailures, snap.IsFailing())
	}

	s.Update(nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsFailing() {
		t.Fatalf("after two failures: %d failing=%v", snap.ConsecutiveFailures, snap.IsFailing())
	}

	// Success resets counter
	s.Update(testSite(t), nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsFailing() {
		t.Fatalf("after success: %d failing=%v", snap.ConsecutiveFailures, snap.IsFailing())
	}
}
