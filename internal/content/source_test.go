package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestParseBaseURL_Normalizes(t *testing.T) {
	u, err := parseBaseURL("https://notes.example.com/site?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/site/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	for _, bad := range []string{"ftp://example.com", "http://", "::nope"} {
		if _, err := parseBaseURL(bad); err == nil {
			t.Fatalf("parseBaseURL(%q) expected error", bad)
		}
	}
}

func TestHTTPSource_FetchesRelativeToBase(t *testing.T) {
	t.Parallel()

	var gotPath, gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		switch r.URL.Path {
		case "/notes/includes/header.html":
			_, _ = w.Write([]byte("<header>Notes</header>"))
		case "/notes/broken.html":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	src, err := NewHTTPSource(server.URL + "/notes")
	if err != nil {
		t.Fatalf("NewHTTPSource returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	data, err := src.Fetch(ctx, "includes/header.html")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(data) != "<header>Notes</header>" {
		t.Fatalf("Fetch = %q", data)
	}
	if gotPath != "/notes/includes/header.html" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("user agent = %q", gotUserAgent)
	}
	if !strings.Contains(gotAccept, "text/html") {
		t.Fatalf("accept = %q", gotAccept)
	}

	_, err = src.Fetch(ctx, "broken.html")
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Fetch error = %v, want status 500", err)
	}
}

func TestDirSource_ReadsAndRejectsEscapes(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml":       {Data: []byte("title: T\n")},
		"includes/a.html": {Data: []byte("<p>a</p>")},
	}
	src := NewFSSource(fsys, "mem")
	if src.Location() != "mem" || src.Dir() != "" {
		t.Fatalf("location = %q dir = %q", src.Location(), src.Dir())
	}
	data, err := src.Fetch(context.Background(), "/includes/a.html")
	if err != nil || string(data) != "<p>a</p>" {
		t.Fatalf("Fetch = %q, %v", data, err)
	}
	if _, err := src.Fetch(context.Background(), "../etc/passwd"); err == nil {
		t.Fatalf("expected error for path escaping the root")
	}
	if _, err := src.Fetch(context.Background(), "missing.html"); err == nil {
		t.Fatalf("expected error for missing file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Fetch(ctx, "site.yaml"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestNewSource_PicksImplementation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := []struct {
		location string
		want     string
		wantErr  bool
	}{
		{location: "", want: SampleLocation},
		{location: "sample", want: SampleLocation},
		{location: "http://example.com/notes", want: "http://example.com/notes/"},
		{location: dir, want: dir},
		{location: file, wantErr: true},
		{location: filepath.Join(dir, "missing"), wantErr: true},
		{location: "gopher://example.com", wantErr: true},
	}
	for _, tc := range cases {
		src, err := NewSource(tc.location)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("NewSource(%q) expected error", tc.location)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NewSource(%q) returned error: %v", tc.location, err)
		}
		if src.Location() != tc.want {
			t.Fatalf("NewSource(%q).Location() = %q, want %q", tc.location, src.Location(), tc.want)
		}
	}
}
