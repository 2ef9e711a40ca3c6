package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/five82/notesnav/internal/site"
)

// Source fetches site files by slash-separated relative name.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	// Location describes the source for logs and the status line.
	Location() string
}

// Ensure implementations satisfy Source at compile time.
var (
	_ Source = (*DirSource)(nil)
	_ Source = (*HTTPSource)(nil)
)

// SampleLocation names the embedded sample site.
const SampleLocation = "sample"

// NewSource picks a source for location: empty or "sample" is the embedded
// sample site, http(s) URLs are fetched remotely, anything else is a
// directory.
func NewSource(location string) (Source, error) {
	trimmed := strings.TrimSpace(location)
	switch {
	case trimmed == "" || trimmed == SampleLocation:
		return &DirSource{fsys: site.Sample(), label: SampleLocation}, nil
	case strings.Contains(trimmed, "://"):
		src, err := NewHTTPSource(trimmed)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		src, err := NewDirSource(trimmed)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}

// DirSource reads from a file system: a directory on disk or the embedded
// sample site.
type DirSource struct {
	fsys  fs.FS
	dir   string
	label string
}

// NewDirSource returns a source over dir, which must exist.
func NewDirSource(dir string) (*DirSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open content dir: %s is not a directory", dir)
	}
	return &DirSource{fsys: os.DirFS(dir), dir: dir, label: dir}, nil
}

// NewFSSource wraps an arbitrary file system.
func NewFSSource(fsys fs.FS, label string) *DirSource {
	return &DirSource{fsys: fsys, label: label}
}

// Dir returns the directory on disk, or "" for in-memory file systems.
func (s *DirSource) Dir() string { return s.dir }

func (s *DirSource) Location() string { return s.label }

func (s *DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean(strings.TrimPrefix(name, "/"))
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("fetch %s: invalid path", name)
	}
	data, err := fs.ReadFile(s.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return data, nil
}

// HTTPSource fetches files relative to a base URL.
type HTTPSource struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "notesnav/0.1"
	requestTimeout   = 5 * time.Second
	maxFragmentBytes = 8 << 20
)

// NewHTTPSource builds a source rooted at rawURL.
func NewHTTPSource(rawURL string) (*HTTPSource, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &HTTPSource{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

func (s *HTTPSource) Location() string { return s.baseURL.String() }

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if s == nil {
		return nil, errors.New("source is nil")
	}
	rel := &url.URL{Path: strings.TrimPrefix(name, "/")}
	reqURL := s.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html, text/markdown, application/yaml;q=0.9, */*;q=0.8")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s returned status %d", rel.String(), resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFragmentBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// parseBaseURL normalises the base so relative names resolve beneath it.
func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse content url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse content url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse content url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
