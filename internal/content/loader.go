package content

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/five82/notesnav/internal/dom"
	"github.com/five82/notesnav/internal/nav"
	"github.com/five82/notesnav/internal/site"
)

// Container ids in the shell document.
const (
	HeaderContainer  = "header-container"
	TabsContainer    = "tabs-container"
	ContentContainer = "content-container"
	FooterContainer  = "footer-container"
)

// ErrorCard replaces a fragment that failed to load.
const ErrorCard = `<div class="content-card"><h2>Error loading content</h2></div>`

// fetchLimit bounds concurrent fragment fetches.
const fetchLimit = 8

// Site is a fully composed notes site.
type Site struct {
	Manifest site.Manifest
	Doc      *dom.Document
	// Failed lists fragments replaced by ErrorCard.
	Failed []string
}

// Loader composes the shell and fragments of a site into one document.
type Loader struct {
	src Source
	log zerolog.Logger
}

// NewLoader returns a loader reading from src.
func NewLoader(src Source, log zerolog.Logger) *Loader {
	return &Loader{src: src, log: log}
}

// Source returns the loader's source.
func (l *Loader) Source() Source { return l.src }

// fragment is one file to inject into a target element.
type fragment struct {
	name   string
	target string
	markup string
	err    error
}

// Load reads the manifest and shell, fetches every fragment concurrently and
// injects each into its container. Fragment failures are replaced with
// ErrorCard; manifest and shell failures are returned.
func (l *Loader) Load(ctx context.Context) (*Site, error) {
	raw, err := l.src.Fetch(ctx, site.ManifestName)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	m, err := site.Parse(raw)
	if err != nil {
		return nil, err
	}
	shell, err := l.src.Fetch(ctx, m.Shell)
	if err != nil {
		return nil, fmt.Errorf("load shell: %w", err)
	}
	doc, err := dom.Parse(bytes.NewReader(shell))
	if err != nil {
		return nil, fmt.Errorf("load shell: %w", err)
	}
	container := doc.ByID(ContentContainer)
	if container == nil {
		return nil, fmt.Errorf("load shell: no #%s element in %s", ContentContainer, m.Shell)
	}

	layout, tabs, sections := plan(m)
	all := make([]*fragment, 0, len(layout)+len(tabs)+len(sections))
	all = append(all, layout...)
	all = append(all, tabs...)
	all = append(all, sections...)
	if err := l.fetchAll(ctx, all); err != nil {
		return nil, err
	}

	out := &Site{Manifest: m, Doc: doc}
	for _, f := range layout {
		l.inject(out, doc.ByID(f.target), f)
	}
	for i, tab := range m.Tabs {
		panel := dom.NewElement("section",
			"class", nav.ClassTabPanel,
			"id", tab.ID,
			"role", "tabpanel",
			"hidden", "")
		container.AppendChild(panel)
		if f := tabs[i]; f.name != "" {
			l.inject(out, panel, f)
		}
	}
	for _, f := range sections {
		l.inject(out, doc.ByID(f.target), f)
	}
	l.log.Info().
		Str("source", l.src.Location()).
		Int("tabs", len(m.Tabs)).
		Int("failed", len(out.Failed)).
		Msg("site loaded")
	return out, nil
}

// plan lists the layout, per-tab and section fragments of m. tabs is
// parallel to m.Tabs; entries without a fragment have an empty name.
func plan(m site.Manifest) (layout, tabs, sections []*fragment) {
	for _, f := range []*fragment{
		{name: m.Layout.Header, target: HeaderContainer},
		{name: m.Layout.Navigation, target: TabsContainer},
		{name: m.Layout.Footer, target: FooterContainer},
	} {
		if f.name != "" {
			layout = append(layout, f)
		}
	}
	for _, tab := range m.Tabs {
		tabs = append(tabs, &fragment{name: tab.Fragment, target: tab.ID})
	}
	for _, s := range m.Sections {
		sections = append(sections, &fragment{name: s.Fragment, target: s.Target})
	}
	return layout, tabs, sections
}

func (l *Loader) fetchAll(ctx context.Context, frags []*fragment) error {
	var g errgroup.Group
	g.SetLimit(fetchLimit)
	for _, f := range frags {
		if f.name == "" {
			continue
		}
		g.Go(func() error {
			data, err := l.src.Fetch(ctx, f.name)
			if err != nil {
				f.err = err
				return nil // replaced by ErrorCard at injection
			}
			f.markup, f.err = toHTML(f.name, data)
			return nil
		})
	}
	_ = g.Wait()
	// A cancelled load is not a partial site.
	return ctx.Err()
}

func (l *Loader) inject(out *Site, target *html.Node, f *fragment) {
	if target == nil {
		l.log.Warn().Str("fragment", f.name).Str("target", f.target).Msg("fragment target not found")
		return
	}
	markup := f.markup
	if f.err != nil {
		l.log.Error().Err(f.err).Str("fragment", f.name).Msg("error loading content")
		out.Failed = append(out.Failed, f.name)
		markup = ErrorCard
	}
	if err := dom.SetInnerHTML(target, markup); err != nil {
		l.log.Error().Err(err).Str("fragment", f.name).Msg("error injecting content")
		out.Failed = append(out.Failed, f.name)
		_ = dom.SetInnerHTML(target, ErrorCard)
	}
}
