// Package printer turns the active panel into a standalone printable HTML
// document and hands it to the system print command.
package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/five82/notesnav/internal/dom"
)

// ErrPDFUnsupported is returned by ExportPDF.
var ErrPDFUnsupported = errors.New("pdf download requires a server-side implementation")

// PDFNotice is shown to the reader in place of ErrPDFUnsupported.
const PDFNotice = "PDF download requires a server-side implementation. Use print and save as PDF instead."

// DefaultCommand is the print spooler invoked with the document path.
const DefaultCommand = "lp"

// stripped matches the interactive elements removed before printing.
var stripped = dom.Any(dom.Tag("button"), dom.Class("search-box"), dom.Class("print-toolbar"), dom.Class("bookmark-btn"))

var page = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} - Print</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; margin: 0; padding: 20px; color: #333; }
.print-content { max-width: 800px; margin: 0 auto; }
h1, h2, h3 { color: #0c4b8a; margin-top: 1.5em; margin-bottom: 0.5em; }
h1 { font-size: 28px; }
h2 { font-size: 24px; }
h3 { font-size: 20px; }
ul, ol { margin-left: 20px; margin-bottom: 1em; }
li { margin-bottom: 0.5em; }
.content-card { background: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); margin-bottom: 20px; }
.content-header { border-bottom: 2px solid #0c4b8a; padding-bottom: 10px; margin-bottom: 20px; }
.update-badge { background: #ff6b6b; color: white; padding: 5px 15px; border-radius: 15px; font-size: 12px; display: inline-block; }
@media print {
  @page { margin: 1cm; }
  body { font-size: 12pt; }
  .no-print { display: none !important; }
  a { color: #0c4b8a; text-decoration: none; }
}
</style>
</head>
<body>
<div class="print-content">
<h1>{{.Title}} - Printed Content</h1>
<p>Printed on: {{.Date}}</p>
<hr>
{{.Body}}
</div>
</body>
</html>
`))

// Options configures a Printer.
type Options struct {
	// Title is the site title used in the heading.
	Title   string
	Command string
	Args    []string
	Logger  zerolog.Logger
}

// Printer builds print snapshots and spools them.
type Printer struct {
	title   string
	command string
	args    []string
	log     zerolog.Logger
	now     func() time.Time
	run     func(ctx context.Context, name string, args ...string) error
}

// New returns a Printer. An empty command uses DefaultCommand.
func New(opts Options) *Printer {
	p := &Printer{
		title:   strings.TrimSpace(opts.Title),
		command: strings.TrimSpace(opts.Command),
		args:    append([]string(nil), opts.Args...),
		log:     opts.Logger,
		now:     time.Now,
		run:     runCommand,
	}
	if p.title == "" {
		p.title = "Notes"
	}
	if p.command == "" {
		p.command = DefaultCommand
	}
	return p
}

// Snapshot clones panel without its interactive elements and wraps it in a
// detached document. The live document is not modified.
func (p *Printer) Snapshot(panel *html.Node) (*dom.Document, error) {
	if panel == nil {
		return nil, errors.New("snapshot: no active panel")
	}
	clone := dom.CloneNode(panel)
	for _, n := range dom.FindAll(clone, stripped) {
		if n != clone {
			dom.Remove(n)
		}
	}
	body, err := dom.InnerHTML(clone)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	var buf bytes.Buffer
	err = page.Execute(&buf, struct {
		Title string
		Date  string
		Body  template.HTML
	}{
		Title: p.title,
		Date:  p.now().Format("January 2, 2006"),
		Body:  template.HTML(body),
	})
	if err != nil {
		return nil, fmt.Errorf("render print page: %w", err)
	}
	return dom.Parse(&buf)
}

// Write renders doc to w.
func (p *Printer) Write(w io.Writer, doc *dom.Document) error {
	if err := doc.Render(w); err != nil {
		return fmt.Errorf("write print page: %w", err)
	}
	return nil
}

// Print writes doc to a temporary file, runs the print command on it and
// removes the file afterwards.
func (p *Printer) Print(ctx context.Context, doc *dom.Document) error {
	f, err := os.CreateTemp("", "notesnav-print-*.html")
	if err != nil {
		return fmt.Errorf("create print file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if err := p.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close print file: %w", err)
	}
	args := append(append([]string(nil), p.args...), name)
	p.log.Debug().Str("command", p.command).Strs("args", args).Msg("printing")
	if err := p.run(ctx, p.command, args...); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

// ExportPDF is not supported by a local reader.
func ExportPDF() error {
	return ErrPDFUnsupported
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
