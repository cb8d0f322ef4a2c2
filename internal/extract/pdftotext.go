// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/pdftext/internal/tool"
)

// PdftotextExtractor extracts text by running the Poppler pdftotext binary.
// It depends on a tool.Runner injected at construction time.
type PdftotextExtractor struct {
	runner tool.Runner
}

// NewPdftotextExtractor creates an extractor backed by the given tool
// runner. Use tool.DetectRunner to locate the real binary.
func NewPdftotextExtractor(r tool.Runner) *PdftotextExtractor {
	return &PdftotextExtractor{runner: r}
}

// Open runs pdftotext over the whole file up front and splits the output
// into pages on the form-feed separators the tool emits.
func (e *PdftotextExtractor) Open(path string) (Document, error) {
	// pdftotext reports missing files through an exit status with no
	// useful message under -q; stat first for a readable error.
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := e.runner.Extract(path, &buf); err != nil {
		return nil, fmt.Errorf("extracting %s with %s: %w", path, e.runner.Name(), err)
	}

	return &textDocument{pages: splitPages(buf.String())}, nil
}

// splitPages turns pdftotext output into per-page text. The tool ends
// every page with a newline and a form feed, including the last; both are
// stripped so the conversion writer controls line termination.
func splitPages(out string) []string {
	out = strings.TrimSuffix(out, "\f")
	pages := strings.Split(out, "\f")
	for i, p := range pages {
		pages[i] = strings.TrimSuffix(p, "\n")
	}
	return pages
}

// textDocument holds pre-extracted page text.
type textDocument struct {
	pages []string
}

func (d *textDocument) NumPages() int { return len(d.pages) }

func (d *textDocument) PageText(n int) string {
	if n < 1 || n > len(d.pages) {
		return ""
	}
	return d.pages[n-1]
}

func (d *textDocument) Close() error { return nil }
