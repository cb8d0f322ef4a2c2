// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor parses PDFs in pure Go via github.com/ledongthuc/pdf.
// Only the embedded text layer is read; scanned (image-only) pages yield
// empty text.
type NativeExtractor struct{}

// Open parses the PDF at path.
func (NativeExtractor) Open(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &nativeDocument{
		f:     f,
		r:     r,
		fonts: make(map[string]*pdf.Font),
	}, nil
}

// nativeDocument wraps a pdf.Reader. The font cache is shared across
// pages; documents reuse the same fonts heavily.
type nativeDocument struct {
	f     *os.File
	r     *pdf.Reader
	fonts map[string]*pdf.Font
}

func (d *nativeDocument) NumPages() int { return d.r.NumPage() }

// PageText extracts the text of page n. The parser panics on some
// malformed content streams; those pages degrade to empty text rather
// than aborting the run.
func (d *nativeDocument) PageText(n int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	p := d.r.Page(n)
	if p.V.IsNull() {
		return ""
	}

	for _, name := range p.Fonts() {
		if _, ok := d.fonts[name]; !ok {
			font := p.Font(name)
			d.fonts[name] = &font
		}
	}

	text, err := p.GetPlainText(d.fonts)
	if err != nil {
		return ""
	}
	return text
}

func (d *nativeDocument) Close() error { return d.f.Close() }
