// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract implements page-wise PDF text extraction with pluggable
// backends. The output format is fixed: for each page of the document, in
// physical order, the page's extracted text followed by exactly one newline.
package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/pdftext/internal/tool"
	"github.com/pdiddy/pdftext/pkg/types"
)

// Sentinel errors classifying fatal conversion failures. Both are wrapped
// with file context; match with errors.Is.
var (
	// ErrOpen marks a failure to open or parse the input PDF. The output
	// file is never created when opening fails.
	ErrOpen = errors.New("open failed")

	// ErrWrite marks a failure to create or write the output file. A
	// partially written output may be left behind; its content is
	// undefined.
	ErrWrite = errors.New("write failed")
)

// Document is a parsed PDF exposed as a finite, ordered page sequence of
// known length.
type Document interface {
	// NumPages returns the page count.
	NumPages() int

	// PageText returns the extracted text of page n (1-based, physical
	// order). A page with no extractable text yields "". Extraction
	// never fails the run; backends degrade unreadable pages to "".
	PageText(n int) string

	// Close releases the document.
	Close() error
}

// Extractor opens PDF files for text extraction. Backends (native,
// pdftotext) implement this interface.
type Extractor interface {
	// Open parses the PDF at path. Missing files and malformed or
	// unsupported PDFs are errors.
	Open(path string) (Document, error)
}

// NewExtractor builds the extractor for the configured backend. An empty
// backend selects native extraction.
func NewExtractor(backend types.ExtractBackend) (Extractor, error) {
	switch backend {
	case types.BackendNative, "":
		return NativeExtractor{}, nil
	case types.BackendPdftotext:
		r, err := tool.DetectRunner()
		if err != nil {
			return nil, fmt.Errorf("backend %s: %w", backend, err)
		}
		return NewPdftotextExtractor(r), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// Result summarizes a successful conversion.
type Result struct {
	// Pages is the document's page count, which equals the number of
	// newline-terminated lines written.
	Pages int

	// Bytes is the total size of the written output.
	Bytes int64
}

// ConvertFile extracts the text of every page of inputPath and writes the
// concatenation to outputPath, one newline-terminated chunk per page. The
// output file is created (truncating any prior content) only after the
// input opens successfully, so a failed open leaves no output behind.
func ConvertFile(ex Extractor, inputPath, outputPath string) (Result, error) {
	doc, err := ex.Open(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrOpen, inputPath, err)
	}
	defer doc.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrWrite, outputPath, err)
	}

	w := bufio.NewWriter(out)
	pages := doc.NumPages()
	var written int64

	for n := 1; n <= pages; n++ {
		text := doc.PageText(n)
		if _, err := w.WriteString(text); err != nil {
			out.Close()
			return Result{}, fmt.Errorf("%w: %s: %v", ErrWrite, outputPath, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			out.Close()
			return Result{}, fmt.Errorf("%w: %s: %v", ErrWrite, outputPath, err)
		}
		written += int64(len(text)) + 1
	}

	if err := w.Flush(); err != nil {
		out.Close()
		return Result{}, fmt.Errorf("%w: %s: %v", ErrWrite, outputPath, err)
	}
	if err := out.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrWrite, outputPath, err)
	}

	return Result{Pages: pages, Bytes: written}, nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputName returns the text output filename for a PDF path: the base
// name with the extension replaced by .txt.
func OutputName(pdfPath string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return base + ".txt"
}

// ConvertOne converts a single PDF into outDir, writing per-file status to
// w. If the text output already exists, conversion is skipped and
// ConversionNone is returned.
func ConvertOne(ex Extractor, pdfPath, outDir string, w io.Writer) types.ConversionStatus {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	txtPath := filepath.Join(outDir, OutputName(pdfPath))

	if _, err := os.Stat(txtPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return types.ConversionNone
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	if _, err := ConvertFile(ex, pdfPath, txtPath); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return types.ConversionDone
}

// ConvertBatch processes a list of PDF paths through the extractor,
// printing per-file status to w and returning a summary.
func ConvertBatch(ex Extractor, pdfPaths []string, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		switch ConvertOne(ex, p, outDir, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ListPDFs returns the *.pdf files directly under dir, sorted by name.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
