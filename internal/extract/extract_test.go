// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/pdftext/pkg/types"
)

// fakeDocument serves canned page text.
type fakeDocument struct {
	pages  []string
	closed bool
}

func (d *fakeDocument) NumPages() int { return len(d.pages) }

func (d *fakeDocument) PageText(n int) string {
	if n < 1 || n > len(d.pages) {
		return ""
	}
	return d.pages[n-1]
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

// fakeExtractor implements Extractor for testing. It returns canned page
// text or an error, depending on configuration.
type fakeExtractor struct {
	pages  []string
	err    error
	opened *fakeDocument
}

func (f *fakeExtractor) Open(path string) (Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.opened = &fakeDocument{pages: f.pages}
	return f.opened, nil
}

func TestConvertFile(t *testing.T) {
	tests := []struct {
		name      string
		pages     []string
		want      string
		wantPages int
	}{
		{
			name:      "three pages with an empty middle page",
			pages:     []string{"Hello", "", "World"},
			want:      "Hello\n\nWorld\n",
			wantPages: 3,
		},
		{
			name:      "single page",
			pages:     []string{"only page"},
			want:      "only page\n",
			wantPages: 1,
		},
		{
			name:      "all pages empty",
			pages:     []string{"", "", "", ""},
			want:      "\n\n\n\n",
			wantPages: 4,
		},
		{
			name:      "page text with embedded newlines",
			pages:     []string{"line one\nline two", "next page"},
			want:      "line one\nline two\nnext page\n",
			wantPages: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outPath := filepath.Join(t.TempDir(), "out.txt")
			ex := &fakeExtractor{pages: tt.pages}

			result, err := ConvertFile(ex, "in.pdf", outPath)
			if err != nil {
				t.Fatalf("ConvertFile: %v", err)
			}

			data, err := os.ReadFile(outPath)
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("output = %q, want %q", data, tt.want)
			}

			if result.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", result.Pages, tt.wantPages)
			}
			if result.Bytes != int64(len(tt.want)) {
				t.Errorf("Bytes = %d, want %d", result.Bytes, len(tt.want))
			}
			if !ex.opened.closed {
				t.Error("document was not closed")
			}
		})
	}
}

func TestConvertFile_OneLinePerPage(t *testing.T) {
	pages := []string{"a", "", "c", "", ""}
	outPath := filepath.Join(t.TempDir(), "out.txt")

	if _, err := ConvertFile(&fakeExtractor{pages: pages}, "in.pdf", outPath); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "\n"); got != len(pages) {
		t.Errorf("newline count = %d, want %d", got, len(pages))
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("output must end with a newline")
	}
}

func TestConvertFile_OpenFailure(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")
	ex := &fakeExtractor{err: errors.New("not a PDF")}

	_, err := ConvertFile(ex, "missing.pdf", outPath)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrOpen) {
		t.Errorf("error %v is not ErrOpen", err)
	}
	if errors.Is(err, ErrWrite) {
		t.Errorf("error %v should not be ErrWrite", err)
	}

	// A failed open must not leave an output file behind.
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Errorf("output file should not exist after open failure, stat: %v", statErr)
	}
}

func TestConvertFile_WriteFailure(t *testing.T) {
	// Output path inside a directory that does not exist.
	outPath := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	ex := &fakeExtractor{pages: []string{"text"}}

	_, err := ConvertFile(ex, "in.pdf", outPath)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrWrite) {
		t.Errorf("error %v is not ErrWrite", err)
	}
	if !ex.opened.closed {
		t.Error("document must be closed on write failure")
	}
}

func TestConvertFile_Idempotent(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")
	pages := []string{"Hello", "", "World"}

	if _, err := ConvertFile(&fakeExtractor{pages: pages}, "in.pdf", outPath); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ConvertFile(&fakeExtractor{pages: pages}, "in.pdf", outPath); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("re-run output differs: %q vs %q", first, second)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"papers/2301.07041.pdf", "2301.07041.txt"},
		{"report.PDF", "report.txt"},
		{"no-extension", "no-extension.txt"},
	}
	for _, tt := range tests {
		if got := OutputName(tt.path); got != tt.want {
			t.Errorf("OutputName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// selectiveExtractor returns different results per input path.
type selectiveExtractor struct {
	pages  map[string][]string
	errors map[string]error
}

func (s *selectiveExtractor) Open(path string) (Document, error) {
	if err, ok := s.errors[path]; ok {
		return nil, err
	}
	if p, ok := s.pages[path]; ok {
		return &fakeDocument{pages: p}, nil
	}
	return nil, errors.New("unexpected path: " + path)
}

func TestConvertOne(t *testing.T) {
	tests := []struct {
		name       string
		extractor  Extractor
		preCreate  bool // create output before running
		wantStatus types.ConversionStatus
		wantLog    string
	}{
		{
			name:       "successful conversion",
			extractor:  &fakeExtractor{pages: []string{"content"}},
			wantStatus: types.ConversionDone,
			wantLog:    "converted:",
		},
		{
			name:       "skip existing output",
			extractor:  &fakeExtractor{pages: []string{"should not be read"}},
			preCreate:  true,
			wantStatus: types.ConversionNone,
			wantLog:    "skipped:",
		},
		{
			name:       "open failure",
			extractor:  &fakeExtractor{err: errors.New("corrupt header")},
			wantStatus: types.ConversionFailed,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			pdfPath := filepath.Join(tmpDir, "doc.pdf")
			if err := os.WriteFile(pdfPath, []byte("fake pdf"), 0o644); err != nil {
				t.Fatal(err)
			}
			outDir := filepath.Join(tmpDir, "text")

			if tt.preCreate {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(outDir, "doc.txt"), []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			status := ConvertOne(tt.extractor, pdfPath, outDir, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestConvertBatch(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "text")

	// Three PDFs: one succeeds, one has pre-existing output, one fails.
	paths := make(map[string]string)
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		p := filepath.Join(tmpDir, name)
		if err := os.WriteFile(p, []byte("pdf"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths[name] = p
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "b.txt"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	ex := &selectiveExtractor{
		pages: map[string][]string{
			paths["a.pdf"]: {"page one", "page two"},
			paths["b.pdf"]: {"unused"},
		},
		errors: map[string]error{
			paths["c.pdf"]: errors.New("bad pdf"),
		},
	}

	var log bytes.Buffer
	result := ConvertBatch(ex, []string{paths["a.pdf"], paths["b.pdf"], paths["c.pdf"]}, outDir, &log)

	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 3 {
		t.Errorf("total = %d, want 3", result.Total())
	}
	if !strings.Contains(log.String(), "Batch summary:") {
		t.Error("batch output should contain summary line")
	}

	data, err := os.ReadFile(filepath.Join(outDir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "page one\npage two\n" {
		t.Errorf("a.txt = %q", data)
	}
}

func TestListPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.pdf", "notes.txt", "upper.PDF"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := ListPDFs(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "upper.PDF"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestListPDFs_MissingDir(t *testing.T) {
	if _, err := ListPDFs(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
