package types

// ExtractBackend identifies the text-extraction backend.
type ExtractBackend string

const (
	// BackendNative extracts the embedded text layer in pure Go.
	BackendNative ExtractBackend = "native"

	// BackendPdftotext shells out to the Poppler pdftotext binary.
	BackendPdftotext ExtractBackend = "pdftotext"
)

// Valid reports whether b names a known backend.
func (b ExtractBackend) Valid() bool {
	return b == BackendNative || b == BackendPdftotext
}

// ExtractConfig holds settings for a conversion run.
type ExtractConfig struct {
	// Backend selects the extraction backend: native or pdftotext.
	Backend ExtractBackend `json:"backend" yaml:"backend"`

	// Metadata controls whether a sidecar metadata file is written
	// next to the text output.
	Metadata bool `json:"metadata" yaml:"metadata"`
}

// BatchConfig holds settings for batch conversion over a directory.
type BatchConfig struct {
	// InputDir is the directory scanned for *.pdf files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives one <base>.txt per converted PDF.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ManifestConfig holds settings for the conversion manifest.
type ManifestConfig struct {
	// Path is the SQLite database file recording completed conversions.
	// Empty disables manifest recording.
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default maximum number of history rows listed
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all tool configuration.
type Config struct {
	Extract  ExtractConfig  `json:"extract" yaml:"extract"`
	Batch    BatchConfig    `json:"batch" yaml:"batch"`
	Manifest ManifestConfig `json:"manifest" yaml:"manifest"`
}
