// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of a single PDF-to-text conversion.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Run records one completed conversion: which file was converted, where the
// text went, and how much came out.
type Run struct {
	// InputPath is the source PDF.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the written text file.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Backend identifies which extraction backend produced the text.
	Backend ExtractBackend `json:"backend" yaml:"backend"`

	// Pages is the number of pages in the source document. The output
	// holds exactly one newline-terminated line per page.
	Pages int `json:"pages" yaml:"pages"`

	// Bytes is the size of the written text output.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// ConvertedAt is when the conversion completed, in UTC.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
