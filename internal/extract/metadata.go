// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdftext/pkg/types"
)

// MetadataPath returns the sidecar metadata path for a text output file.
func MetadataPath(outputPath string) string {
	return outputPath + ".meta.yaml"
}

// WriteMetadata writes a YAML sidecar describing a completed conversion
// next to its text output. The text output itself stays free of headers
// and metadata.
func WriteMetadata(run types.Run) error {
	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("encoding metadata for %s: %w", run.OutputPath, err)
	}

	path := MetadataPath(run.OutputPath)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata %s: %w", path, err)
	}
	return nil
}
