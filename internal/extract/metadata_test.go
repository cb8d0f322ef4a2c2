// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdftext/pkg/types"
)

func TestWriteMetadata(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "doc.txt")
	run := types.Run{
		InputPath:   "papers/doc.pdf",
		OutputPath:  outPath,
		Backend:     types.BackendNative,
		Pages:       3,
		Bytes:       42,
		ConvertedAt: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, WriteMetadata(run))

	data, err := os.ReadFile(MetadataPath(outPath))
	require.NoError(t, err)

	var got types.Run
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, run.InputPath, got.InputPath)
	assert.Equal(t, run.OutputPath, got.OutputPath)
	assert.Equal(t, run.Backend, got.Backend)
	assert.Equal(t, run.Pages, got.Pages)
	assert.Equal(t, run.Bytes, got.Bytes)
	assert.True(t, run.ConvertedAt.Equal(got.ConvertedAt))
}

func TestMetadataPath(t *testing.T) {
	assert.Equal(t, "text/doc.txt.meta.yaml", MetadataPath("text/doc.txt"))
}

func TestWriteMetadata_UnwritableDir(t *testing.T) {
	run := types.Run{
		OutputPath: filepath.Join(t.TempDir(), "missing", "doc.txt"),
	}
	assert.Error(t, WriteMetadata(run))
}
