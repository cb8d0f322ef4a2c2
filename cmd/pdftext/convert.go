// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/extract"
	"github.com/pdiddy/pdftext/internal/manifest"
	"github.com/pdiddy/pdftext/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.pdf> <output.txt>",
	Short: "Extract a PDF's text into a single text file",
	Long: `Convert extracts the text of every page of a PDF, in physical order,
and writes it to the output file: one newline-terminated chunk per page,
with empty lines for pages that have no extractable text. Prints OK on
success.

With --batch, every *.pdf under --input-dir is converted to a matching
.txt under --output-dir, skipping files whose output already exists.`,
	Args: func(cmd *cobra.Command, args []string) error {
		batch, _ := cmd.Flags().GetBool("batch")
		if batch {
			if len(args) != 0 {
				return fmt.Errorf("batch mode takes no positional arguments")
			}
			return nil
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("backend", string(types.BackendNative), "extraction backend: native or pdftotext")
	convertCmd.Flags().Bool("metadata", false, "write a YAML metadata sidecar next to each output")
	convertCmd.Flags().String("manifest", "", "SQLite manifest recording completed conversions")
	convertCmd.Flags().Bool("batch", false, "convert all PDFs under --input-dir")
	convertCmd.Flags().String("input-dir", "papers", "input directory scanned in batch mode")
	convertCmd.Flags().String("output-dir", "text", "output directory for batch mode")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	backend := types.ExtractBackend(stringSetting(cmd, "backend", "extract.backend"))
	if !backend.Valid() {
		return fmt.Errorf("unknown backend %q (expected native or pdftotext)", backend)
	}

	ex, err := extract.NewExtractor(backend)
	if err != nil {
		return err
	}

	if batch, _ := cmd.Flags().GetBool("batch"); batch {
		return runConvertBatch(cmd, ex)
	}

	inputPath, outputPath := args[0], args[1]

	result, err := extract.ConvertFile(ex, inputPath, outputPath)
	if err != nil {
		return err
	}

	run := types.Run{
		InputPath:   inputPath,
		OutputPath:  outputPath,
		Backend:     backend,
		Pages:       result.Pages,
		Bytes:       result.Bytes,
		ConvertedAt: time.Now().UTC(),
	}

	if metadata, _ := cmd.Flags().GetBool("metadata"); metadata {
		if err := extract.WriteMetadata(run); err != nil {
			return err
		}
	}

	// The text artifact is the contract: a manifest failure after a
	// successful conversion is reported, not fatal.
	if path := stringSetting(cmd, "manifest", "manifest.path"); path != "" {
		if err := recordRun(path, run); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	fmt.Fprintf(os.Stderr, "%d page(s) -> %s\n", result.Pages, outputPath)
	fmt.Println("OK")
	return nil
}

func runConvertBatch(cmd *cobra.Command, ex extract.Extractor) error {
	inputDir := stringSetting(cmd, "input-dir", "batch.input_dir")
	outputDir := stringSetting(cmd, "output-dir", "batch.output_dir")

	pdfs, err := extract.ListPDFs(inputDir)
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		return fmt.Errorf("no PDF files found in %s", inputDir)
	}

	result := extract.ConvertBatch(ex, pdfs, outputDir, os.Stderr)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}

	fmt.Println("OK")
	return nil
}

func recordRun(manifestPath string, run types.Run) error {
	store, err := manifest.NewStore(types.ManifestConfig{Path: manifestPath})
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(context.Background(), run)
}
