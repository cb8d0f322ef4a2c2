// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/manifest"
	"github.com/pdiddy/pdftext/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversions, newest first",
	Long: `History reads the conversion manifest and prints recorded runs, newest
first. Conversions are recorded only when a manifest path is configured
via --manifest or the manifest.path config key.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("manifest", "pdftext.db", "SQLite manifest to read")
	historyCmd.Flags().Int("limit", 0, "maximum number of runs to list (0 = default)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := stringSetting(cmd, "manifest", "manifest.path")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := manifest.NewStore(types.ManifestConfig{Path: path})
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %-9s  %4d page(s)  %8d B  %s -> %s\n",
			r.ConvertedAt.Format(time.RFC3339), r.Backend,
			r.Pages, r.Bytes, r.InputPath, r.OutputPath)
	}
	return nil
}
