package main

import (
	"fmt"

	"stackpulse/internal/services"

	"github.com/spf13/cobra"
)

var (
	importPath      string
	importThreshold int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import thread records from a zip archive or directory",
	Long: `Import thread records until the corpus reaches the threshold.

Defaults come from IMPORT_ARCHIVE_PATH and IMPORT_THRESHOLD; questions that are
already present are skipped.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importPath, "path", "", "Archive or directory to import (default: IMPORT_ARCHIVE_PATH)")
	importCmd.Flags().IntVar(&importThreshold, "threshold", 0, "Corpus size to stop at (default: IMPORT_THRESHOLD)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, conn, err := openCorpus()
	if err != nil {
		return err
	}

	path := cfg.Import.ArchivePath
	if importPath != "" {
		path = importPath
	}
	threshold := cfg.Import.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold = importThreshold
	}

	result, err := services.NewImporter(conn, threshold).RunPath(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d questions (existing %d, duplicates %d, skipped %d records / %d items)\n",
		result.Imported, result.Existing, result.Duplicates, result.SkippedRecords, result.SkippedItems)
	return nil
}
