package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loom/internal/clean"
	"loom/internal/loader"
	"loom/internal/logger"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [input-csv]",
	Short: "Clean raw captions in a CSV for narrative extraction",
	Long: `Read a raw-captions CSV, normalize each caption (lowercase, strip
punctuation, collapse whitespace), and write the result with a
cleaned_caption column added.

Example:
  loom clean output/captions.csv --output output/cleaned.csv`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]
		outputFile, _ := cmd.Flags().GetString("output")

		if err := runClean(inputFile, outputFile); err != nil {
			logger.Error("Failed to clean captions", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringP("output", "o", "cleaned.csv", "output CSV path")
}

func runClean(inputFile, outputFile string) error {
	logger.Info("Cleaning captions", "input_file", inputFile, "output_file", outputFile)

	f, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	posts, err := loader.ReadRaw(f)
	if err != nil {
		return fmt.Errorf("failed to read raw captions: %w", err)
	}

	cleaned := clean.Records(posts)

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := loader.WriteCleaned(out, cleaned); err != nil {
		return fmt.Errorf("failed to write cleaned captions: %w", err)
	}

	logger.Info("Cleaned captions written", "count", len(cleaned), "path", outputFile)
	return nil
}
