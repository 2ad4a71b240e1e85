package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"loom/internal/clean"
	"loom/internal/config"
	"loom/internal/core"
	"loom/internal/llmgen"
	"loom/internal/loader"
	"loom/internal/logger"
	"loom/internal/pipeline"
	"loom/internal/progress"
	"loom/internal/render"
)

var reportCmd = &cobra.Command{
	Use:   "report [input-csv]",
	Short: "Generate a narrative report from a cleaned-captions CSV",
	Long: `Read a cleaned-captions CSV, extract candidate narratives per platform
with the configured LLM provider, and write a markdown report combining
per-platform sections with a final cross-platform synthesis.

The input CSV must carry a cleaned_caption column. Pass --raw for a CSV
that only has raw captions; they are cleaned before processing.

Example:
  loom report output/cleaned.csv
  loom report --topic "housing policy" --output reports output/cleaned.csv
  loom report --raw output/captions.csv`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]
		outputDir, _ := cmd.Flags().GetString("output")
		topic, _ := cmd.Flags().GetString("topic")
		provider, _ := cmd.Flags().GetString("provider")
		raw, _ := cmd.Flags().GetBool("raw")

		if err := runReport(cmd, inputFile, outputDir, topic, provider, raw); err != nil {
			logger.Error("Failed to generate report", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("output", "o", "", "output directory (defaults to output.directory from config)")
	reportCmd.Flags().String("topic", "", "topic framing for narrative extraction")
	reportCmd.Flags().String("provider", "", "LLM provider, gemini or openai (defaults to ai.provider from config)")
	reportCmd.Flags().Bool("raw", false, "input CSV carries raw captions only; clean them first")
}

func runReport(cmd *cobra.Command, inputFile, outputDir, topic, provider string, raw bool) error {
	cfg := config.Get()

	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}
	if topic == "" {
		topic = cfg.Pipeline.Topic
	}
	if provider == "" {
		provider = cfg.AI.Provider
	}

	logger.Info("Starting report generation",
		"input_file", inputFile, "provider", provider, "raw", raw)

	f, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	posts, err := readPosts(f, raw)
	if err != nil {
		return err
	}
	logger.Info("Loaded posts", "count", len(posts))

	gen, model, err := buildGenerator(cmd, cfg, provider)
	if err != nil {
		return err
	}

	runCfg := &pipeline.Config{
		Topic:            topic,
		Model:            model,
		SplitThreshold:   cfg.Pipeline.SplitThreshold,
		MaxExamples:      cfg.Pipeline.MaxExamples,
		Temperature:      float64(cfg.Pipeline.Temperature),
		FinalTemperature: float64(cfg.Pipeline.FinalTemperature),
		ContinueOnError:  cfg.Pipeline.ContinueOnError,
	}

	p := pipeline.New(gen, progress.Terminal{Out: os.Stderr}, runCfg)
	report, err := p.Run(cmd.Context(), posts)
	if err != nil {
		return err
	}

	for _, failure := range report.Failures {
		logger.Warn("Platform degraded during the run",
			"platform", failure.Platform, "stage", failure.Stage, "message", failure.Message)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(outputDir, cfg.Output.Filename)
	if err := os.WriteFile(outputPath, []byte(render.Document(report)), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("Report written",
		"path", outputPath, "run_id", report.RunID,
		"sections", len(report.Sections), "failures", len(report.Failures))
	return nil
}

func readPosts(f *os.File, raw bool) ([]core.Post, error) {
	if raw {
		posts, err := loader.ReadRaw(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read raw captions: %w", err)
		}
		return clean.Records(posts), nil
	}
	posts, err := loader.ReadCleaned(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read cleaned captions: %w", err)
	}
	return posts, nil
}

func buildGenerator(cmd *cobra.Command, cfg *config.Config, provider string) (llmgen.Generator, string, error) {
	switch provider {
	case "gemini":
		gen, err := llmgen.NewGemini(cmd.Context(), cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gen, cfg.AI.Gemini.Model, nil
	case "openai":
		gen, err := llmgen.NewOpenAI(cfg.AI.OpenAI.APIKey, cfg.AI.OpenAI.Model)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return gen, cfg.AI.OpenAI.Model, nil
	default:
		return nil, "", fmt.Errorf("unknown provider %q (expected \"gemini\" or \"openai\")", provider)
	}
}
