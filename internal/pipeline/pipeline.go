// Package pipeline orchestrates the narrative synthesis run: clean, group by
// platform, chunk, extract, merge, render, and finally synthesize across
// platforms. Processing is strictly sequential; every generation call blocks
// and each stage hands its output immutably to the next.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"loom/internal/chunk"
	"loom/internal/clean"
	"loom/internal/core"
	"loom/internal/llmgen"
	"loom/internal/logger"
	"loom/internal/narrative"
	"loom/internal/platform"
	"loom/internal/progress"
	"loom/internal/render"
	"loom/internal/synthesize"
)

// Config holds the tuning knobs of a run. The thresholds and caps are
// hand-tuned values carried as configuration, not fixed law.
type Config struct {
	Topic            string  // Domain framing injected into the extraction prompt
	Model            string  // Model for extraction and merge calls; empty uses the backend default
	FinalModel       string  // Model for the final synthesis; empty falls back to Model
	SplitThreshold   int     // Posts per platform above which the set is split in two
	MaxExamples      int     // Example lines rendered per narrative
	Temperature      float64 // Sampling temperature for extraction and merge
	FinalTemperature float64 // Sampling temperature for the final synthesis
	ContinueOnError  bool    // Isolate per-platform failures instead of aborting the run
}

// DefaultConfig returns the standard run configuration.
func DefaultConfig() *Config {
	return &Config{
		SplitThreshold:   chunk.DefaultThreshold,
		MaxExamples:      render.DefaultMaxExamples,
		Temperature:      0.3,
		FinalTemperature: 0.4,
		ContinueOnError:  true,
	}
}

// Pipeline runs the end-to-end narrative synthesis workflow.
type Pipeline struct {
	extractor *narrative.Extractor
	synth     *synthesize.Synthesizer
	reporter  progress.Reporter
	cfg       *Config
}

// New creates a pipeline around a generator. A nil reporter disables
// progress reporting; a nil config uses DefaultConfig.
func New(gen llmgen.Generator, reporter progress.Reporter, cfg *Config) *Pipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if reporter == nil {
		reporter = progress.Nop{}
	}
	finalModel := cfg.FinalModel
	if finalModel == "" {
		finalModel = cfg.Model
	}
	return &Pipeline{
		extractor: narrative.NewExtractor(gen, cfg.Model, cfg.Temperature, cfg.Topic),
		synth:     synthesize.New(gen, finalModel, cfg.FinalTemperature),
		reporter:  reporter,
		cfg:       cfg,
	}
}

// Run executes the pipeline over a set of posts and returns the report.
// Posts with no cleaned caption get one derived from their raw caption;
// posts that remain empty are dropped. When nothing survives filtering the
// report is well-formed and no generation call is made. Platform failures
// are isolated: the failed platform contributes a placeholder section and a
// Failure entry while the rest of the run continues, unless ContinueOnError
// is off.
func (p *Pipeline) Run(ctx context.Context, posts []core.Post) (core.Report, error) {
	report := core.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	groups := platform.Partition(clean.Records(posts))
	if len(groups) == 0 {
		logger.Warn("no posts left after caption filtering", "run_id", report.RunID)
		p.reporter.Done()
		return report, nil
	}

	for i, g := range groups {
		name := platform.DisplayName(g.Platform)
		p.reporter.Platform(i+1, len(groups), name, len(g.Posts))
		logger.Info("processing platform", "run_id", report.RunID, "platform", g.Platform, "posts", len(g.Posts))

		set, err := p.platformNarratives(ctx, g)
		if err != nil {
			if !p.cfg.ContinueOnError {
				return report, fmt.Errorf("platform %s: %w", g.Platform, err)
			}
			logger.Error("platform failed, continuing with placeholder", err, "run_id", report.RunID, "platform", g.Platform)
			report.Failures = append(report.Failures, core.Failure{
				Platform: g.Platform,
				Stage:    stageOf(err),
				Message:  err.Error(),
			})
			report.Sections = append(report.Sections, core.Section{
				Platform: g.Platform,
				Title:    name,
				Body:     render.Placeholder(g.Platform),
			})
			continue
		}

		report.Sections = append(report.Sections, core.Section{
			Platform: g.Platform,
			Title:    name,
			Body:     render.Section(g.Platform, set, p.cfg.MaxExamples),
		})
	}

	p.synthesizeFinal(ctx, &report)
	p.reporter.Done()
	return report, nil
}

// platformNarratives produces one platform's final narrative set: one
// extraction per chunk, then a merge when the platform was split.
func (p *Pipeline) platformNarratives(ctx context.Context, g platform.Group) (core.NarrativeSet, error) {
	chunks := chunk.Split(g.Posts, p.cfg.SplitThreshold)
	name := platform.DisplayName(g.Platform)

	p.reporter.Stage(name, "extract")
	first, err := p.extractor.ExtractChunk(ctx, g.Platform, chunks[0])
	if err != nil {
		return core.NarrativeSet{}, err
	}
	if len(chunks) == 1 {
		return first, nil
	}

	p.reporter.Stage(name, "extract")
	second, err := p.extractor.ExtractChunk(ctx, g.Platform, chunks[1])
	if err != nil {
		return core.NarrativeSet{}, err
	}

	p.reporter.Stage(name, "merge")
	return p.extractor.Merge(ctx, g.Platform, first, second)
}

// synthesizeFinal runs the cross-platform merge over the concatenated
// sections. Its failure degrades the synthesis to a placeholder instead of
// failing the run: recipients expect a report artifact either way.
func (p *Pipeline) synthesizeFinal(ctx context.Context, report *core.Report) {
	if len(report.Sections) == 0 {
		return
	}

	bodies := make([]string, len(report.Sections))
	for i, s := range report.Sections {
		bodies[i] = s.Body
	}
	combined := strings.Join(bodies, "\n\n")

	p.reporter.Stage("all platforms", "synthesize")
	synthesis, err := p.synth.Final(ctx, combined)
	if err != nil {
		logger.Error("final synthesis failed", err, "run_id", report.RunID)
		report.Failures = append(report.Failures, core.Failure{
			Platform: "all",
			Stage:    "synthesize",
			Message:  err.Error(),
		})
		report.Synthesis = render.ErrorPlaceholder
		return
	}
	report.Synthesis = synthesis
}

func stageOf(err error) string {
	// The merge stage only exists for split platforms; extraction errors are
	// by far the common case, so classify on the wrapped message.
	if strings.Contains(err.Error(), "merge") {
		return "merge"
	}
	return "extract"
}
