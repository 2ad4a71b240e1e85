// Package progress reports coarse pipeline progress to the surrounding
// command. Reporting is advisory: the pipeline behaves identically with the
// no-op reporter.
package progress

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Reporter receives coarse progress events during a pipeline run.
type Reporter interface {
	// Platform is called once per platform before its chunks are processed.
	Platform(index, total int, name string, posts int)
	// Stage is called around long-running steps ("extract", "merge",
	// "synthesize").
	Stage(name, stage string)
	// Done is called once when the run finishes.
	Done()
}

// Nop discards all progress events.
type Nop struct{}

func (Nop) Platform(int, int, string, int) {}
func (Nop) Stage(string, string)           {}
func (Nop) Done()                          {}

var (
	platformStyle = lipgloss.NewStyle().Bold(true)
	stageStyle    = lipgloss.NewStyle().Faint(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Terminal writes styled progress lines to a writer, typically stderr.
type Terminal struct {
	Out io.Writer
}

func (t Terminal) Platform(index, total int, name string, posts int) {
	fmt.Fprintf(t.Out, "%s %d post(s)\n",
		platformStyle.Render(fmt.Sprintf("[%d/%d] %s:", index, total, name)), posts)
}

func (t Terminal) Stage(name, stage string) {
	fmt.Fprintf(t.Out, "%s\n", stageStyle.Render(fmt.Sprintf("  %s: %s...", name, stage)))
}

func (t Terminal) Done() {
	fmt.Fprintf(t.Out, "%s\n", doneStyle.Render("done"))
}
