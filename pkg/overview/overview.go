// Package overview turns a project snapshot into fixed-width terminal text:
// a centered header, one summary per pipeline and a board with one column
// per stage.
package overview

import (
	"strings"
	"time"

	"github.com/younsl/pipeview/pkg/snapshot"
	"github.com/younsl/pipeview/pkg/textgrid"
)

// NoPipelinesNotice is shown in the header when the branch has no pipelines.
const NoPipelinesNotice = "There are no pipelines running for the remote head of the current branch"

// Generator renders blocks for one frame. The clock is read once by the
// caller so all relative ages of a frame agree.
type Generator struct {
	width int
	now   time.Time
}

// New creates a generator for frames that are width cells wide.
func New(width int, now time.Time) *Generator {
	if width < 0 {
		width = 0
	}
	return &Generator{width: width, now: now}
}

// Render renders a whole frame for project.
func Render(project *snapshot.Project, width int, now time.Time) (string, error) {
	return New(width, now).Render(project)
}

// Render renders the header followed by the summary and job board of every pipeline.
func (g *Generator) Render(project *snapshot.Project) (string, error) {
	var b strings.Builder

	header, err := g.Header(project)
	if err != nil {
		return "", err
	}
	b.WriteString(header)

	for _, pj := range project.Pipelines {
		summary, err := g.Pipeline(pj.Pipeline)
		if err != nil {
			return "", err
		}
		b.WriteString(summary)

		board, err := g.JobBoard(pj.Jobs)
		if err != nil {
			return "", err
		}
		b.WriteString(board)
	}

	return b.String(), nil
}

// Header renders the project block.
func (g *Generator) Header(project *snapshot.Project) (string, error) {
	return g.centered(HeaderLines(project))
}

// Pipeline renders the summary block of one pipeline.
func (g *Generator) Pipeline(p snapshot.Pipeline) (string, error) {
	return g.centered(g.PipelineLines(p))
}

// HeaderLines returns the lines of the project block.
func HeaderLines(project *snapshot.Project) []string {
	lines := []string{project.Name, project.WebURL}
	if project.Description != "" {
		lines = append(lines, project.Description)
	}
	if len(project.Pipelines) == 0 {
		lines = append(lines, NoPipelinesNotice)
	}
	return lines
}

// PipelineLines returns the lines of a pipeline summary, ending with a blank separator.
func (g *Generator) PipelineLines(p snapshot.Pipeline) []string {
	ref := p.SHA
	if p.Ref != "" {
		ref = p.Ref + " @ " + p.SHA
	}
	lines := []string{"#" + formatID(p.ID) + "  " + ref, p.WebURL}

	if p.CreatedAt != nil {
		age := g.now.Sub(*p.CreatedAt)
		if age < time.Second {
			age = time.Second
		}
		lines = append(lines, "by "+p.Author+" "+FormatDuration(age)+" ago")
	}

	status := StatusIcon(p.Status, false) + "  " + p.StatusLabel()
	if p.Duration != nil {
		status += " in " + FormatDuration(*p.Duration)
	}
	lines = append(lines, status)

	if p.Coverage != nil {
		lines = append(lines, formatPercent(*p.Coverage)+"% coverage")
	}

	return append(lines, "")
}

func (g *Generator) centered(lines []string) (string, error) {
	return textgrid.Render(
		[][]string{lines},
		[]int{g.width},
		[]textgrid.Alignment{textgrid.AlignCenter},
	)
}

// ErrorFrame renders a failed poll the way a frame is rendered: an "Error"
// title and the message, centered and cut to width.
func ErrorFrame(err error, width int) string {
	if width < 0 {
		width = 0
	}
	// One column with matching widths cannot fail.
	frame, _ := textgrid.Render(
		[][]string{{"Error", err.Error()}},
		[]int{width},
		[]textgrid.Alignment{textgrid.AlignCenter},
	)
	return frame
}
