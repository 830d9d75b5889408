package overview

import (
	"fmt"

	"github.com/younsl/pipeview/pkg/snapshot"
	"github.com/younsl/pipeview/pkg/textgrid"
)

// Artifacts GitLab attaches to every job; they are never listed.
var reservedArtifacts = map[string]bool{
	"job.log":     true,
	"metadata.gz": true,
}

// Stages returns the distinct stage names in the order they are first seen
// when walking jobs from the last one to the first one. The API lists the
// newest job first, so this is the order the stages ran in.
func Stages(jobs []snapshot.Job) []string {
	var stages []string
	seen := make(map[string]bool)
	for i := len(jobs) - 1; i >= 0; i-- {
		stage := jobs[i].Stage
		if !seen[stage] {
			seen[stage] = true
			stages = append(stages, stage)
		}
	}
	return stages
}

// StageColumn returns the header line of stage followed by the lines of each
// of its jobs, walking jobs in the same reverse order as Stages.
func StageColumn(stage string, jobs []snapshot.Job) []string {
	lines := []string{fmt.Sprintf("=====  %s  =====", stage)}
	for i := len(jobs) - 1; i >= 0; i-- {
		if jobs[i].Stage == stage {
			lines = append(lines, JobLines(jobs[i])...)
		}
	}
	return lines
}

// JobLines returns the block of one job, starting with a blank separator.
func JobLines(job snapshot.Job) []string {
	duration := FormatDuration(0)
	if job.Duration != nil {
		duration = FormatDuration(*job.Duration)
	}

	lines := []string{
		"",
		StatusIcon(job.Status, job.AllowFailure) + "  " + job.Name,
		duration + " " + job.Runner,
	}
	if job.Coverage != nil {
		lines = append(lines, "Coverage: "+formatPercent(*job.Coverage)+"%")
	}
	for _, artifact := range job.Artifacts {
		if reservedArtifacts[artifact] {
			continue
		}
		lines = append(lines, "Artifact: "+artifact)
	}
	return lines
}

// JobBoard renders one centered column per stage. Each stage gets
// width/stages-1 cells; a one cell gutter separates stages and a filler
// column pads every row to the full width. Without jobs the board is empty.
func (g *Generator) JobBoard(jobs []snapshot.Job) (string, error) {
	stages := Stages(jobs)
	if len(stages) == 0 {
		return "", nil
	}

	perStage := g.width/len(stages) - 1
	if perStage < 0 {
		perStage = 0
	}

	var (
		columns [][]string
		widths  []int
		aligns  []textgrid.Alignment
		used    int
	)
	for i, stage := range stages {
		if i > 0 && perStage > 0 {
			columns = append(columns, nil)
			widths = append(widths, 1)
			aligns = append(aligns, textgrid.AlignLeft)
			used++
		}
		columns = append(columns, StageColumn(stage, jobs))
		widths = append(widths, perStage)
		aligns = append(aligns, textgrid.AlignCenter)
		used += perStage
	}
	if rest := g.width - used; rest > 0 {
		columns = append(columns, nil)
		widths = append(widths, rest)
		aligns = append(aligns, textgrid.AlignLeft)
	}

	return textgrid.Render(columns, widths, aligns)
}
