package overview

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/younsl/pipeview/pkg/snapshot"
	"github.com/younsl/pipeview/pkg/textgrid"
)

func seconds(n int) *time.Duration {
	d := time.Duration(n) * time.Second
	return &d
}

func percent(v float64) *float64 {
	return &v
}

func TestStages(t *testing.T) {
	tests := []struct {
		name     string
		jobs     []snapshot.Job
		expected []string
	}{
		{
			name:     "no jobs",
			jobs:     nil,
			expected: nil,
		},
		{
			name: "newest job first",
			jobs: []snapshot.Job{
				{Name: "deploy", Stage: "deploy"},
				{Name: "unit", Stage: "test"},
				{Name: "lint", Stage: "test"},
				{Name: "compile", Stage: "build"},
			},
			expected: []string{"build", "test", "deploy"},
		},
		{
			name: "interleaved stages keep first sighting from the end",
			jobs: []snapshot.Job{
				{Name: "a", Stage: "x"},
				{Name: "b", Stage: "y"},
				{Name: "c", Stage: "x"},
				{Name: "d", Stage: "z"},
			},
			expected: []string{"z", "x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Stages(tt.jobs)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Stages() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestJobLines(t *testing.T) {
	job := snapshot.Job{
		Name:      "unit",
		Stage:     "test",
		Status:    snapshot.StatusSuccess,
		Duration:  seconds(61),
		Runner:    "docker-runner-3",
		Coverage:  percent(92.25),
		Artifacts: []string{"job.log", "report.xml", "metadata.gz", "coverage.html"},
	}

	expected := []string{
		"",
		IconSuccess + "  unit",
		"1 minute 1 second docker-runner-3",
		"Coverage: 92.25%",
		"Artifact: report.xml",
		"Artifact: coverage.html",
	}
	if result := JobLines(job); !reflect.DeepEqual(result, expected) {
		t.Errorf("JobLines() = %q, expected %q", result, expected)
	}
}

func TestJobLinesWithoutOptionalFields(t *testing.T) {
	job := snapshot.Job{Name: "lint", Status: snapshot.StatusFailed, AllowFailure: true}

	// The runner slot stays even when empty.
	expected := []string{"", IconAllowedFailure + "  lint", "not started yet "}
	if result := JobLines(job); !reflect.DeepEqual(result, expected) {
		t.Errorf("JobLines() = %q, expected %q", result, expected)
	}
}

func TestStageColumnGroupsJobs(t *testing.T) {
	jobs := []snapshot.Job{
		{Name: "integration", Stage: "test", Status: snapshot.StatusRunning},
		{Name: "compile", Stage: "build", Status: snapshot.StatusSuccess},
		{Name: "unit", Stage: "test", Status: snapshot.StatusSuccess},
	}

	column := StageColumn("test", jobs)
	if column[0] != "=====  test  =====" {
		t.Errorf("header = %q", column[0])
	}

	joined := strings.Join(column, "\n")
	if strings.Contains(joined, "compile") {
		t.Errorf("test column contains a build job:\n%s", joined)
	}
	unit := strings.Index(joined, "unit")
	integration := strings.Index(joined, "integration")
	if unit < 0 || integration < 0 || unit > integration {
		t.Errorf("expected unit before integration in reverse scan order:\n%s", joined)
	}
}

func TestJobBoardLayout(t *testing.T) {
	jobs := []snapshot.Job{
		{Name: "unit", Stage: "test", Status: snapshot.StatusFailed, Runner: "r2", Artifacts: []string{"job.log", "junit.xml"}},
		{Name: "compile", Stage: "build", Status: snapshot.StatusSuccess, Duration: seconds(5), Runner: "r1"},
	}

	board, err := New(80, time.Now()).JobBoard(jobs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := strings.Split(strings.TrimSuffix(board, "\n"), "\n")
	for i, row := range rows {
		if w := textgrid.Width(row); w != 80 {
			t.Errorf("row %d %q has width %d, expected 80", i, row, w)
		}
	}

	// 80/2-1 = 39 cells per stage, then a gutter, then the second stage.
	perStage := 39
	build := strings.TrimSpace(textgrid.Truncate(rows[0], perStage))
	if build != "=====  build  =====" {
		t.Errorf("first stage header = %q", build)
	}
	if !strings.Contains(rows[0], "=====  test  =====") {
		t.Errorf("second stage header missing: %q", rows[0])
	}
	if strings.Index(rows[0], "build") > strings.Index(rows[0], "test") {
		t.Errorf("build must be the left column: %q", rows[0])
	}

	if strings.Contains(board, "job.log") {
		t.Errorf("reserved artifact rendered:\n%s", board)
	}
	if !strings.Contains(board, "Artifact: junit.xml") {
		t.Errorf("artifact missing:\n%s", board)
	}
	if !strings.Contains(board, "5 seconds r1") || !strings.Contains(board, "not started yet r2") {
		t.Errorf("duration/runner lines missing:\n%s", board)
	}
}

func TestJobBoardWithoutStages(t *testing.T) {
	board, err := New(80, time.Now()).JobBoard(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board != "" {
		t.Errorf("JobBoard(nil) = %q, expected empty", board)
	}
}

func TestJobBoardNarrowTerminal(t *testing.T) {
	var jobs []snapshot.Job
	for _, stage := range []string{"a", "b", "c", "d", "e", "f"} {
		jobs = append(jobs, snapshot.Job{Name: "job", Stage: stage})
	}

	board, err := New(5, time.Now()).JobBoard(jobs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, row := range strings.Split(strings.TrimSuffix(board, "\n"), "\n") {
		if w := textgrid.Width(row); w != 5 {
			t.Errorf("row %d %q has width %d, expected 5", i, row, w)
		}
	}
}
