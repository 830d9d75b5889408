package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/younsl/pipeview/pkg/git"
	"github.com/younsl/pipeview/pkg/monitor"
	"github.com/younsl/pipeview/pkg/snapshot"
)

// Monitor defines the refresh cycle the application drives
type Monitor interface {
	Snapshot(ctx context.Context) (*snapshot.Project, error)
	Repository() *git.Repository
	GetProgressTracker() *monitor.ProgressTracker
	Cooldown() time.Duration
}

// CommandHandlerInterface defines the commands the application issues
type CommandHandlerInterface interface {
	Refresh(ctx context.Context) tea.Cmd
	ScheduleRefresh(generation int, delay time.Duration) tea.Cmd
	TickCmd() tea.Cmd
	OpenProject(url string) tea.Cmd
	CopyURL(url string) tea.Cmd
}

// UIRenderer defines the interface for rendering UI components
type UIRenderer interface {
	RenderStatusBar(info StatusInfo) string
	RenderHelp(cooldown time.Duration) string
}

// KeyHandler defines the interface for handling keyboard input
type KeyHandler interface {
	HandleKeyPress(msg tea.KeyMsg, app *BubbleApp) (tea.Model, tea.Cmd)
}
