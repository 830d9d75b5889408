package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
)

// OpenURL opens url in the default browser.
var OpenURL = browser.OpenURL

// WriteClipboard puts text on the system clipboard.
var WriteClipboard = clipboard.WriteAll

// CommandHandler handles all command operations
type CommandHandler struct {
	monitor Monitor
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(monitor Monitor) CommandHandlerInterface {
	return &CommandHandler{monitor: monitor}
}

func (ch *CommandHandler) Refresh(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		project, err := ch.monitor.Snapshot(ctx)
		if err != nil {
			return errorMsg{err: err}
		}
		return snapshotMsg{project: project}
	}
}

func (ch *CommandHandler) ScheduleRefresh(generation int, delay time.Duration) tea.Cmd {
	ch.monitor.GetProgressTracker().SetNextRefresh(time.Now().Add(delay))
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return refreshMsg{generation: generation}
	})
}

func (ch *CommandHandler) TickCmd() tea.Cmd {
	return tea.Tick(1*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (ch *CommandHandler) OpenProject(url string) tea.Cmd {
	return func() tea.Msg {
		return openResultMsg{err: OpenURL(url)}
	}
}

func (ch *CommandHandler) CopyURL(url string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{url: url, err: WriteClipboard(url)}
	}
}
