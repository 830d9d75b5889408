package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/younsl/pipeview/pkg/snapshot"
)

// DefaultKeyHandler implements the KeyHandler interface
type DefaultKeyHandler struct {
	commands CommandHandlerInterface
}

// NewKeyHandler creates a new key handler
func NewKeyHandler(commands CommandHandlerInterface) KeyHandler {
	return &DefaultKeyHandler{
		commands: commands,
	}
}

// HandleKeyPress handles keyboard input
func (kh *DefaultKeyHandler) HandleKeyPress(msg tea.KeyMsg, app *BubbleApp) (tea.Model, tea.Cmd) {
	// If help is showing, any key closes it (except quit keys)
	if app.showHelp {
		return kh.handleHelpKeys(msg, app)
	}
	return kh.handleMainViewKeys(msg, app)
}

func (kh *DefaultKeyHandler) handleHelpKeys(msg tea.KeyMsg, app *BubbleApp) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		app.cancel()
		return app, tea.Quit
	default:
		app.showHelp = false
		return app, nil
	}
}

func (kh *DefaultKeyHandler) handleMainViewKeys(msg tea.KeyMsg, app *BubbleApp) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		app.cancel()
		return app, tea.Quit

	case "h", "?":
		app.showHelp = true
		return app, nil

	case "r":
		return app.refresh()

	case "o":
		if app.project == nil || app.project.WebURL == "" {
			app.notice = "nothing to open yet"
			return app, nil
		}
		return app, kh.commands.OpenProject(app.project.WebURL)

	case "y":
		url := copyTarget(app.project)
		if url == "" {
			app.notice = "nothing to copy yet"
			return app, nil
		}
		return app, kh.commands.CopyURL(url)

	default:
		var cmd tea.Cmd
		app.viewport, cmd = app.viewport.Update(msg)
		return app, cmd
	}
}

// copyTarget is the latest pipeline's URL, or the project URL when there is
// no pipeline.
func copyTarget(project *snapshot.Project) string {
	if project == nil {
		return ""
	}
	if len(project.Pipelines) > 0 && project.Pipelines[0].Pipeline.WebURL != "" {
		return project.Pipelines[0].Pipeline.WebURL
	}
	return project.WebURL
}
