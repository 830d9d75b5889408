package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/younsl/pipeview/pkg/overview"
	"github.com/younsl/pipeview/pkg/snapshot"
)

// BubbleApp is the main Bubble Tea application model
type BubbleApp struct {
	monitor Monitor
	config  *AppConfig
	ctx     context.Context
	cancel  context.CancelFunc

	uiRenderer     UIRenderer
	commandHandler CommandHandlerInterface
	keyHandler     KeyHandler

	// project is the last good snapshot; it survives failed refreshes.
	project    *snapshot.Project
	err        error
	notice     string
	lastUpdate time.Time

	// viewport scrolls frames taller than the terminal.
	viewport viewport.Model

	showHelp   bool
	refreshing bool
	generation int
	width      int
	height     int

	now func() time.Time
}

// NewBubbleApp creates a new Bubble Tea application
func NewBubbleApp(m Monitor, config *AppConfig) *BubbleApp {
	ctx, cancel := context.WithCancel(context.Background())

	commandHandler := NewCommandHandler(m)

	return &BubbleApp{
		monitor:        m,
		config:         config,
		ctx:            ctx,
		cancel:         cancel,
		uiRenderer:     NewUIComponents(config),
		commandHandler: commandHandler,
		keyHandler:     NewKeyHandler(commandHandler),
		viewport:       viewport.New(0, 0),
		refreshing:     true,
		now:            time.Now,
	}
}

// Init starts the first refresh and the countdown ticker
func (app *BubbleApp) Init() tea.Cmd {
	return tea.Batch(
		app.commandHandler.Refresh(app.ctx),
		app.commandHandler.TickCmd(),
	)
}

// Update handles messages and updates the model
func (app *BubbleApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height
		return app, nil

	case tea.KeyMsg:
		return app.keyHandler.HandleKeyPress(msg, app)

	case snapshotMsg:
		app.project = msg.project
		app.err = nil
		app.lastUpdate = app.now()
		return app.refreshDone()

	case errorMsg:
		app.err = msg.err
		return app.refreshDone()

	case refreshMsg:
		if msg.generation != app.generation {
			return app, nil
		}
		return app.refresh()

	case openResultMsg:
		if msg.err != nil {
			slog.Warn("failed to open browser", "error", msg.err)
			app.notice = "failed to open browser"
		}
		return app, nil

	case copyResultMsg:
		if msg.err != nil {
			slog.Warn("failed to copy to clipboard", "error", msg.err)
			app.notice = "failed to copy to clipboard"
			return app, nil
		}
		app.notice = "copied " + msg.url
		return app, nil

	case tickMsg:
		app.monitor.GetProgressTracker().UpdateCountdown()
		return app, app.commandHandler.TickCmd()

	default:
		return app, nil
	}
}

// refresh starts a refresh unless one is already running.
func (app *BubbleApp) refresh() (tea.Model, tea.Cmd) {
	if app.refreshing {
		return app, nil
	}
	app.refreshing = true
	app.notice = ""
	return app, app.commandHandler.Refresh(app.ctx)
}

func (app *BubbleApp) refreshDone() (tea.Model, tea.Cmd) {
	app.refreshing = false
	app.generation++
	return app, app.commandHandler.ScheduleRefresh(app.generation, app.monitor.Cooldown())
}

// View renders the UI
func (app *BubbleApp) View() string {
	if app.showHelp {
		return app.uiRenderer.RenderHelp(app.monitor.Cooldown())
	}
	if app.width <= 0 {
		return ""
	}

	// The frame is rebuilt on every view so ages stay current; the
	// viewport keeps its scroll offset across content updates.
	app.viewport.Width = max(0, app.width-1)
	app.viewport.Height = max(1, app.height-1)
	app.viewport.SetContent(strings.TrimSuffix(app.renderBody(app.viewport.Width), "\n"))

	return app.viewport.View() + "\n" + app.uiRenderer.RenderStatusBar(StatusInfo{
		Width:      app.width - 1,
		Repository: app.monitor.Repository(),
		Progress:   app.monitor.GetProgressTracker().GetProgress(),
		LastUpdate: app.lastUpdate,
		Now:        app.now(),
		Notice:     app.notice,
	})
}

func (app *BubbleApp) renderBody(width int) string {
	if app.err != nil {
		return overview.ErrorFrame(app.err, width)
	}
	if app.project == nil {
		return ""
	}

	frame, err := overview.Render(app.project, width, app.now())
	if err != nil {
		return overview.ErrorFrame(err, width)
	}
	return frame
}

// RunBubbleApp runs the Bubble Tea application
func RunBubbleApp(m Monitor, config *AppConfig) error {
	app := NewBubbleApp(m, config)
	defer app.cancel()

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()

	return err
}
