package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/younsl/pipeview/pkg/git"
	"github.com/younsl/pipeview/pkg/monitor"
)

const statusSeparator = "  |  "

// StatusInfo is everything the status bar shows.
type StatusInfo struct {
	Width      int
	Repository *git.Repository // nil before the first refresh
	Progress   monitor.RefreshProgress
	LastUpdate time.Time
	Now        time.Time
	Notice     string
}

// UIComponents handles UI rendering
type UIComponents struct {
	config *AppConfig
}

// NewUIComponents creates new UI components
func NewUIComponents(config *AppConfig) UIRenderer {
	return &UIComponents{
		config: config,
	}
}

// RenderStatusBar renders a single line of exactly info.Width cells.
func (ui *UIComponents) RenderStatusBar(info StatusInfo) string {
	parts := []string{ui.title(), ui.location(info.Repository)}

	if !info.LastUpdate.IsZero() {
		parts = append(parts, "updated "+humanize.RelTime(info.LastUpdate, info.Now, "ago", "from now"))
	}
	if timer := ui.getTimerInfo(info.Progress); timer != "" {
		parts = append(parts, timer)
	}
	if info.Notice != "" {
		parts = append(parts, info.Notice)
	}
	parts = append(parts, ui.getKeyBindings())

	line := ui.truncate(strings.Join(parts, statusSeparator), info.Width)
	line = runewidth.FillRight(line, info.Width)

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("4")).
		Render(line)
}

// RenderHelp renders the help overlay
func (ui *UIComponents) RenderHelp(cooldown time.Duration) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Padding(2, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("4"))

	help := fmt.Sprintf(`%s - pipeline dashboard

KEY BINDINGS:
  q, Ctrl+C    Quit
  r            Refresh now
  o            Open the project page in browser
  y            Copy the latest pipeline URL
  j/k, ↑/↓     Scroll
  pgup/pgdn    Scroll a page
  h, ?         Show this help

REFRESH:
  Interval     %s after the previous refresh
  Remote       %s

Press any key to continue...`, ui.title(), cooldown, ui.config.Remote)

	return helpStyle.Render(help)
}

func (ui *UIComponents) title() string {
	switch ui.config.Version {
	case "", "dev":
		return "pipeview dev"
	default:
		return "pipeview v" + strings.TrimPrefix(ui.config.Version, "v")
	}
}

func (ui *UIComponents) location(repo *git.Repository) string {
	if repo == nil {
		return ui.config.Remote
	}
	return fmt.Sprintf("%s/%s @ %s", repo.Remote, repo.Branch, repo.ShortCommit())
}

func (ui *UIComponents) getTimerInfo(progress monitor.RefreshProgress) string {
	switch {
	case progress.State == monitor.StateRefreshing:
		return fmt.Sprintf("refreshing... (%ds)", progress.StateDuration)
	case progress.NextRefreshAt != nil && progress.State == monitor.StateFailed:
		return fmt.Sprintf("refresh failed, retry in %ds", progress.Countdown)
	case progress.NextRefreshAt != nil:
		return fmt.Sprintf("next refresh in %ds", progress.Countdown)
	default:
		return ""
	}
}

func (ui *UIComponents) getKeyBindings() string {
	return "[r]efresh [o]pen [y]ank [h]elp [q]uit"
}

func (ui *UIComponents) truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
