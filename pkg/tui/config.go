package tui

// AppConfig holds configuration for the TUI application
type AppConfig struct {
	Version string
	Remote  string
}
