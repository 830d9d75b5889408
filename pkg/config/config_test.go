package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
remote: upstream
cooldown: 2.5
gitlab-tokens:
  gitlab.com: glpat-abc
  git.example.org: glpat-def
github-tokens:
  github.com: ghp_123
pipelines:
  running-limit: 2
log:
  file: /tmp/pipeview.log
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Remote != "upstream" {
		t.Errorf("Remote = %q, expected %q", cfg.Remote, "upstream")
	}
	if cfg.CooldownDuration() != 2500*time.Millisecond {
		t.Errorf("CooldownDuration() = %v, expected 2.5s", cfg.CooldownDuration())
	}
	if cfg.Pipelines.RunningLimit != 2 {
		t.Errorf("RunningLimit = %d, expected 2", cfg.Pipelines.RunningLimit)
	}
	if cfg.Log.File != "/tmp/pipeview.log" {
		t.Errorf("Log.File = %q", cfg.Log.File)
	}

	tokens := []struct {
		host     string
		lookup   func(string) string
		expected string
	}{
		{"gitlab.com", cfg.GitLabToken, "glpat-abc"},
		{"git.example.org", cfg.GitLabToken, "glpat-def"},
		{"GitLab.com", cfg.GitLabToken, "glpat-abc"},
		{"gitlab.example.com", cfg.GitLabToken, ""},
		{"github.com", cfg.GitHubToken, "ghp_123"},
		{"gitlab.com", cfg.GitHubToken, ""},
	}
	for _, tt := range tokens {
		if got := tt.lookup(tt.host); got != tt.expected {
			t.Errorf("token for %q = %q, expected %q", tt.host, got, tt.expected)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "gitlab-tokens: {}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Remote != "origin" {
		t.Errorf("Remote = %q, expected origin", cfg.Remote)
	}
	if cfg.CooldownDuration() != 5*time.Second {
		t.Errorf("CooldownDuration() = %v, expected 5s", cfg.CooldownDuration())
	}
	if cfg.Pipelines.RunningLimit != 5 {
		t.Errorf("RunningLimit = %d, expected 5", cfg.Pipelines.RunningLimit)
	}
	if level, err := cfg.LogLevel(); err != nil || level != slog.LevelInfo {
		t.Errorf("LogLevel() = %v, %v, expected INFO", level, err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PIPEVIEW_REMOTE", "fork")
	t.Setenv("PIPEVIEW_COOLDOWN", "1")

	cfg, err := Load(writeConfig(t, "remote: origin\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Remote != "fork" {
		t.Errorf("Remote = %q, expected %q", cfg.Remote, "fork")
	}
	if cfg.CooldownDuration() != time.Second {
		t.Errorf("CooldownDuration() = %v, expected 1s", cfg.CooldownDuration())
	}
}

func TestLoadInvalidCooldown(t *testing.T) {
	_, err := Load(writeConfig(t, "cooldown: 0\n"))
	if !errors.Is(err, ErrInvalidCooldown) {
		t.Errorf("expected ErrInvalidCooldown, got %v", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected an error for a missing --config file")
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{Log: LogConfig{Level: tt.level}}
			level, err := cfg.LogLevel()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LogLevel() error = %v, wantErr %t", err, tt.wantErr)
			}
			if level != tt.expected {
				t.Errorf("LogLevel() = %v, expected %v", level, tt.expected)
			}
		})
	}
}

func TestFallbackGitHubToken(t *testing.T) {
	original := ghToken
	defer func() { ghToken = original }()
	ghToken = func() string { return "gho_from_cli" }

	t.Setenv("GITHUB_TOKEN", "ghp_env")
	if got := FallbackGitHubToken(); got != "ghp_env" {
		t.Errorf("FallbackGitHubToken() = %q, expected the environment token", got)
	}

	t.Setenv("GITHUB_TOKEN", "")
	if got := FallbackGitHubToken(); got != "gho_from_cli" {
		t.Errorf("FallbackGitHubToken() = %q, expected the gh CLI token", got)
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := GetConfigDir(); got != filepath.Join("/xdg", "pipeview") {
		t.Errorf("GetConfigDir() = %q, expected /xdg/pipeview", got)
	}
	if paths := GetConfigPaths(); paths[0] != filepath.Join("/xdg", "pipeview", "config.yaml") {
		t.Errorf("GetConfigPaths()[0] = %q", paths[0])
	}
}

func TestSkeletonRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := CreateSkeletonConfig(path); err != nil {
		t.Fatalf("CreateSkeletonConfig() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read skeleton: %v", err)
	}
	content := string(data)
	for _, want := range []string{"# pipeview configuration file", "gitlab-tokens:", "running-limit: 5", "# Seconds to wait between two refreshes"} {
		if !strings.Contains(content, want) {
			t.Errorf("skeleton is missing %q:\n%s", want, content)
		}
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(skeleton) error: %v", err)
	}
	if cfg.Remote != "origin" || cfg.CooldownDuration() != 5*time.Second || cfg.Pipelines.RunningLimit != 5 {
		t.Errorf("skeleton loaded as %+v", cfg)
	}
}
