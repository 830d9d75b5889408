package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Keys are separated by "::" so that host names like "gitlab.com" stay
// single keys inside the token maps.
const keyDelimiter = "::"

var ErrInvalidCooldown = errors.New("cooldown must be a positive number of seconds")

type Config struct {
	Remote       string            `mapstructure:"remote"`
	Cooldown     float64           `mapstructure:"cooldown"`
	GitLabTokens map[string]string `mapstructure:"gitlab-tokens"`
	GitHubTokens map[string]string `mapstructure:"github-tokens"`
	Pipelines    PipelinesConfig   `mapstructure:"pipelines"`
	Log          LogConfig         `mapstructure:"log"`
}

type PipelinesConfig struct {
	RunningLimit int `mapstructure:"running-limit"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load reads the configuration. An empty configFile searches the default
// locations and writes a skeleton when nothing is found.
func Load(configFile string) (*Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range GetConfigPaths() {
		v.AddConfigPath(filepath.Dir(path))
	}

	// SetConfigName clears an explicit file, so it goes first.
	switch {
	case configFile != "":
		v.SetConfigFile(configFile)
	case !ConfigExists() && legacyConfigExists():
		v.SetConfigFile(LegacyConfigPath())
	case !ConfigExists():
		configPath, err := TryCreateDefaultConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to create default config: %v\n", err)
		} else {
			v.SetConfigFile(configPath)
		}
	}

	v.SetEnvPrefix("PIPEVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("remote", "origin")
	v.SetDefault("cooldown", 5.0)
	v.SetDefault("pipelines::running-limit", 5)
	v.SetDefault("log::level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks values a user can get wrong in the file or on the command line.
func (c *Config) Validate() error {
	if c.Cooldown <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidCooldown, c.Cooldown)
	}
	if c.Remote == "" {
		c.Remote = "origin"
	}
	if c.Pipelines.RunningLimit < 0 {
		c.Pipelines.RunningLimit = 0
	}
	return nil
}

// CooldownDuration returns the pause between two refreshes.
func (c *Config) CooldownDuration() time.Duration {
	return time.Duration(c.Cooldown * float64(time.Second))
}

// LogLevel parses log.level, e.g. "debug" or "warn".
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// GitLabToken returns the configured token for host, if any.
func (c *Config) GitLabToken(host string) string {
	return lookupToken(c.GitLabTokens, host)
}

// GitHubToken returns the configured token for host, if any.
func (c *Config) GitHubToken(host string) string {
	return lookupToken(c.GitHubTokens, host)
}

// Viper lower-cases map keys.
func lookupToken(tokens map[string]string, host string) string {
	if token, ok := tokens[host]; ok {
		return token
	}
	return tokens[strings.ToLower(host)]
}

// FallbackGitLabToken returns GITLAB_TOKEN.
func FallbackGitLabToken() string {
	return os.Getenv("GITLAB_TOKEN")
}

// FallbackGitHubToken returns GITHUB_TOKEN or the token of a logged in gh CLI.
func FallbackGitHubToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	return ghToken()
}

var ghToken = getGHToken

func getGHToken() string {
	cmd := exec.Command("gh", "auth", "token")
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
