package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the reader's settings.
type Config struct {
	// Content is a directory, an http(s) base URL or "sample".
	Content     string
	DefaultHash string
	Store       StoreConfig
	UI          UIConfig
	Search      SearchConfig
	Print       PrintConfig
	Log         LogConfig
}

// StoreConfig selects where bookmarks, progress and theme are kept.
type StoreConfig struct {
	// Backend is "file", "sqlite", "memory" or empty to infer from Path.
	Backend string
	Path    string
}

// UIConfig tunes the terminal UI.
type UIConfig struct {
	Transition   time.Duration
	Highlight    time.Duration
	Notification time.Duration
	// Watch reloads directory content when files change.
	Watch bool
	// Poll reloads remote content at this interval; zero disables it.
	Poll time.Duration
}

// SearchConfig bounds queries and results.
type SearchConfig struct {
	MinQuery   int
	MaxResults int
}

// PrintConfig names the command that receives the print page.
type PrintConfig struct {
	Command string
	Args    []string
}

// LogConfig places the log file.
type LogConfig struct {
	Path  string
	Level string
}

const (
	defaultConfigPath   = "~/.config/notesnav/config.toml"
	defaultContent      = "sample"
	defaultStorePath    = "~/.local/share/notesnav/store.json"
	defaultLogPath      = "~/.local/state/notesnav/notesnav.log"
	defaultLogLevel     = "info"
	defaultPrintCommand = "lp"
	defaultTransition   = 300 * time.Millisecond
	defaultHighlight    = 2 * time.Second
	defaultNotification = 3 * time.Second
	defaultMinQuery     = 2
	defaultMaxResults   = 10
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Content: defaultContent,
		Store:   StoreConfig{Path: mustExpand(defaultStorePath)},
		UI: UIConfig{
			Transition:   defaultTransition,
			Highlight:    defaultHighlight,
			Notification: defaultNotification,
			Watch:        true,
		},
		Search: SearchConfig{MinQuery: defaultMinQuery, MaxResults: defaultMaxResults},
		Print:  PrintConfig{Command: defaultPrintCommand},
		Log:    LogConfig{Path: mustExpand(defaultLogPath), Level: defaultLogLevel},
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Content     string `toml:"content"`
		DefaultHash string `toml:"default_hash"`
		Store       struct {
			Backend string `toml:"backend"`
			Path    string `toml:"path"`
		} `toml:"store"`
		UI struct {
			TransitionMS   *int  `toml:"transition_ms"`
			HighlightMS    *int  `toml:"highlight_ms"`
			NotificationMS *int  `toml:"notification_ms"`
			Watch          *bool `toml:"watch"`
			PollSeconds    int   `toml:"poll_seconds"`
		} `toml:"ui"`
		Search struct {
			MinQuery   int `toml:"min_query"`
			MaxResults int `toml:"max_results"`
		} `toml:"search"`
		Print struct {
			Command string   `toml:"command"`
			Args    []string `toml:"args"`
		} `toml:"print"`
		Log struct {
			Path  string `toml:"path"`
			Level string `toml:"level"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Content); v != "" {
		cfg.Content = expandContent(v)
	}
	cfg.DefaultHash = strings.TrimPrefix(strings.TrimSpace(raw.DefaultHash), "#")

	if v := strings.ToLower(strings.TrimSpace(raw.Store.Backend)); v != "" {
		cfg.Store.Backend = v
	}
	if v := strings.TrimSpace(raw.Store.Path); v != "" {
		cfg.Store.Path = mustExpand(v)
	}

	cfg.UI.Transition = millis(raw.UI.TransitionMS, defaultTransition)
	cfg.UI.Highlight = millis(raw.UI.HighlightMS, defaultHighlight)
	cfg.UI.Notification = millis(raw.UI.NotificationMS, defaultNotification)
	if raw.UI.Watch != nil {
		cfg.UI.Watch = *raw.UI.Watch
	}
	if raw.UI.PollSeconds > 0 {
		cfg.UI.Poll = time.Duration(raw.UI.PollSeconds) * time.Second
	}

	if raw.Search.MinQuery > 0 {
		cfg.Search.MinQuery = raw.Search.MinQuery
	}
	if raw.Search.MaxResults > 0 {
		cfg.Search.MaxResults = raw.Search.MaxResults
	}

	if v := strings.TrimSpace(raw.Print.Command); v != "" {
		cfg.Print.Command = v
	}
	cfg.Print.Args = filterStrings(raw.Print.Args)

	if v := strings.TrimSpace(raw.Log.Path); v != "" {
		cfg.Log.Path = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Log.Level)); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}

// millis converts an optional millisecond count; negative values use def.
func millis(v *int, def time.Duration) time.Duration {
	if v == nil || *v < 0 {
		return def
	}
	return time.Duration(*v) * time.Millisecond
}

// expandContent expands local paths but leaves URLs and "sample" alone.
func expandContent(v string) string {
	if v == defaultContent || strings.Contains(v, "://") {
		return v
	}
	return mustExpand(v)
}

func filterStrings(values []string) []string {
	var out []string
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// ExpandPath expands a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
