// Package logger provides the filtered slog setup shared by both hosts.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string

	// LogFilePath is the output file. Empty or "-" means stderr.
	LogFilePath string

	// EnabledTags only logs messages carrying one of these tags (if non-empty).
	EnabledTags []string
	// DisabledTags drops messages carrying these tags. Overrides EnabledTags.
	DisabledTags []string

	// EnabledPackages only logs messages from these packages (directory name,
	// e.g. "tool", "history", "app").
	EnabledPackages []string
	// DisabledPackages drops messages from these packages.
	DisabledPackages []string

	// EnabledFiles only logs messages from these base filenames.
	EnabledFiles []string
	// DisabledFiles drops messages from these base filenames.
	DisabledFiles []string

	level               slog.Level
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig creates a Config with default values.
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// process turns the string settings into lookup sets.
func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)

	debugFilterf("process: disabled packages before: %v", c.DisabledPackages)

	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)

	debugFilterf("process: disabled packages after: %v", c.disabledPackagesSet)
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
