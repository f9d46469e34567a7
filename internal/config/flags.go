package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/scribble/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values.
type Flags struct {
	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	Width          *int
	Height         *int
	Color          *string
	Stroke         *int
	Grid           *bool
	HistoryCodec   *string
	ExportPath     *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string

	fs *flag.FlagSet
}

// DefineFlags registers the flags on fs (flag.CommandLine when nil).
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.Width = fs.Int("width", 0, "Maximum canvas width in pixels - Overrides config file")
	f.Height = fs.Int("height", 0, "Maximum canvas height in pixels - Overrides config file")
	f.Color = fs.String("color", "", "Initial stroke color as #rrggbb - Overrides config file")
	f.Stroke = fs.Int("stroke", 0, "Initial stroke width (1-20) - Overrides config file")
	f.Grid = fs.Bool("grid", false, "Show the alignment grid on start")
	f.HistoryCodec = fs.String("history-codec", "", "Snapshot encoding for undo history (raw, png)")
	f.ExportPath = fs.String("export", "", "Default export file path - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable")
}

// ParseFlags defines and parses the process flags and returns the remaining arguments.
func (f *Flags) ParseFlags() []string {
	f.DefineFlags(nil)
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides copies every flag that was set on the command line into cfg.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		if verbose {
			logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		}
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "width":
			if *f.Width > 0 {
				cfg.Canvas.MaxWidth = *f.Width
			}
		case "height":
			if *f.Height > 0 {
				cfg.Canvas.MaxHeight = *f.Height
			}
		case "color":
			cfg.Canvas.Color = *f.Color
		case "stroke":
			cfg.Canvas.StrokeWidth = *f.Stroke
		case "grid":
			cfg.Canvas.ShowGrid = *f.Grid
		case "history-codec":
			cfg.History.Codec = *f.HistoryCodec
		case "export":
			if *f.ExportPath != "" {
				cfg.Export.Path = *f.ExportPath
			}
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
