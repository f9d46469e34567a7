package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bethropolis/scribble/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config             `toml:"logger"`
	Canvas   CanvasConfig              `toml:"canvas"`
	History  HistoryConfig             `toml:"history"`
	Export   ExportConfig              `toml:"export"`
	Terminal TerminalConfig            `toml:"terminal"`
	Plugins  map[string]map[string]any `toml:"plugins"`
}

// CanvasConfig holds drawing defaults and the logical maximum size.
type CanvasConfig struct {
	MaxWidth    int    `toml:"width"`
	MaxHeight   int    `toml:"height"`
	Color       string `toml:"color"`
	StrokeWidth int    `toml:"stroke_width"`
	Text        string `toml:"text"`
	GridStep    int    `toml:"grid_step"`
	GridColor   string `toml:"grid_color"`
	ShowGrid    bool   `toml:"show_grid"`
}

// HistoryConfig controls the undo stack.
type HistoryConfig struct {
	Limit int    `toml:"limit"`
	Codec string `toml:"codec"` // "raw" or "png"
}

// ExportConfig controls where ExportImage output is written by the hosts.
type ExportConfig struct {
	Path   string `toml:"path"`
	Format string `toml:"format"` // png, bmp, tiff, pdf
}

// TerminalConfig holds settings for the terminal host only.
type TerminalConfig struct {
	CellPixels int    `toml:"cell_pixels"` // surface pixels per terminal column
	Paper      string `toml:"paper"`
	Theme      string `toml:"theme"` // optional theme file
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Canvas: CanvasConfig{
			MaxWidth:    DefaultMaxWidth,
			MaxHeight:   DefaultMaxHeight,
			Color:       DefaultColor,
			StrokeWidth: DefaultStrokeWidth,
			Text:        DefaultText,
			GridStep:    DefaultGridStep,
			GridColor:   DefaultGridColor,
		},
		History: HistoryConfig{
			Limit: DefaultHistoryLimit,
			Codec: CodecRaw,
		},
		Export: ExportConfig{
			Path:   DefaultExportPath,
			Format: DefaultExportFormat,
		},
		Terminal: TerminalConfig{
			CellPixels: DefaultCellPixels,
			Paper:      DefaultPaper,
		},
		Plugins: map[string]map[string]any{},
	}
}

// loadFromFile decodes filePath on top of cfg. A missing file is not an error.
func loadFromFile(cfg *Config, filePath string, verbose bool) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	if verbose {
		logger.Infof("Loaded configuration from: %s", filePath)
	}
	return nil
}

func validColor(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	if c.Canvas.MaxWidth <= 0 || c.Canvas.MaxHeight <= 0 {
		c.Canvas.MaxWidth = defaults.Canvas.MaxWidth
		c.Canvas.MaxHeight = defaults.Canvas.MaxHeight
	}
	if !validColor(c.Canvas.Color) {
		c.Canvas.Color = defaults.Canvas.Color
	}
	if c.Canvas.StrokeWidth < MinStrokeWidth || c.Canvas.StrokeWidth > MaxStrokeWidth {
		c.Canvas.StrokeWidth = defaults.Canvas.StrokeWidth
	}
	if c.Canvas.GridStep <= 0 {
		c.Canvas.GridStep = defaults.Canvas.GridStep
	}
	if !validColor(c.Canvas.GridColor) {
		c.Canvas.GridColor = defaults.Canvas.GridColor
	}

	if c.History.Limit < 1 {
		c.History.Limit = defaults.History.Limit
	}
	c.History.Codec = strings.ToLower(c.History.Codec)
	if c.History.Codec != CodecRaw && c.History.Codec != CodecPNG {
		c.History.Codec = defaults.History.Codec
	}

	if c.Export.Path == "" {
		c.Export.Path = defaults.Export.Path
	}
	c.Export.Format = strings.ToLower(c.Export.Format)
	switch c.Export.Format {
	case "png", "bmp", "tiff", "pdf":
	default:
		c.Export.Format = defaults.Export.Format
	}

	if c.Terminal.CellPixels < 1 {
		c.Terminal.CellPixels = defaults.Terminal.CellPixels
	}
	if !validColor(c.Terminal.Paper) {
		c.Terminal.Paper = defaults.Terminal.Paper
	}
	if c.Plugins == nil {
		c.Plugins = map[string]map[string]any{}
	}
}

// DefaultPath returns the per-user config file location, or "" if unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// Load builds a configuration from defaults, the file at path (or the default
// location when path is empty) and any flags that were set.
func Load(path string, flags *Flags, verbose bool) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := path
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(cfg, effectivePath, verbose)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg, verbose)
	}

	cfg.validate()
	return cfg, err
}

// LoadConfig loads the process-wide configuration once. The logger is not
// initialized yet, so loading is silent.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags, false)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// PluginValue looks up a plugin setting from the [plugins.<name>] table.
func (c *Config) PluginValue(plugin, key string) (any, bool) {
	table, ok := c.Plugins[plugin]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}
