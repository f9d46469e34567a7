package config

import "time"

// Base application details
const AppName = "scribble"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "scribble.log"
const Version = "0.3.0"

// Canvas defaults
const (
	DefaultMaxWidth    = 600
	DefaultMaxHeight   = 350
	DefaultColor       = "#111827"
	DefaultStrokeWidth = 3
	MinStrokeWidth     = 1
	MaxStrokeWidth     = 20
	DefaultText        = "Text"
	DefaultGridStep    = 20
	DefaultGridColor   = "#e5e7eb"
)

// History
const (
	DefaultHistoryLimit = 50
	CodecRaw            = "raw"
	CodecPNG            = "png"
)

// Export
const (
	DefaultExportPath   = "practice-canvas.png"
	DefaultExportFormat = "png"
)

// Terminal host
const (
	DefaultCellPixels = 4
	DefaultPaper      = "#ffffff"
	StatusBarHeight   = 1
	MessageTimeout    = 4 * time.Second
)
