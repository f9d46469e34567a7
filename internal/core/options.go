package core

import (
	"github.com/bethropolis/scribble/internal/config"
)

// Options configures a Canvas.
type Options struct {
	MaxWidth     int
	MaxHeight    int
	Color        string
	StrokeWidth  int
	Text         string
	GridStep     int
	GridColor    string
	ShowGrid     bool
	HistoryLimit int
	Codec        string
}

// DefaultOptions mirrors the built-in configuration defaults.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewDefaultConfig())
}

// OptionsFromConfig extracts canvas options from the application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxWidth:     cfg.Canvas.MaxWidth,
		MaxHeight:    cfg.Canvas.MaxHeight,
		Color:        cfg.Canvas.Color,
		StrokeWidth:  cfg.Canvas.StrokeWidth,
		Text:         cfg.Canvas.Text,
		GridStep:     cfg.Canvas.GridStep,
		GridColor:    cfg.Canvas.GridColor,
		ShowGrid:     cfg.Canvas.ShowGrid,
		HistoryLimit: cfg.History.Limit,
		Codec:        cfg.History.Codec,
	}
}
