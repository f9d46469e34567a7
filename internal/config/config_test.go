package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), nil, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.MaxWidth != 600 || cfg.Canvas.MaxHeight != 350 {
		t.Errorf("size = %dx%d, want 600x350", cfg.Canvas.MaxWidth, cfg.Canvas.MaxHeight)
	}
	if cfg.Canvas.Color != "#111827" || cfg.Canvas.StrokeWidth != 3 || cfg.Canvas.Text != "Text" {
		t.Errorf("unexpected canvas defaults: %+v", cfg.Canvas)
	}
	if cfg.History.Limit != 50 || cfg.History.Codec != CodecRaw {
		t.Errorf("unexpected history defaults: %+v", cfg.History)
	}
	if cfg.Export.Path != "practice-canvas.png" {
		t.Errorf("export path = %q", cfg.Export.Path)
	}
}

func TestLoadFileAndValidate(t *testing.T) {
	path := writeConfig(t, `
[canvas]
width = 800
color = "not-a-color"
stroke_width = 40
grid_step = 25

[history]
limit = 10
codec = "PNG"

[export]
format = "gif"

[plugins.autosave]
enabled = true
interval = "30s"
`)
	cfg, err := Load(path, nil, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.MaxWidth != 800 || cfg.Canvas.MaxHeight != 350 {
		t.Errorf("size = %dx%d, want 800x350", cfg.Canvas.MaxWidth, cfg.Canvas.MaxHeight)
	}
	if cfg.Canvas.Color != DefaultColor {
		t.Errorf("invalid color kept: %q", cfg.Canvas.Color)
	}
	if cfg.Canvas.StrokeWidth != DefaultStrokeWidth {
		t.Errorf("out-of-range stroke kept: %d", cfg.Canvas.StrokeWidth)
	}
	if cfg.Canvas.GridStep != 25 {
		t.Errorf("grid step = %d", cfg.Canvas.GridStep)
	}
	if cfg.History.Limit != 10 || cfg.History.Codec != CodecPNG {
		t.Errorf("history = %+v", cfg.History)
	}
	if cfg.Export.Format != DefaultExportFormat {
		t.Errorf("unsupported format kept: %q", cfg.Export.Format)
	}
	if v, ok := cfg.PluginValue("autosave", "enabled"); !ok || v != true {
		t.Errorf("plugin value = %v, %v", v, ok)
	}
	if _, ok := cfg.PluginValue("missing", "x"); ok {
		t.Error("missing plugin table reported a value")
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[canvas\nwidth = ")
	cfg, err := Load(path, nil, false)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg == nil || cfg.Canvas.MaxWidth != DefaultMaxWidth {
		t.Error("defaults should survive a parse error")
	}
}

func TestFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("scribble", flag.ContinueOnError)
	var f Flags
	f.DefineFlags(fs)
	if err := fs.Parse([]string{"-width", "320", "-stroke", "7", "-grid", "-log-tags", "history, resize", "-history-codec", "png"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"), &f, false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.MaxWidth != 320 || cfg.Canvas.StrokeWidth != 7 || !cfg.Canvas.ShowGrid {
		t.Errorf("canvas overrides not applied: %+v", cfg.Canvas)
	}
	if cfg.History.Codec != CodecPNG {
		t.Errorf("codec = %q", cfg.History.Codec)
	}
	if len(cfg.Logger.EnabledTags) != 2 || cfg.Logger.EnabledTags[1] != "resize" {
		t.Errorf("tags = %v", cfg.Logger.EnabledTags)
	}
	// Unset flags leave file/default values alone.
	if cfg.Canvas.MaxHeight != DefaultMaxHeight {
		t.Errorf("height changed without flag: %d", cfg.Canvas.MaxHeight)
	}
}
