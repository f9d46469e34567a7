package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bethropolis/scribble/internal/logger"
)

// TomlStyleDef is a single style in a theme file.
type TomlStyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// TomlTheme is the layout of a theme file.
type TomlTheme struct {
	Name     string                  `toml:"name"`
	IsDark   bool                    `toml:"is_dark"`
	Paper    string                  `toml:"paper"`
	Swatches []string                `toml:"swatches"`
	Styles   map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML theme file.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	t, err := ParseTheme(string(data))
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		logger.Debugf("Theme file '%s' missing 'name', using filename '%s'", filePath, t.Name)
	}
	logger.Debugf("Successfully loaded theme '%s' from '%s'", t.Name, filePath)
	return t, nil
}

// ParseTheme decodes theme TOML. Missing styles, paper and swatches are
// taken from ScribbleDark.
func ParseTheme(data string) (*Theme, error) {
	var tt TomlTheme
	metadata, err := toml.Decode(data, &tt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", tt.Name, undecoded)
	}

	t := &Theme{
		Name:     tt.Name,
		IsDark:   tt.IsDark,
		Styles:   make(map[string]tcell.Style, len(ScribbleDark.Styles)),
		Paper:    ScribbleDark.Paper,
		Swatches: append([]string(nil), ScribbleDark.Swatches...),
	}
	for k, v := range ScribbleDark.Styles {
		t.Styles[k] = v
	}

	if tt.Paper != "" {
		c, err := colorful.Hex(tt.Paper)
		if err != nil {
			return nil, fmt.Errorf("invalid paper color '%s': %w", tt.Paper, err)
		}
		t.Paper = nrgba(c)
	}
	if len(tt.Swatches) > 0 {
		t.Swatches = t.Swatches[:0]
		for _, s := range tt.Swatches {
			if _, err := colorful.Hex(s); err != nil {
				logger.Warnf("Theme '%s': skipping invalid swatch '%s'", tt.Name, s)
				continue
			}
			t.Swatches = append(t.Swatches, strings.ToLower(s))
		}
	}

	baseStyle := t.Styles[StyleDefault]
	if def, ok := tt.Styles[StyleDefault]; ok {
		baseStyle, err = convertTomlStyle(def, tcell.StyleDefault)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse 'Default' style: %v", tt.Name, err)
			baseStyle = t.Styles[StyleDefault]
		}
		t.Styles[StyleDefault] = baseStyle
	}
	for name, def := range tt.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := convertTomlStyle(def, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", tt.Name, name, err)
			continue
		}
		t.Styles[name] = style
	}
	return t, nil
}

// convertTomlStyle applies a definition on top of baseStyle.
func convertTomlStyle(def TomlStyleDef, baseStyle tcell.Style) (tcell.Style, error) {
	style := baseStyle

	if def.Fg != nil {
		c, err := parseColorString(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *def.Fg, err)
		}
		style = style.Foreground(c)
	}
	if def.Bg != nil {
		c, err := parseColorString(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *def.Bg, err)
		}
		style = style.Background(c)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// parseColorString accepts #rrggbb, "reset" and "default".
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if !strings.HasPrefix(s, "#") || len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
	}
	return HexColor(s)
}
