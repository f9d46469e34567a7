// Package tool implements the pointer-driven drawing state machine.
package tool

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the active drawing tool.
type Kind int

const (
	Pen Kind = iota
	Eraser
	Line
	Rectangle
	Circle
	Text
)

// ErrUnknownTool is returned by ParseKind for names it does not know.
var ErrUnknownTool = errors.New("unknown tool")

var kindNames = [...]string{
	Pen:       "pen",
	Eraser:    "eraser",
	Line:      "line",
	Rectangle: "rectangle",
	Circle:    "circle",
	Text:      "text",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every tool in display order.
func Kinds() []Kind {
	return []Kind{Pen, Eraser, Line, Rectangle, Circle, Text}
}

// ParseKind maps a tool name (case-insensitive, "rect" accepted) to a Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "rect" {
		return Rectangle, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return Pen, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// isShape reports whether the tool previews a shape while dragging.
func (k Kind) isShape() bool {
	return k == Line || k == Rectangle || k == Circle
}
