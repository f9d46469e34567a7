package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/bethropolis/scribble/internal/config"
	"github.com/bethropolis/scribble/internal/core/surface"
	"github.com/bethropolis/scribble/internal/core/tool"
	"github.com/bethropolis/scribble/internal/logger"
)

// colorSwatch is a tappable square of ink.
type colorSwatch struct {
	widget.BaseWidget
	hex      string
	color    color.Color
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	c, err := surface.ParseColor(hex)
	if err != nil {
		logger.Warnf("GUI: bad swatch %q: %v", hex, err)
	}
	s := &colorSwatch{hex: hex, color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.hex)
	}
}

// controls are the toolbar widgets that mirror canvas state.
type controls struct {
	tool  *widget.Select
	width *widget.Slider
	text  *widget.Entry
	grid  *widget.Check
	undo  *widget.Button
	redo  *widget.Button
}

// newToolbar builds the row above the board.
func (w *Window) newToolbar(swatches []string) fyne.CanvasObject {
	c := w.canvas

	var names []string
	for _, k := range tool.Kinds() {
		names = append(names, k.String())
	}
	w.controls.tool = widget.NewSelect(names, func(name string) {
		if err := c.SetToolByName(name); err != nil {
			w.showError(err)
		}
	})
	w.controls.tool.SetSelected(c.Tool().String())

	colorBox := container.NewHBox()
	for _, hex := range swatches {
		colorBox.Add(newColorSwatch(hex, func(hex string) {
			if err := c.SetColor(hex); err != nil {
				w.showError(err)
			}
		}))
	}

	w.controls.width = widget.NewSlider(config.MinStrokeWidth, config.MaxStrokeWidth)
	w.controls.width.Step = 1
	w.controls.width.SetValue(float64(c.StrokeWidth()))
	w.controls.width.OnChanged = func(v float64) {
		c.SetStrokeWidth(int(v))
	}
	widthBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), w.controls.width)

	w.controls.text = widget.NewEntry()
	w.controls.text.SetText(c.Text())
	w.controls.text.OnChanged = c.SetTextContent
	textBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(140, 35)), w.controls.text)

	w.controls.grid = widget.NewCheck("Grid", func(v bool) {
		if v != c.GridVisible() {
			c.SetGridVisible(v)
			w.board.Refresh()
		}
	})
	w.controls.grid.SetChecked(c.GridVisible())

	w.controls.undo = widget.NewButtonWithIcon("", fynetheme.ContentUndoIcon(), w.undo)
	w.controls.redo = widget.NewButtonWithIcon("", fynetheme.ContentRedoIcon(), w.redo)
	for _, btn := range []*widget.Button{w.controls.undo, w.controls.redo} {
		btn.Importance = widget.LowImportance
	}

	actions := widget.NewToolbar(
		widget.NewToolbarAction(fynetheme.DeleteIcon(), w.clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(fynetheme.DocumentSaveIcon(), w.exportDialog),
		widget.NewToolbarAction(fynetheme.ContentCopyIcon(), w.copyDataURL),
	)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		w.controls.tool,
		widget.NewSeparator(),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		widthBox,
		widget.NewLabel("Text:"),
		textBox,
		w.controls.grid,
		layout.NewSpacer(),
		w.controls.undo,
		w.controls.redo,
		actions,
	)
}
