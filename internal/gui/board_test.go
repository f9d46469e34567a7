package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"

	"github.com/bethropolis/scribble/internal/config"
	"github.com/bethropolis/scribble/internal/core/tool"
)

func newTestWindow(t *testing.T) *Window {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	w, err := NewWindow(a, config.NewDefaultConfig())
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w
}

func primary(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func TestBoardResizeFollowsContainer(t *testing.T) {
	w := newTestWindow(t)
	b := w.Board()

	b.Resize(fyne.NewSize(300, 500))
	if cw, ch := w.canvas.Size(); cw != 300 || ch != 175 {
		t.Errorf("size = %dx%d, want 300x175", cw, ch)
	}
	b.Resize(fyne.NewSize(1200, 900))
	if cw, ch := w.canvas.Size(); cw != 600 || ch != 350 {
		t.Errorf("size = %dx%d, want 600x350", cw, ch)
	}
}

func TestBoardMouseStroke(t *testing.T) {
	w := newTestWindow(t)
	b := w.Board()
	b.Resize(fyne.NewSize(600, 350))

	b.MouseDown(primary(10, 10))
	b.Dragged(drag(60, 10, 50, 0))
	b.MouseUp(primary(60, 10))
	b.DragEnd()

	if undo, _ := w.canvas.Depth(); undo != 2 {
		t.Errorf("undo depth = %d, want one committed stroke", undo)
	}
	if w.canvas.Image().NRGBAAt(30, 10).A == 0 {
		t.Error("expected ink along the stroke")
	}
}

func TestBoardTouchDragStartsGesture(t *testing.T) {
	w := newTestWindow(t)
	b := w.Board()
	b.Resize(fyne.NewSize(600, 350))

	b.Dragged(drag(40, 20, 10, 0))
	b.Dragged(drag(80, 20, 40, 0))
	b.DragEnd()

	if undo, _ := w.canvas.Depth(); undo != 2 {
		t.Errorf("undo depth = %d, want 2", undo)
	}
}

func touch(x, y float32) *mobile.TouchEvent {
	return &mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestBoardTouchUsesFirstFinger(t *testing.T) {
	w := newTestWindow(t)
	b := w.Board()
	b.Resize(fyne.NewSize(600, 350))

	b.TouchDown(touch(20, 30))
	b.TouchDown(touch(300, 200)) // second finger
	b.Dragged(drag(120, 30, 100, 0))
	b.TouchUp(touch(120, 30))

	if w.canvas.Drawing() {
		t.Error("touch up should end the gesture")
	}
	if undo, _ := w.canvas.Depth(); undo != 2 {
		t.Errorf("undo depth = %d, want one committed stroke", undo)
	}
	img := w.canvas.Image()
	if img.NRGBAAt(70, 30).A == 0 {
		t.Error("expected ink along the first finger's path")
	}
	if img.NRGBAAt(300, 200).A != 0 {
		t.Error("second finger drew")
	}

	b.TouchCancel(touch(0, 0))
	if undo, _ := w.canvas.Depth(); undo != 2 {
		t.Errorf("cancel without a touch committed again (depth %d)", undo)
	}
}

func TestUndoRedoButtonsFollowHistory(t *testing.T) {
	w := newTestWindow(t)
	b := w.Board()
	b.Resize(fyne.NewSize(600, 350))

	if !w.controls.undo.Disabled() || !w.controls.redo.Disabled() {
		t.Fatal("buttons should start disabled on a blank history")
	}

	b.MouseDown(primary(10, 10))
	b.Dragged(drag(60, 10, 50, 0))
	b.MouseUp(primary(60, 10))
	if w.controls.undo.Disabled() {
		t.Error("undo should be enabled after a stroke")
	}

	test.Tap(w.controls.undo)
	if !w.controls.undo.Disabled() || w.controls.redo.Disabled() {
		t.Error("after undoing the only stroke: undo off, redo on")
	}
	test.Tap(w.controls.redo)
	if w.controls.undo.Disabled() || !w.controls.redo.Disabled() {
		t.Error("after redo: undo on, redo off")
	}
}

func TestBoardMouseOutEndsStroke(t *testing.T) {
	w := newTestWindow(t)
	b := w.Board()
	b.Resize(fyne.NewSize(600, 350))

	b.MouseDown(primary(10, 10))
	b.MouseOut()
	if w.canvas.Drawing() {
		t.Error("leaving the board should end the gesture")
	}
	if undo, _ := w.canvas.Depth(); undo != 2 {
		t.Errorf("undo depth = %d, want 2", undo)
	}
}

func TestKeyboardShortcuts(t *testing.T) {
	w := newTestWindow(t)
	b := w.Board()
	b.Resize(fyne.NewSize(600, 350))

	w.typedRune('g')
	if !w.canvas.GridVisible() || !w.controls.grid.Checked {
		t.Error("g should show the grid and tick the checkbox")
	}

	b.MouseDown(primary(10, 10))
	b.Dragged(drag(60, 10, 50, 0))
	b.MouseUp(primary(60, 10))

	w.typedKey(&fyne.KeyEvent{Name: fyne.KeyDelete})
	if w.canvas.Coverage() != 0 {
		t.Error("delete should clear the canvas")
	}
	w.undo()
	if w.canvas.Coverage() == 0 {
		t.Error("undo should bring the stroke back")
	}
}

func TestToolbarMirrorsCanvas(t *testing.T) {
	w := newTestWindow(t)

	w.canvas.SetTool(tool.Circle)
	if got := w.controls.tool.Selected; got != "circle" {
		t.Errorf("select = %q, want circle", got)
	}
	w.canvas.SetStrokeWidth(12)
	if got := w.controls.width.Value; got != 12 {
		t.Errorf("slider = %v, want 12", got)
	}

	w.controls.tool.SetSelected("eraser")
	if w.canvas.Tool() != tool.Eraser {
		t.Errorf("tool = %v, want eraser", w.canvas.Tool())
	}
}
