package history

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bethropolis/scribble/internal/core/surface"
	"github.com/bethropolis/scribble/internal/types"
)

// flakyCodec wraps RawCodec and fails Decode on demand.
type flakyCodec struct {
	surface.RawCodec
	fail bool
}

func (c *flakyCodec) Decode(data []byte) (surface.Snapshot, error) {
	if c.fail {
		return surface.Snapshot{}, &surface.DecodeError{Reason: "forced"}
	}
	return c.RawCodec.Decode(data)
}

func draw(t *testing.T, s *surface.Surface, y float64) {
	t.Helper()
	if err := s.StrokeSegment(types.Pt(2, y), types.Pt(18, y), s.Style(), surface.CompositeSourceOver); err != nil {
		t.Fatal(err)
	}
}

func newManager(t *testing.T, limit int) (*surface.Surface, *Manager) {
	t.Helper()
	s := surface.New(20, 20)
	m := NewManager(s, nil, limit)
	if _, err := m.Commit(); err != nil {
		t.Fatal(err)
	}
	return s, m
}

func TestUndoFloor(t *testing.T) {
	s, m := newManager(t, 50)
	blank := s.Snapshot()

	for i := 0; i < 3; i++ {
		changed, err := m.Undo()
		if err != nil || changed {
			t.Fatalf("undo on base entry = %v, %v", changed, err)
		}
	}
	if u, r := m.Depth(); u != 1 || r != 0 {
		t.Errorf("depth = %d/%d, want 1/0", u, r)
	}
	if !bytes.Equal(blank.Pix, s.Snapshot().Pix) {
		t.Error("surface changed")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s, m := newManager(t, 50)
	blank := s.Snapshot()

	draw(t, s, 5)
	m.Commit()
	one := s.Snapshot()

	draw(t, s, 15)
	m.Commit()
	two := s.Snapshot()

	if ok, err := m.Undo(); !ok || err != nil {
		t.Fatalf("undo = %v, %v", ok, err)
	}
	if !bytes.Equal(one.Pix, s.Snapshot().Pix) {
		t.Error("undo did not restore the previous state")
	}
	m.Undo()
	if !bytes.Equal(blank.Pix, s.Snapshot().Pix) {
		t.Error("second undo did not restore the blank state")
	}
	if u, r := m.Depth(); u != 1 || r != 2 {
		t.Errorf("depth = %d/%d, want 1/2", u, r)
	}

	m.Redo()
	m.Redo()
	if !bytes.Equal(two.Pix, s.Snapshot().Pix) {
		t.Error("redo did not restore the latest state")
	}
	if ok, _ := m.Redo(); ok {
		t.Error("redo with empty stack reported a change")
	}
}

func TestCommitClearsRedo(t *testing.T) {
	s, m := newManager(t, 50)
	draw(t, s, 5)
	m.Commit()
	m.Undo()
	if !m.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	draw(t, s, 10)
	m.Commit()
	if m.CanRedo() {
		t.Error("commit kept redo entries")
	}
	before := s.Snapshot()
	if ok, _ := m.Redo(); ok {
		t.Error("redo after commit changed state")
	}
	if !bytes.Equal(before.Pix, s.Snapshot().Pix) {
		t.Error("surface changed on empty redo")
	}
}

func TestCapacity(t *testing.T) {
	s, m := newManager(t, 50)
	var oldest surface.Snapshot
	for i := 0; i < 60; i++ {
		draw(t, s, float64(i%20))
		if _, err := m.Commit(); err != nil {
			t.Fatal(err)
		}
		if i == 10 {
			oldest = s.Snapshot()
		}
	}
	if u, _ := m.Depth(); u != 50 {
		t.Errorf("undo depth = %d, want 50", u)
	}
	if m.Commits() != 61 {
		t.Errorf("commits = %d, want 61", m.Commits())
	}

	undone := 0
	for m.CanUndo() {
		m.Undo()
		undone++
	}
	if undone != 49 {
		t.Errorf("undid %d times, want 49", undone)
	}
	// The oldest surviving entry is the 11th drawn state; the blank base is gone.
	if !bytes.Equal(s.Snapshot().Pix, oldest.Pix) {
		t.Error("oldest surviving state is not the 11th drawn state")
	}
}

func TestDecodeErrorLeavesStateUnchanged(t *testing.T) {
	s := surface.New(20, 20)
	codec := &flakyCodec{}
	m := NewManager(s, codec, 50)
	m.Commit()
	draw(t, s, 5)
	m.Commit()
	before := s.Snapshot()

	codec.fail = true
	ok, err := m.Undo()
	var de *surface.DecodeError
	if ok || !errors.As(err, &de) {
		t.Fatalf("undo = %v, %v; want DecodeError", ok, err)
	}
	if u, r := m.Depth(); u != 2 || r != 0 {
		t.Errorf("depth = %d/%d after failed undo, want 2/0", u, r)
	}
	if !bytes.Equal(before.Pix, s.Snapshot().Pix) {
		t.Error("failed undo changed the surface")
	}

	codec.fail = false
	m.Undo()
	codec.fail = true
	if ok, err := m.Redo(); ok || !errors.As(err, &de) {
		t.Fatalf("redo = %v, %v; want DecodeError", ok, err)
	}
	if u, r := m.Depth(); u != 1 || r != 1 {
		t.Errorf("depth = %d/%d after failed redo, want 1/1", u, r)
	}
}

func TestPNGCodecHistory(t *testing.T) {
	s := surface.New(20, 20)
	m := NewManager(s, surface.PNGCodec{}, 5)
	m.Commit()
	draw(t, s, 5)
	m.Commit()
	m.Undo()
	if s.Coverage() != 0 {
		t.Error("png-backed undo did not restore the blank state")
	}
}
