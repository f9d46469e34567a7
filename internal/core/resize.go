package core

import (
	"image"
	"math"

	"github.com/bethropolis/scribble/internal/event"
	"github.com/bethropolis/scribble/internal/logger"
)

// fitSize computes the logical size for a container: the width is capped
// at maxW and the height keeps the maxW:maxH aspect ratio.
func fitSize(containerW, containerH, maxW, maxH int) (image.Point, bool) {
	if containerW <= 0 || containerH <= 0 || maxW <= 0 || maxH <= 0 {
		return image.Point{}, false
	}
	w := min(containerW, maxW)
	h := int(math.Round(float64(w) / float64(maxW) * float64(maxH)))
	return image.Pt(w, h), true
}

// Resize reacts to a container size. Zero or negative sizes are ignored.
// While a gesture is active the new size is held back and applied when the
// gesture ends. Content stays anchored at the origin, unscaled. It reports
// whether the surface size changed now.
func (c *Canvas) Resize(containerW, containerH int) bool {
	size, ok := fitSize(containerW, containerH, c.maxW, c.maxH)
	if !ok {
		logger.DebugTagf("resize", "ignoring container size %dx%d", containerW, containerH)
		return false
	}
	c.container = image.Pt(containerW, containerH)

	if c.Drawing() {
		c.pending = &size
		logger.DebugTagf("resize", "deferring resize to %v until the gesture ends", size)
		return false
	}
	c.pending = nil
	return c.applySize(size, false)
}

func (c *Canvas) applyPending() {
	if c.pending == nil {
		return
	}
	size := *c.pending
	c.pending = nil
	c.applySize(size, true)
}

func (c *Canvas) applySize(size image.Point, deferred bool) bool {
	if size.X == c.surface.Width() && size.Y == c.surface.Height() {
		return false
	}
	c.surface.ResizePreservingContent(size.X, size.Y)
	c.grid.Resize(size.X, size.Y)
	logger.DebugTagf("resize", "surface resized to %dx%d (deferred=%v)", size.X, size.Y, deferred)
	c.events.Dispatch(event.TypeResized, event.ResizedData{Width: size.X, Height: size.Y, Deferred: deferred})
	return true
}

// PendingResize reports a size waiting for the current gesture to end.
func (c *Canvas) PendingResize() (image.Point, bool) {
	if c.pending == nil {
		return image.Point{}, false
	}
	return *c.pending, true
}
