package coloredit

import (
	"github.com/aredhel/polytone-edit/pkg/polytone"
)

// Column is the edit unit for one resolved identifier's pixel slice. It
// keeps the unedited baseline alongside the working copy so that every
// adjustment is relative to the baseline rather than cumulative.
type Column struct {
	Identifier polytone.ResourceIdentifier
	Selected   bool
	Visible    bool

	original []uint32
	current  []uint32
}

// NewColumn wraps a freshly extracted slice. The slice is copied into both
// buffers; the caller keeps ownership of pixels.
func NewColumn(id polytone.ResourceIdentifier, pixels []uint32) *Column {
	c := &Column{Identifier: id, Visible: true}
	c.original = append([]uint32(nil), pixels...)
	c.current = append([]uint32(nil), pixels...)
	return c
}

// Len returns the slice length.
func (c *Column) Len() int {
	return len(c.original)
}

// Original returns a copy of the baseline pixels.
func (c *Column) Original() []uint32 {
	return append([]uint32(nil), c.original...)
}

// Current returns a copy of the working pixels.
func (c *Column) Current() []uint32 {
	return append([]uint32(nil), c.current...)
}

// AdjustHSB recomputes every working pixel from the baseline with the given
// shift. Recomputing from the baseline keeps repeated slider motion from
// drifting: the zero shift restores the baseline exactly.
func (c *Column) AdjustHSB(shift HSB) {
	for i, argb := range c.original {
		c.current[i] = AdjustColor(argb, shift)
	}
}

// AdjustOpacity rewrites the alpha channel of every working pixel.
func (c *Column) AdjustOpacity(opacity float64) {
	for i, argb := range c.current {
		c.current[i] = AdjustOpacity(argb, opacity)
	}
}

// SetPixel overrides a single working pixel.
func (c *Column) SetPixel(row int, argb uint32) {
	if row < 0 || row >= len(c.current) {
		return
	}
	c.current[row] = argb
}

// Reset restores the working pixels to the baseline.
func (c *Column) Reset() {
	copy(c.current, c.original)
}

// Commit promotes the working pixels into the baseline, clearing the
// modified state without discarding the column.
func (c *Column) Commit() {
	copy(c.original, c.current)
}

// Modified reports whether the working pixels differ from the baseline.
// The check is element-wise and order-sensitive.
func (c *Column) Modified() bool {
	for i := range c.original {
		if c.original[i] != c.current[i] {
			return true
		}
	}
	return false
}
