// Package viewport computes the buffered draw window for a zoomed colormap
// view. Redrawing the whole synthesized texture on every scroll or zoom
// event is infeasible once magnified textures approach raster size limits,
// so only the visible region plus a small texel margin is rasterized,
// snapped to the device pixel grid.
package viewport

import (
	"image"
	"math"
)

const (
	// MinZoom and MaxZoom bound the integer pixel scale.
	MinZoom = 1.0
	MaxZoom = 64.0

	// BufferMargin is the number of extra texels rasterized on each side of
	// the visible area, smoothing fast panning.
	BufferMargin = 8

	// MaxRasterSize bounds the synthesized raster per axis; zoom steps that
	// would exceed it are rejected.
	MaxRasterSize = 16384
)

// View is the pan/zoom state of one colormap viewport. ScrollX and ScrollY
// are normalized scrollbar positions in [0, 1]; DeviceScale is the output
// scale of the screen (HiDPI), used for sub-pixel snapping.
type View struct {
	Zoom        float64
	ScrollX     float64
	ScrollY     float64
	DeviceScale float64
}

// NewView returns a view at 1:1 zoom for a standard-density screen.
func NewView() View {
	return View{Zoom: MinZoom, DeviceScale: 1}
}

// DrawWindow is the outcome of windowing: the texel rectangle to read from
// the texture and the device rectangle it lands on, at Scale device pixels
// per texel.
type DrawWindow struct {
	// Source is the buffered sub-rectangle of the texture, in texels,
	// clamped inside [0,texW)x[0,texH).
	Source image.Rectangle

	// Dest places the buffered source in viewport coordinates: the visible
	// region starts at the origin, so Dest begins at the snapped negative
	// offset of the leading buffer margin.
	Dest image.Rectangle

	// Scale is the zoom factor snapped to the device pixel grid.
	Scale float64
}

// Snap rounds a value to the nearest device pixel at the given scale.
func Snap(v, deviceScale float64) float64 {
	return math.Round(v*deviceScale) / deviceScale
}

// ComputeDrawWindow determines the minimal sub-rectangle to redraw for the
// current scroll and zoom state: the visible texel window plus up to
// BufferMargin texels on each side, never extending past the texture.
func (v View) ComputeDrawWindow(viewportW, viewportH, texW, texH int) DrawWindow {
	scale := Snap(v.Zoom, v.DeviceScale)

	// Whole texels visible in the viewport, clamped for zoomed-out views
	// smaller than the viewport.
	cellsW := int(math.Ceil(float64(viewportW) / scale))
	cellsH := int(math.Ceil(float64(viewportH) / scale))
	if cellsW > texW {
		cellsW = texW
	}
	if cellsH > texH {
		cellsH = texH
	}

	// Scrollable range in texel space.
	rangeX := texW - cellsW
	rangeY := texH - cellsH

	offX := clampInt(int(math.Round(v.ScrollX*float64(rangeX))), 0, rangeX)
	offY := clampInt(int(math.Round(v.ScrollY*float64(rangeY))), 0, rangeY)

	bufX := bufferAround(offX, cellsW, texW)
	bufY := bufferAround(offY, cellsH, texH)

	src := image.Rect(
		offX-bufX.before,
		offY-bufY.before,
		offX+cellsW+bufX.after,
		offY+cellsH+bufY.after,
	)

	destX := Snap(float64(-bufX.before)*scale, v.DeviceScale)
	destY := Snap(float64(-bufY.before)*scale, v.DeviceScale)
	destW := Snap(float64(cellsW+bufX.total()), v.DeviceScale) * scale
	destH := Snap(float64(cellsH+bufY.total()), v.DeviceScale) * scale

	dest := image.Rect(
		int(math.Round(destX)),
		int(math.Round(destY)),
		int(math.Round(destX+destW)),
		int(math.Round(destY+destH)),
	)

	return DrawWindow{Source: src, Dest: dest, Scale: scale}
}

// ZoomStep applies a discrete ±1 zoom step. A step that would push the
// synthesized raster past MaxRasterSize on either axis is rejected without
// error: the zoom simply does not change.
func (v *View) ZoomStep(delta int, visibleColumns, texH int) bool {
	next := v.Zoom + float64(delta)

	// The synthesized width includes the index column.
	rasterW := float64(visibleColumns+1) * next
	rasterH := float64(texH) * next

	next = math.Min(MaxZoom, math.Max(MinZoom, next))
	if next == v.Zoom || rasterW >= MaxRasterSize || rasterH >= MaxRasterSize {
		return false
	}
	v.Zoom = next
	return true
}

// FitZoom resets the zoom so the whole texture fits the viewport, clamped
// into [MinZoom, MaxZoom]. The extra column accounts for the index gutter.
func (v *View) FitZoom(viewportW, viewportH, columns, rows int) {
	if columns <= 0 || rows <= 0 {
		v.Zoom = MinZoom
		return
	}
	fitW := float64(viewportW) / float64(columns+1)
	fitH := float64(viewportH) / float64(rows)
	zoom := math.Floor(math.Min(fitW, fitH))
	v.Zoom = math.Min(MaxZoom, math.Max(MinZoom, zoom))
}

type gridBuffer struct {
	before int
	after  int
}

func (b gridBuffer) total() int {
	return b.before + b.after
}

// bufferAround clamps the leading/trailing buffer so it never extends past
// the texture bounds.
func bufferAround(firstVisible, cells, texSize int) gridBuffer {
	lastVisible := firstVisible + cells
	availableAfter := clampInt(texSize-1-lastVisible, 0, texSize)

	return gridBuffer{
		before: minInt(BufferMargin, firstVisible),
		after:  minInt(BufferMargin, availableAfter),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
