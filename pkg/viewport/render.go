package viewport

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FlattenColumns lays out column-major pixel slices as one row-major ARGB
// buffer of rows*len(cols) pixels, the shape the rasterizer consumes. A
// column shorter than rows pads with transparent pixels.
func FlattenColumns(cols [][]uint32, rows int) []uint32 {
	buf := make([]uint32, rows*len(cols))

	for colIdx, col := range cols {
		for row := 0; row < rows; row++ {
			var v uint32
			if row < len(col) {
				v = col[row]
			}
			buf[row*len(cols)+colIdx] = v
		}
	}
	return buf
}

// ToImage converts a row-major ARGB buffer into an NRGBA image.
func ToImage(buf []uint32, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			argb := buf[y*w+x]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(argb >> 16)
			img.Pix[i+1] = uint8(argb >> 8)
			img.Pix[i+2] = uint8(argb)
			img.Pix[i+3] = uint8(argb >> 24)
		}
	}
	return img
}

// RenderWindow rasterizes the draw window's source rectangle at its scale.
// Texels stay square and hard-edged: nearest-neighbor, never interpolated.
func RenderWindow(src image.Image, win DrawWindow) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, win.Dest.Dx(), win.Dest.Dy()))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, win.Source, xdraw.Src, nil)
	return dst
}
