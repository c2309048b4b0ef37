// Package codec reads and writes the pixel slices of colormap textures.
//
// A slice is the 0-D, 1-D row or 1-D column addressed by one resolved
// identifier, depending on the colormap's axis bindings. Pixels are
// non-premultiplied ARGB packed a<<24|r<<16|g<<8|b. Slices follow the
// column-major orientation of the source editor: one slice per biome or
// function index reads contiguously down a column.
package codec

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/aredhel/polytone-edit/pkg/polytone"
)

// RangeError reports an index outside the texture bounds.
type RangeError struct {
	Index int
	Limit int
	Axis  string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("index %d out of range on %s axis (limit %d)", e.Index, e.Axis, e.Limit)
}

// ShapeMismatchError reports an edit slice whose length does not match the
// expected axis length. Mismatches are never truncated or padded.
type ShapeMismatchError struct {
	Index    int
	Expected int
	Got      int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("slice length mismatch for index %d: expected %d, got %d", e.Index, e.Expected, e.Got)
}

// ExtractSlice returns the pixel slice addressed by biomeIndex, according to
// the colormap's axis bindings:
//
//   - both axes biome-mapped: a single pixel at (biomeIndex, biomeIndex)
//   - only X biome-mapped: the full column biomeIndex, length = texture height
//   - only Y biome-mapped: the full row biomeIndex, length = texture width
//
// Texture dimensions are recorded on the colormap on first read.
func ExtractSlice(cm *polytone.Colormap, biomeIndex int) ([]uint32, error) {
	img, err := loadTexture(cm)
	if err != nil {
		return nil, err
	}

	w := cm.TextureWidth
	h := cm.TextureHeight

	if biomeIndex < 0 {
		return nil, &RangeError{Index: biomeIndex, Limit: 0, Axis: "x"}
	}

	switch {
	case cm.XAxis == polytone.AxisBiomeID && cm.YAxis == polytone.AxisBiomeID:
		if biomeIndex >= w || biomeIndex >= h {
			return nil, &RangeError{Index: biomeIndex, Limit: min(w, h), Axis: "x,y"}
		}
		return []uint32{argbAt(img, biomeIndex, biomeIndex)}, nil

	case cm.XAxis == polytone.AxisBiomeID:
		if biomeIndex >= w {
			return nil, &RangeError{Index: biomeIndex, Limit: w, Axis: "x"}
		}
		out := make([]uint32, h)
		for y := 0; y < h; y++ {
			out[y] = argbAt(img, biomeIndex, y)
		}
		return out, nil

	case cm.YAxis == polytone.AxisBiomeID:
		if biomeIndex >= h {
			return nil, &RangeError{Index: biomeIndex, Limit: h, Axis: "y"}
		}
		out := make([]uint32, w)
		for x := 0; x < w; x++ {
			out[x] = argbAt(img, x, biomeIndex)
		}
		return out, nil
	}

	return nil, fmt.Errorf("colormap %q has no biome-mapped axis", cm.Name)
}

// ExtractAllColumns exposes every column of a function-mapped colormap as
// its own addressable slice, keyed by column index. The backing image is
// row-major; the result is transposed to column-major.
func ExtractAllColumns(cm *polytone.Colormap) (map[int][]uint32, error) {
	img, err := loadTexture(cm)
	if err != nil {
		return nil, err
	}

	w := cm.TextureWidth
	h := cm.TextureHeight

	out := make(map[int][]uint32, w)
	for x := 0; x < w; x++ {
		col := make([]uint32, h)
		for y := 0; y < h; y++ {
			col[y] = argbAt(img, x, y)
		}
		out[x] = col
	}
	return out, nil
}

// ApplyChanges writes edit slices back through the inverse of the extraction
// case analysis, then re-encodes the whole texture. Every edit is validated
// before any pixel is touched, and the file is replaced only after the full
// output buffer is encoded: a failed asset leaves its texture untouched.
//
// The output encoding is chosen from the post-edit pixels alone: at most 256
// distinct ARGB values yields an 8-bit indexed image, anything more a direct
// color image, regardless of the source file's format.
func ApplyChanges(cm *polytone.Colormap, edits map[int][]uint32) error {
	img, err := loadTexture(cm)
	if err != nil {
		return err
	}

	w := cm.TextureWidth
	h := cm.TextureHeight

	xBiome := cm.XAxis == polytone.AxisBiomeID
	yBiome := cm.YAxis == polytone.AxisBiomeID

	// Validate all edits up front so a batch either applies fully or not at
	// all for this asset.
	for index, colors := range edits {
		switch {
		case xBiome && yBiome:
			if index < 0 || index >= w || index >= h {
				return &RangeError{Index: index, Limit: min(w, h), Axis: "x,y"}
			}
			if len(colors) != 1 {
				return &ShapeMismatchError{Index: index, Expected: 1, Got: len(colors)}
			}
		case yBiome:
			if index < 0 || index >= h {
				return &RangeError{Index: index, Limit: h, Axis: "y"}
			}
			if len(colors) != w {
				return &ShapeMismatchError{Index: index, Expected: w, Got: len(colors)}
			}
		default:
			// X biome-mapped and pure function colormaps both write columns.
			if index < 0 || index >= w {
				return &RangeError{Index: index, Limit: w, Axis: "x"}
			}
			if len(colors) != h {
				return &ShapeMismatchError{Index: index, Expected: h, Got: len(colors)}
			}
		}
	}

	buf := readARGB(img, w, h)

	for index, colors := range edits {
		switch {
		case xBiome && yBiome:
			buf[index*w+index] = colors[0]
		case yBiome:
			copy(buf[index*w:(index+1)*w], colors)
		default:
			for y := 0; y < h; y++ {
				buf[y*w+index] = colors[y]
			}
		}
	}

	return writeTexture(cm.TexturePath, buf, w, h)
}

// loadTexture decodes the colormap's backing PNG and records its dimensions.
func loadTexture(cm *polytone.Colormap) (image.Image, error) {
	f, err := os.Open(cm.TexturePath)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", cm.TexturePath, err)
	}

	b := img.Bounds()
	cm.TextureWidth = b.Dx()
	cm.TextureHeight = b.Dy()
	return img, nil
}

// argbAt packs the pixel at (x, y) as non-premultiplied ARGB.
func argbAt(img image.Image, x, y int) uint32 {
	b := img.Bounds()
	c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// readARGB flattens the image into a row-major ARGB buffer.
func readARGB(img image.Image, w, h int) []uint32 {
	buf := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = argbAt(img, x, y)
		}
	}
	return buf
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
