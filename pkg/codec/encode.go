package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// maxPaletteSize is the largest distinct-color count that still encodes as
// an 8-bit indexed image.
const maxPaletteSize = 256

// writeTexture encodes the row-major ARGB buffer and replaces the file as a
// whole. The buffer is scanned row-major; when at most 256 distinct colors
// remain after editing, the palette is built in first-seen order with
// per-entry alpha.
func writeTexture(path string, buf []uint32, w, h int) error {
	var img image.Image

	palette, indexed := buildPalette(buf)
	if indexed {
		p := image.NewPaletted(image.Rect(0, 0, w, h), palette.colors)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				p.SetColorIndex(x, y, palette.index[buf[y*w+x]])
			}
		}
		img = p
	} else {
		n := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				argb := buf[y*w+x]
				n.SetNRGBA(x, y, unpackARGB(argb))
			}
		}
		img = n
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return fmt.Errorf("encoding texture %s: %w", path, err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing texture %s: %w", path, err)
	}
	return nil
}

type texturePalette struct {
	colors color.Palette
	index  map[uint32]uint8
}

// buildPalette scans the buffer for distinct colors. It reports false as
// soon as the count exceeds the indexed limit.
func buildPalette(buf []uint32) (texturePalette, bool) {
	p := texturePalette{index: make(map[uint32]uint8, maxPaletteSize)}

	for _, argb := range buf {
		if _, seen := p.index[argb]; seen {
			continue
		}
		if len(p.colors) == maxPaletteSize {
			return texturePalette{}, false
		}
		p.index[argb] = uint8(len(p.colors))
		p.colors = append(p.colors, unpackARGB(argb))
	}
	return p, true
}

func unpackARGB(argb uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(argb >> 24),
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
	}
}
