package wlengine

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// DefaultPattern renders a fallback test-pattern buffer: diagonal
// stripes scaled to fill width x height, ARGB8888, stride width*4.
// Nothing in this repository attaches it to an output. golang.org/x/image/draw supplies the scaling needed to
// stretch one small tile to an arbitrary output mode instead of
// hand-rolling a scanline scaler.
func DefaultPattern(width, height int) []byte {
	tile := image.NewRGBA(image.Rect(0, 0, 8, 8))
	stripe := color.RGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}
	base := color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if (x+y)%8 < 2 {
				tile.Set(x, y, stripe)
			} else {
				tile.Set(x, y, base)
			}
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(out, out.Bounds(), tile, tile.Bounds(), draw.Over, nil)

	stride := width * 4
	buf := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		srcRow := out.Pix[y*out.Stride : y*out.Stride+width*4]
		dstRow := buf[y*stride : y*stride+stride]
		for x := 0; x < width; x++ {
			r := srcRow[x*4+0]
			g := srcRow[x*4+1]
			b := srcRow[x*4+2]
			a := srcRow[x*4+3]
			// wl_shm ARGB8888 is little-endian 0xAARRGGBB per pixel.
			dstRow[x*4+0] = b
			dstRow[x*4+1] = g
			dstRow[x*4+2] = r
			dstRow[x*4+3] = a
		}
	}
	return buf
}
