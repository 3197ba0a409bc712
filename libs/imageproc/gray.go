package imageproc

import (
	"image"

	"golang.org/x/image/draw"
)

// grid is an origin-based view over a gray image with edge-clamped reads.
type grid struct {
	w, h int
	pix  []uint8
}

func newGrid(src *image.Gray) grid {
	b := src.Bounds()
	g := grid{w: b.Dx(), h: b.Dy(), pix: make([]uint8, b.Dx()*b.Dy())}
	for y := 0; y < g.h; y++ {
		start := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(g.pix[y*g.w:(y+1)*g.w], src.Pix[start:start+g.w])
	}
	return g
}

func (g grid) at(x, y int) uint8 {
	return g.pix[y*g.w+x]
}

// clamped reads (x, y), replicating the nearest edge pixel for points outside.
func (g grid) clamped(x, y int) uint8 {
	return g.pix[clampInt(y, 0, g.h-1)*g.w+clampInt(x, 0, g.w-1)]
}

func (g grid) image() *image.Gray {
	return &image.Gray{Pix: g.pix, Stride: g.w, Rect: image.Rect(0, 0, g.w, g.h)}
}

func newGray(w, h int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, w, h))
}

// ToGray converts any image into an origin-based 8-bit gray image.
func ToGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := newGray(b.Dx(), b.Dy())
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
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

func clampU8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

func histogram(g grid) [256]int {
	var hist [256]int
	for _, p := range g.pix {
		hist[p]++
	}
	return hist
}

// cumulative returns the normalised cumulative histogram of g.
func cumulative(g grid) [256]float64 {
	hist := histogram(g)
	var cdf [256]float64
	total := float64(len(g.pix))
	if total == 0 {
		return cdf
	}
	running := 0
	for i, c := range hist {
		running += c
		cdf[i] = float64(running) / total
	}
	return cdf
}
