package imageproc

import (
	"fmt"
	"image"
	"math"
)

// ShrinkWidth removes vertical seams of least gradient energy until the
// image is target pixels wide.
func ShrinkWidth(src *image.Gray, target uint32) (*image.Gray, error) {
	width := src.Bounds().Dx()
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: cannot carve an empty %dx%d image", ErrInvalidParameter, width, src.Bounds().Dy())
	}
	if target == 0 || int(target) > width {
		return nil, fmt.Errorf("%w: target width %d outside [1, %d]", ErrInvalidParameter, target, width)
	}
	g := newGrid(src)
	for g.w > int(target) {
		g = removeSeam(g, findSeam(g))
	}
	return g.image(), nil
}

// findSeam returns, for every row, the column of the lowest-energy
// 8-connected vertical path.
func findSeam(g grid) []int {
	gr := sobel(g)
	cost := make([]float64, g.w*g.h)
	for x := 0; x < g.w; x++ {
		cost[x] = gr.magnitude(x)
	}
	for y := 1; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			best := math.Inf(1)
			for dx := -1; dx <= 1; dx++ {
				px := x + dx
				if px < 0 || px >= g.w {
					continue
				}
				best = min(best, cost[(y-1)*g.w+px])
			}
			cost[y*g.w+x] = best + gr.magnitude(y*g.w+x)
		}
	}

	seam := make([]int, g.h)
	last := (g.h - 1) * g.w
	for x := 1; x < g.w; x++ {
		if cost[last+x] < cost[last+seam[g.h-1]] {
			seam[g.h-1] = x
		}
	}
	for y := g.h - 2; y >= 0; y-- {
		prev := seam[y+1]
		seam[y] = prev
		for _, x := range []int{prev - 1, prev + 1} {
			if x >= 0 && x < g.w && cost[y*g.w+x] < cost[y*g.w+seam[y]] {
				seam[y] = x
			}
		}
	}
	return seam
}

func removeSeam(g grid, seam []int) grid {
	out := grid{w: g.w - 1, h: g.h, pix: make([]uint8, (g.w-1)*g.h)}
	for y := 0; y < g.h; y++ {
		row := g.pix[y*g.w : (y+1)*g.w]
		dst := out.pix[y*out.w : (y+1)*out.w]
		n := copy(dst, row[:seam[y]])
		copy(dst[n:], row[seam[y]+1:])
	}
	return out
}
