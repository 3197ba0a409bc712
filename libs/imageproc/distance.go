package imageproc

import "image"

// Norm selects the distance metric of the distance transform and the shape of
// the morphology structuring element.
type Norm int

const (
	// L1 is the city-block distance; its unit ball is a diamond.
	L1 Norm = iota
	// LInf is the chessboard distance; its unit ball is a square.
	LInf
)

func (n Norm) String() string {
	switch n {
	case L1:
		return "L1"
	case LInf:
		return "LInf"
	default:
		return "unknown"
	}
}

const maxDistance = 255

// DistanceTransform returns, for every pixel, the distance to the nearest
// foreground (non-zero) pixel under norm, saturated at 255. An image without
// foreground maps to 255 everywhere.
func DistanceTransform(src *image.Gray, norm Norm) *image.Gray {
	g := newGrid(src)
	dist := distances(g, norm, func(p uint8) bool { return p != 0 })
	out := newGray(g.w, g.h)
	for i, d := range dist {
		out.Pix[i] = uint8(min(d, maxDistance))
	}
	return out
}

// distances runs a two-pass chamfer sweep measuring the distance of every
// pixel to the nearest pixel for which seed reports true.
func distances(g grid, norm Norm, seed func(uint8) bool) []int {
	const unreached = 1 << 30
	d := make([]int, g.w*g.h)
	for i, p := range g.pix {
		if seed(p) {
			d[i] = 0
		} else {
			d[i] = unreached
		}
	}

	diag := norm == LInf
	relax := func(i, x, y int) {
		if x < 0 || y < 0 || x >= g.w || y >= g.h {
			return
		}
		if v := d[y*g.w+x] + 1; v < d[i] {
			d[i] = v
		}
	}

	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			relax(i, x-1, y)
			relax(i, x, y-1)
			if diag {
				relax(i, x-1, y-1)
				relax(i, x+1, y-1)
			}
		}
	}
	for y := g.h - 1; y >= 0; y-- {
		for x := g.w - 1; x >= 0; x-- {
			i := y*g.w + x
			relax(i, x+1, y)
			relax(i, x, y+1)
			if diag {
				relax(i, x+1, y+1)
				relax(i, x-1, y+1)
			}
		}
	}
	return d
}
