package imageproc

import (
	"fmt"
	"image"
	"math"
)

// Threshold sets pixels brighter than level to 255 and every other pixel to 0.
func Threshold(src *image.Gray, level uint8) *image.Gray {
	g := newGrid(src)
	for i, p := range g.pix {
		if p > level {
			g.pix[i] = 255
		} else {
			g.pix[i] = 0
		}
	}
	return g.image()
}

// OtsuLevel returns the threshold that maximises the between-class variance of
// the image histogram.
func OtsuLevel(src *image.Gray) uint8 {
	g := newGrid(src)
	hist := histogram(g)
	total := len(g.pix)
	if total == 0 {
		return 0
	}

	var sum float64
	for i, c := range hist {
		sum += float64(i * c)
	}

	var (
		sumB    float64
		weightB int
		best    float64
		bestLvl int
	)
	for t := 0; t < 256; t++ {
		weightB += hist[t]
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		meanB := sumB / float64(weightB)
		meanF := (sum - sumB) / float64(weightF)
		between := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)
		if between > best {
			best = between
			bestLvl = t
		}
	}
	return uint8(bestLvl)
}

// EqualizeHistogram spreads intensities so the cumulative histogram is
// approximately linear.
func EqualizeHistogram(src *image.Gray) *image.Gray {
	g := newGrid(src)
	cdf := cumulative(g)
	for i, p := range g.pix {
		g.pix[i] = uint8(math.Min(255, 255*cdf[p]))
	}
	return g.image()
}

// MatchHistogram remaps src so its cumulative histogram approximates the one
// of target.
func MatchHistogram(src, target *image.Gray) *image.Gray {
	g := newGrid(src)
	srcCDF := cumulative(g)
	targetCDF := cumulative(newGrid(target))

	var lut [256]uint8
	for i := 0; i < 256; i++ {
		best, bestDiff := 0, math.Inf(1)
		for j := 0; j < 256; j++ {
			diff := math.Abs(targetCDF[j] - srcCDF[i])
			if diff < bestDiff {
				best, bestDiff = j, diff
			}
		}
		lut[i] = uint8(best)
	}

	for i, p := range g.pix {
		g.pix[i] = lut[p]
	}
	return g.image()
}

// StretchContrast maps [lower, upper] linearly onto [0, 255], saturating
// values outside the range.
func StretchContrast(src *image.Gray, lower, upper uint8) (*image.Gray, error) {
	if upper <= lower {
		return nil, fmt.Errorf("%w: upper (%d) must exceed lower (%d)", ErrInvalidParameter, upper, lower)
	}
	g := newGrid(src)
	span := float64(upper - lower)
	for i, p := range g.pix {
		switch {
		case p <= lower:
			g.pix[i] = 0
		case p >= upper:
			g.pix[i] = 255
		default:
			g.pix[i] = clampU8(float64(p-lower) * 255 / span)
		}
	}
	return g.image(), nil
}

// AdaptiveThreshold marks a pixel white when it is at least as bright as the
// mean of the (2r+1)x(2r+1) block around it, clipped to the image.
func AdaptiveThreshold(src *image.Gray, blockRadius uint32) (*image.Gray, error) {
	if blockRadius == 0 {
		return nil, fmt.Errorf("%w: block radius must be positive", ErrInvalidParameter)
	}
	g := newGrid(src)
	integral := integralImage(g)
	r := int(blockRadius)
	out := newGray(g.w, g.h)

	for y := 0; y < g.h; y++ {
		y0, y1 := max(0, y-r), min(g.h-1, y+r)
		for x := 0; x < g.w; x++ {
			x0, x1 := max(0, x-r), min(g.w-1, x+r)
			count := uint64((y1 - y0 + 1) * (x1 - x0 + 1))
			mean := integral.sum(x0, y0, x1, y1) / count
			if uint64(g.at(x, y)) >= mean {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out, nil
}

// integral holds prefix sums with a zero row and column at the top-left.
type integral struct {
	w    int
	sums []uint64
}

func integralImage(g grid) integral {
	w := g.w + 1
	it := integral{w: w, sums: make([]uint64, w*(g.h+1))}
	for y := 0; y < g.h; y++ {
		var row uint64
		for x := 0; x < g.w; x++ {
			row += uint64(g.at(x, y))
			it.sums[(y+1)*w+x+1] = it.sums[y*w+x+1] + row
		}
	}
	return it
}

// sum returns the pixel sum over the inclusive rectangle [x0,x1]x[y0,y1].
func (it integral) sum(x0, y0, x1, y1 int) uint64 {
	w := it.w
	return it.sums[(y1+1)*w+x1+1] + it.sums[y0*w+x0] - it.sums[y0*w+x1+1] - it.sums[(y1+1)*w+x0]
}
