package imageproc

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// BoxFilter replaces each pixel by the rounded mean of the
// (2*xRadius+1)x(2*yRadius+1) window around it. Edges are replicated.
func BoxFilter(src *image.Gray, xRadius, yRadius uint32) *image.Gray {
	g := newGrid(src)
	rx, ry := int(xRadius), int(yRadius)

	// Horizontal pass into row sums, then vertical pass over the sums.
	rows := make([]uint32, g.w*g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			var s uint32
			for dx := -rx; dx <= rx; dx++ {
				s += uint32(g.clamped(x+dx, y))
			}
			rows[y*g.w+x] = s
		}
	}

	area := uint32((2*rx + 1) * (2*ry + 1))
	out := newGray(g.w, g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			var s uint32
			for dy := -ry; dy <= ry; dy++ {
				s += rows[clampInt(y+dy, 0, g.h-1)*g.w+x]
			}
			out.Pix[y*out.Stride+x] = uint8((s + area/2) / area)
		}
	}
	return out
}

// Filter3x3 convolves src with a row-major 3x3 kernel. The kernel is applied
// as given, without normalisation; results are rounded and clamped.
func Filter3x3(src *image.Gray, kernel [9]float32) *image.Gray {
	var k [9]float64
	for i, v := range kernel {
		k[i] = float64(v)
	}
	return ToGray(imaging.Convolve3x3(src, k, nil))
}

var sharpenKernel = [9]float32{
	0, -1, 0,
	-1, 5, -1,
	0, -1, 0,
}

// Sharpen3x3 applies the standard 4-neighbour sharpening kernel.
func Sharpen3x3(src *image.Gray) *image.Gray {
	return Filter3x3(src, sharpenKernel)
}

// GaussianBlur blurs src with a gaussian of standard deviation sigma.
func GaussianBlur(src *image.Gray, sigma float32) (*image.Gray, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("%w: sigma must be positive, got %v", ErrInvalidParameter, sigma)
	}
	return ToGray(imaging.Blur(src, float64(sigma))), nil
}

// SharpenGaussian computes src + amount*(src - blur(src, sigma)).
func SharpenGaussian(src *image.Gray, sigma, amount float32) (*image.Gray, error) {
	blurred, err := GaussianBlur(src, sigma)
	if err != nil {
		return nil, err
	}
	g := newGrid(src)
	for i, p := range g.pix {
		orig := float64(p)
		g.pix[i] = clampU8(orig + float64(amount)*(orig-float64(blurred.Pix[i])))
	}
	return g.image(), nil
}

// MedianFilter replaces each pixel by the median of the
// (2*xRadius+1)x(2*yRadius+1) window around it. Edges are replicated.
func MedianFilter(src *image.Gray, xRadius, yRadius uint32) *image.Gray {
	g := newGrid(src)
	rx, ry := int(xRadius), int(yRadius)
	count := (2*rx + 1) * (2*ry + 1)
	out := newGray(g.w, g.h)

	var hist [256]int
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			hist = [256]int{}
			for dy := -ry; dy <= ry; dy++ {
				for dx := -rx; dx <= rx; dx++ {
					hist[g.clamped(x+dx, y+dy)]++
				}
			}
			rank, seen := count/2, 0
			for v, c := range hist {
				seen += c
				if seen > rank {
					out.Pix[y*out.Stride+x] = uint8(v)
					break
				}
			}
		}
	}
	return out
}
