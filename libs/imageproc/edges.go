package imageproc

import (
	"fmt"
	"image"
	"math"
)

// gradients holds the horizontal and vertical sobel responses of an image.
type gradients struct {
	w, h   int
	gx, gy []float64
}

func sobel(g grid) gradients {
	gr := gradients{w: g.w, h: g.h, gx: make([]float64, g.w*g.h), gy: make([]float64, g.w*g.h)}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			tl := float64(g.clamped(x-1, y-1))
			tc := float64(g.clamped(x, y-1))
			tr := float64(g.clamped(x+1, y-1))
			ml := float64(g.clamped(x-1, y))
			mr := float64(g.clamped(x+1, y))
			bl := float64(g.clamped(x-1, y+1))
			bc := float64(g.clamped(x, y+1))
			br := float64(g.clamped(x+1, y+1))

			gr.gx[y*g.w+x] = (tr + 2*mr + br) - (tl + 2*ml + bl)
			gr.gy[y*g.w+x] = (bl + 2*bc + br) - (tl + 2*tc + tr)
		}
	}
	return gr
}

func (gr gradients) magnitude(i int) float64 {
	return math.Hypot(gr.gx[i], gr.gy[i])
}

const cannySigma = 1.4

// Canny runs the Canny edge detector: gaussian smoothing, sobel gradients,
// non-maximum suppression and hysteresis between low and high. Edge pixels
// are 255, everything else 0.
func Canny(src *image.Gray, low, high float32) (*image.Gray, error) {
	if low > high {
		return nil, fmt.Errorf("%w: low threshold %v exceeds high threshold %v", ErrInvalidParameter, low, high)
	}
	blurred, err := GaussianBlur(src, cannySigma)
	if err != nil {
		return nil, err
	}
	g := newGrid(blurred)
	gr := sobel(g)
	thin := suppressNonMaxima(gr)
	return hysteresis(thin, g.w, g.h, float64(low), float64(high)), nil
}

// suppressNonMaxima keeps gradient magnitudes that are local maxima along the
// gradient direction. Border pixels are dropped.
func suppressNonMaxima(gr gradients) []float64 {
	out := make([]float64, gr.w*gr.h)
	for y := 1; y < gr.h-1; y++ {
		for x := 1; x < gr.w-1; x++ {
			i := y*gr.w + x
			mag := gr.magnitude(i)
			if mag == 0 {
				continue
			}
			angle := math.Atan2(gr.gy[i], gr.gx[i]) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var a, b int
			switch {
			case angle < 22.5 || angle >= 157.5:
				a, b = i-1, i+1
			case angle < 67.5:
				a, b = i-gr.w-1, i+gr.w+1
			case angle < 112.5:
				a, b = i-gr.w, i+gr.w
			default:
				a, b = i-gr.w+1, i+gr.w-1
			}
			if mag >= gr.magnitude(a) && mag >= gr.magnitude(b) {
				out[i] = mag
			}
		}
	}
	return out
}

// hysteresis marks pixels above high as edges and grows them through
// 8-connected neighbours above low.
func hysteresis(mag []float64, w, h int, low, high float64) *image.Gray {
	out := newGray(w, h)
	stack := make([]int, 0, 64)
	for i, m := range mag {
		if m < high || m == 0 || out.Pix[i] != 0 {
			continue
		}
		out.Pix[i] = 255
		stack = append(stack, i)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cx, cy := cur%w, cur/w
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := cx+dx, cy+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					n := ny*w + nx
					if out.Pix[n] == 0 && mag[n] >= low && mag[n] > 0 {
						out.Pix[n] = 255
						stack = append(stack, n)
					}
				}
			}
		}
	}
	return out
}
