package imageproc

import (
	"fmt"
	"image"
	"math/rand/v2"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GaussianNoise adds normally distributed noise with the given mean and
// standard deviation to every pixel. The same seed yields the same output.
func GaussianNoise(src *image.Gray, mean, stddev float64, seed uint64) (*image.Gray, error) {
	if stddev < 0 {
		return nil, fmt.Errorf("%w: negative standard deviation %v", ErrInvalidParameter, stddev)
	}
	g := newGrid(src)
	rng := newRand(seed)
	out := newGray(g.w, g.h)
	for i, p := range g.pix {
		out.Pix[i] = clampU8(float64(p) + mean + stddev*rng.NormFloat64())
	}
	return out, nil
}

// SaltAndPepperNoise replaces a fraction rate of the pixels with black or
// white, chosen with equal probability.
func SaltAndPepperNoise(src *image.Gray, rate float64, seed uint64) (*image.Gray, error) {
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("%w: noise rate %v outside [0, 1]", ErrInvalidParameter, rate)
	}
	g := newGrid(src)
	rng := newRand(seed)
	out := g.image()
	for i := range out.Pix {
		if rng.Float64() >= rate {
			continue
		}
		if rng.IntN(2) == 0 {
			out.Pix[i] = 0
		} else {
			out.Pix[i] = 255
		}
	}
	return out, nil
}
