package wicore

import (
	"image"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"webimages.io/libs/imageproc"
)

// NewLabels returns a handle to a label image filled with label 0.
func NewLabels(width, height uint32) LabelHandle {
	return construct(Labels, func() (*imageproc.LabelImage, error) {
		if err := checkDimensions(int(width), int(height), 4); err != nil {
			return nil, err
		}
		return imageproc.NewLabelImage(image.Rect(0, 0, int(width), int(height))), nil
	})
}

// Palette returns n distinct-looking opaque colours generated from seed.
// The same n and seed always give the same colours.
func Palette(n int, seed uint64) []color.NRGBA {
	rng := rand.New(rand.NewPCG(seed, ^seed))
	out := make([]color.NRGBA, n)
	for i := range out {
		c := colorful.Hsv(rng.Float64()*360, 0.5+rng.Float64()*0.5, 0.6+rng.Float64()*0.4)
		r, g, b := c.RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// colorize paints label 0 black and every other label with its palette
// colour. Labels are matched to colours in ascending order.
func colorize(l *imageproc.LabelImage, seed uint64) *ColorImage {
	labels := l.Labels()
	lookup := make(map[uint32]color.NRGBA, len(labels))
	nonZero := labels
	if len(labels) > 0 && labels[0] == 0 {
		nonZero = labels[1:]
	}
	for i, c := range Palette(len(nonZero), seed) {
		lookup[nonZero[i]] = c
	}
	lookup[0] = color.NRGBA{A: 255}

	b := l.Bounds()
	out := imaging.New(b.Dx(), b.Dy(), color.NRGBA{A: 255})
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetNRGBA(x, y, lookup[l.LabelAt(b.Min.X+x, b.Min.Y+y)])
		}
	}
	return &ColorImage{kind: RGB8, img: out}
}

// paletteSeed returns the configured seed, or a time-based one. Unseeded
// visualisations may therefore differ from call to call.
func paletteSeed() uint64 {
	if seed := CurrentConfig().PaletteSeed; seed != nil {
		return *seed
	}
	return uint64(time.Now().UnixNano())
}

// LabelsToColor renders a label image as rgb:8 for inspection, using the
// configured palette seed when there is one.
func LabelsToColor(h LabelHandle) ImageHandle {
	seed := paletteSeed()
	return LabelsToColorSeeded(h, seed)
}

// LabelsToColorSeeded is LabelsToColor with an explicit palette seed.
func LabelsToColorSeeded(h LabelHandle, seed uint64) ImageHandle {
	return apply(Labels, h, Images, func(l *imageproc.LabelImage) (*ColorImage, error) {
		return colorize(l, seed), nil
	})
}
