package wicore

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

var errEmptyImage = errors.New("image has no pixels")

// NewImage returns a handle to a blank image of the given layout.
func NewImage(width, height uint32, kind PixelKind) ImageHandle {
	return construct(Images, func() (*ColorImage, error) {
		return NewColorImage(int(width), int(height), kind)
	})
}

// Color returns the layout token of the image, or "" for null and error
// handles.
func Color(h ImageHandle) string {
	img, ok := Images.Value(h)
	if !ok {
		return ""
	}
	return img.Kind().String()
}

// ToGray converts an image to its luma.
func ToGray(h ImageHandle) GrayHandle {
	return apply(Images, h, Grays, func(c *ColorImage) (*image.Gray, error) {
		return c.Gray(), nil
	})
}

// GrayToImage wraps a gray image as a gray:8 color image.
func GrayToImage(h GrayHandle) ImageHandle {
	return apply(Grays, h, Images, func(g *image.Gray) (*ColorImage, error) {
		return FromGray(g), nil
	})
}

// Crop cuts the region (x, y, width, height), clipped to the image.
func Crop(h ImageHandle, x, y, width, height uint32) ImageHandle {
	return apply(Images, h, Images, func(c *ColorImage) (*ColorImage, error) {
		want := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height))
		r := want.Intersect(c.Bounds())
		if r.Empty() {
			return nil, fmt.Errorf("crop region %v does not overlap image %v", want, c.Bounds())
		}
		return c.derive(imaging.Crop(c.img, r)), nil
	})
}

// fitDimensions scales (w, h) to the largest size fitting in maxW x maxH
// while keeping the aspect ratio.
func fitDimensions(w, h, maxW, maxH int) (int, int) {
	ratio := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(math.Round(float64(w)*ratio)))
	nh := max(1, int(math.Round(float64(h)*ratio)))
	return nw, nh
}

func resize(c *ColorImage, width, height uint32, filter imaging.ResampleFilter, exact bool) (*ColorImage, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("invalid target dimensions %dx%d", width, height)
	}
	if err := checkDimensions(int(width), int(height), 4); err != nil {
		return nil, err
	}
	b := c.Bounds()
	if b.Empty() {
		return nil, errEmptyImage
	}
	w, h := int(width), int(height)
	if !exact {
		w, h = fitDimensions(b.Dx(), b.Dy(), w, h)
	}
	return c.derive(imaging.Resize(c.img, w, h, filter)), nil
}

// Resize scales the image to fit within width x height, keeping its aspect
// ratio. An unknown filter token gives the null handle.
func Resize(h ImageHandle, width, height uint32, filter string) ImageHandle {
	f, ok := ParseFilter(filter)
	if !ok {
		return 0
	}
	return apply(Images, h, Images, func(c *ColorImage) (*ColorImage, error) {
		return resize(c, width, height, f, false)
	})
}

// ResizeExact scales the image to exactly width x height.
func ResizeExact(h ImageHandle, width, height uint32, filter string) ImageHandle {
	f, ok := ParseFilter(filter)
	if !ok {
		return 0
	}
	return apply(Images, h, Images, func(c *ColorImage) (*ColorImage, error) {
		return resize(c, width, height, f, true)
	})
}

// Thumbnail is Resize with a box filter.
func Thumbnail(h ImageHandle, width, height uint32) ImageHandle {
	return apply(Images, h, Images, func(c *ColorImage) (*ColorImage, error) {
		return resize(c, width, height, imaging.Box, false)
	})
}

// ThumbnailExact is ResizeExact with a box filter.
func ThumbnailExact(h ImageHandle, width, height uint32) ImageHandle {
	return apply(Images, h, Images, func(c *ColorImage) (*ColorImage, error) {
		return resize(c, width, height, imaging.Box, true)
	})
}

// Grayscale converts to luma. RGBA images keep their alpha and layout; the
// others become gray:8.
func Grayscale(h ImageHandle) ImageHandle {
	return apply(Images, h, Images, func(c *ColorImage) (*ColorImage, error) {
		if c.kind == RGBA8 {
			return &ColorImage{kind: RGBA8, img: imaging.Grayscale(c.img)}, nil
		}
		return FromGray(c.Gray()), nil
	})
}

// transform lifts an infallible imaging operation into a handle operation.
func transform(h ImageHandle, fn func(image.Image) *image.NRGBA) ImageHandle {
	return apply(Images, h, Images, func(c *ColorImage) (*ColorImage, error) {
		return c.derive(fn(c.img)), nil
	})
}

func Invert(h ImageHandle) ImageHandle {
	return transform(h, imaging.Invert)
}

func FlipVertical(h ImageHandle) ImageHandle {
	return transform(h, imaging.FlipV)
}

func FlipHorizontal(h ImageHandle) ImageHandle {
	return transform(h, imaging.FlipH)
}

// Rotate90 rotates clockwise by 90 degrees. imaging rotates counter-clockwise.
func Rotate90(h ImageHandle) ImageHandle {
	return transform(h, imaging.Rotate270)
}

func Rotate180(h ImageHandle) ImageHandle {
	return transform(h, imaging.Rotate180)
}

// Rotate270 rotates clockwise by 270 degrees.
func Rotate270(h ImageHandle) ImageHandle {
	return transform(h, imaging.Rotate90)
}

// Blur applies a gaussian blur of standard deviation sigma.
func Blur(h ImageHandle, sigma float32) ImageHandle {
	return transform(h, func(img image.Image) *image.NRGBA {
		return imaging.Blur(img, float64(sigma))
	})
}

// Unsharpen adds back the difference between each channel and its blurred
// value when that difference exceeds threshold.
func Unsharpen(h ImageHandle, sigma float32, threshold int32) ImageHandle {
	return transform(h, func(img image.Image) *image.NRGBA {
		out := imaging.Clone(img)
		blurred := imaging.Blur(img, float64(sigma))
		for i := range out.Pix {
			if i%4 == 3 {
				continue
			}
			diff := int32(out.Pix[i]) - int32(blurred.Pix[i])
			if diff > threshold || -diff > threshold {
				out.Pix[i] = clampChannel(int32(out.Pix[i]) + diff)
			}
		}
		return out
	})
}

// Filter3x3 convolves with a row-major 3x3 kernel normalised by its sum when
// the sum is not zero.
func Filter3x3(h ImageHandle, kernel [9]float32) ImageHandle {
	var k [9]float64
	for i, v := range kernel {
		k[i] = float64(v)
	}
	return transform(h, func(img image.Image) *image.NRGBA {
		return imaging.Convolve3x3(img, k, &imaging.ConvolveOptions{Normalize: true})
	})
}

// AdjustContrast changes the contrast by percent, in [-100, 100].
func AdjustContrast(h ImageHandle, percent float32) ImageHandle {
	return transform(h, func(img image.Image) *image.NRGBA {
		return imaging.AdjustContrast(img, float64(percent))
	})
}

// Brighten adds delta to every colour channel.
func Brighten(h ImageHandle, delta int32) ImageHandle {
	return transform(h, func(img image.Image) *image.NRGBA {
		return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			c.R = clampChannel(int32(c.R) + delta)
			c.G = clampChannel(int32(c.G) + delta)
			c.B = clampChannel(int32(c.B) + delta)
			return c
		})
	})
}

// HueRotate rotates the hue of every pixel by degrees.
func HueRotate(h ImageHandle, degrees int32) ImageHandle {
	m := hueMatrix(float64(degrees))
	return transform(h, func(img image.Image) *image.NRGBA {
		return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			r, g, b := float64(c.R), float64(c.G), float64(c.B)
			c.R = clampFloat(m[0]*r + m[1]*g + m[2]*b)
			c.G = clampFloat(m[3]*r + m[4]*g + m[5]*b)
			c.B = clampFloat(m[6]*r + m[7]*g + m[8]*b)
			return c
		})
	})
}

// hueMatrix returns the luminance-preserving hue rotation matrix.
func hueMatrix(degrees float64) [9]float64 {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return [9]float64{
		0.213 + c*0.787 - s*0.213,
		0.715 - c*0.715 - s*0.715,
		0.072 - c*0.072 + s*0.928,

		0.213 - c*0.213 + s*0.143,
		0.715 + c*0.285 + s*0.140,
		0.072 - c*0.072 - s*0.283,

		0.213 - c*0.213 - s*0.787,
		0.715 - c*0.715 + s*0.715,
		0.072 + c*0.928 + s*0.072,
	}
}

func clampChannel(v int32) uint8 {
	return uint8(min(max(v, 0), 255))
}

func clampFloat(v float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(v, 0), 255)))
}
