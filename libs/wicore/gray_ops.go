package wicore

import (
	"image"

	"webimages.io/libs/imageproc"
)

// NewGray returns a handle to a black gray image, or an error handle when
// the size cannot be allocated.
func NewGray(width, height uint32) GrayHandle {
	return construct(Grays, func() (*image.Gray, error) {
		if err := checkDimensions(int(width), int(height), 1); err != nil {
			return nil, err
		}
		return image.NewGray(image.Rect(0, 0, int(width), int(height))), nil
	})
}

// grayOp lifts an infallible gray operation into a handle operation.
func grayOp(h GrayHandle, fn func(*image.Gray) *image.Gray) GrayHandle {
	return apply(Grays, h, Grays, func(g *image.Gray) (*image.Gray, error) {
		return fn(g), nil
	})
}

// grayOpErr lifts a fallible gray operation into a handle operation.
func grayOpErr(h GrayHandle, fn func(*image.Gray) (*image.Gray, error)) GrayHandle {
	return apply(Grays, h, Grays, fn)
}

func AdaptiveThreshold(h GrayHandle, blockRadius uint32) GrayHandle {
	return grayOpErr(h, func(g *image.Gray) (*image.Gray, error) {
		return imageproc.AdaptiveThreshold(g, blockRadius)
	})
}

func EqualizeHistogram(h GrayHandle) GrayHandle {
	return grayOp(h, imageproc.EqualizeHistogram)
}

// MatchHistogram remaps h so its histogram approximates target's. An error in
// h is reported before an error in target.
func MatchHistogram(h, target GrayHandle) GrayHandle {
	return apply2(Grays, h, target, Grays, func(src, tgt *image.Gray) (*image.Gray, error) {
		return imageproc.MatchHistogram(src, tgt), nil
	})
}

// OtsuLevel returns the Otsu threshold, or -1 for null and error handles.
func OtsuLevel(h GrayHandle) int {
	g, ok := Grays.Value(h)
	if !ok {
		return -1
	}
	return int(imageproc.OtsuLevel(g))
}

func StretchContrast(h GrayHandle, lower, upper uint8) GrayHandle {
	return grayOpErr(h, func(g *image.Gray) (*image.Gray, error) {
		return imageproc.StretchContrast(g, lower, upper)
	})
}

func Threshold(h GrayHandle, level uint8) GrayHandle {
	return grayOp(h, func(g *image.Gray) *image.Gray {
		return imageproc.Threshold(g, level)
	})
}

func Canny(h GrayHandle, low, high float32) GrayHandle {
	return grayOpErr(h, func(g *image.Gray) (*image.Gray, error) {
		return imageproc.Canny(g, low, high)
	})
}

func BoxFilter(h GrayHandle, xRadius, yRadius uint32) GrayHandle {
	return grayOp(h, func(g *image.Gray) *image.Gray {
		return imageproc.BoxFilter(g, xRadius, yRadius)
	})
}

// GrayFilter3x3 convolves with a row-major 3x3 kernel, without normalisation.
func GrayFilter3x3(h GrayHandle, kernel [9]float32) GrayHandle {
	return grayOp(h, func(g *image.Gray) *image.Gray {
		return imageproc.Filter3x3(g, kernel)
	})
}

func GaussianBlur(h GrayHandle, sigma float32) GrayHandle {
	return grayOpErr(h, func(g *image.Gray) (*image.Gray, error) {
		return imageproc.GaussianBlur(g, sigma)
	})
}

func MedianFilter(h GrayHandle, xRadius, yRadius uint32) GrayHandle {
	return grayOp(h, func(g *image.Gray) *image.Gray {
		return imageproc.MedianFilter(g, xRadius, yRadius)
	})
}

func Sharpen3x3(h GrayHandle) GrayHandle {
	return grayOp(h, imageproc.Sharpen3x3)
}

func SharpenGaussian(h GrayHandle, sigma, amount float32) GrayHandle {
	return grayOpErr(h, func(g *image.Gray) (*image.Gray, error) {
		return imageproc.SharpenGaussian(g, sigma, amount)
	})
}

func Translate(h GrayHandle, tx, ty int32) GrayHandle {
	return grayOp(h, func(g *image.Gray) *image.Gray {
		return imageproc.Translate(g, tx, ty)
	})
}

// DistanceTransform gives the null handle for an unknown norm token.
func DistanceTransform(h GrayHandle, norm string) GrayHandle {
	n, ok := ParseNorm(norm)
	if !ok {
		return 0
	}
	return grayOp(h, func(g *image.Gray) *image.Gray {
		return imageproc.DistanceTransform(g, n)
	})
}

type morphology func(*image.Gray, imageproc.Norm, uint8) *image.Gray

func morph(h GrayHandle, norm string, k uint8, op morphology) GrayHandle {
	n, ok := ParseNorm(norm)
	if !ok {
		return 0
	}
	return grayOp(h, func(g *image.Gray) *image.Gray {
		return op(g, n, k)
	})
}

// MorphologyOpen is an erosion followed by a dilation.
func MorphologyOpen(h GrayHandle, norm string, k uint8) GrayHandle {
	return morph(h, norm, k, imageproc.Open)
}

// MorphologyClose is a dilation followed by an erosion.
func MorphologyClose(h GrayHandle, norm string, k uint8) GrayHandle {
	return morph(h, norm, k, imageproc.Close)
}

func Erode(h GrayHandle, norm string, k uint8) GrayHandle {
	return morph(h, norm, k, imageproc.Erode)
}

func Dilate(h GrayHandle, norm string, k uint8) GrayHandle {
	return morph(h, norm, k, imageproc.Dilate)
}

func GaussianNoise(h GrayHandle, mean, stddev float64, seed uint64) GrayHandle {
	return grayOpErr(h, func(g *image.Gray) (*image.Gray, error) {
		return imageproc.GaussianNoise(g, mean, stddev, seed)
	})
}

func SaltAndPepperNoise(h GrayHandle, rate float64, seed uint64) GrayHandle {
	return grayOpErr(h, func(g *image.Gray) (*image.Gray, error) {
		return imageproc.SaltAndPepperNoise(g, rate, seed)
	})
}

// ConnectedComponents labels regions of equal intensity. An unknown
// connectivity token gives the null handle.
func ConnectedComponents(h GrayHandle, connectivity string, background uint8) LabelHandle {
	conn, ok := ParseConnectivity(connectivity)
	if !ok {
		return 0
	}
	return apply(Grays, h, Labels, func(g *image.Gray) (*imageproc.LabelImage, error) {
		return imageproc.ConnectedComponents(g, conn, background), nil
	})
}

func ShrinkWidth(h GrayHandle, target uint32) GrayHandle {
	return grayOpErr(h, func(g *image.Gray) (*image.Gray, error) {
		return imageproc.ShrinkWidth(g, target)
	})
}
