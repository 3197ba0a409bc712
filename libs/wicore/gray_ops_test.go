package wicore

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grayWith returns a gray handle holding pix, released at the end of the test.
func grayWith(t *testing.T, w, h int, pix ...uint8) GrayHandle {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	return owned(t, Grays, Grays.Wrap(Ok(img)))
}

func grayPix(t *testing.T, h GrayHandle) []uint8 {
	t.Helper()
	g, ok := Grays.Value(h)
	require.True(t, ok, "handle %d is not ok", h)
	return g.Pix
}

func TestGrayOperations(t *testing.T) {
	g := grayWith(t, 4, 1, 0, 50, 100, 200)

	assert.Equal(t, []uint8{0, 0, 255, 255}, grayPix(t, owned(t, Grays, Threshold(g, 60))))
	assert.Equal(t, []uint8{0, 0, 255, 255}, grayPix(t, owned(t, Grays, StretchContrast(g, 50, 100))))
	assert.Equal(t, []uint8{0, 0, 50, 100}, grayPix(t, owned(t, Grays, Translate(g, 1, 0))))
	assert.Equal(t, []uint8{0, 50, 100, 200}, grayPix(t, g))
}

func TestGrayOperationErrors(t *testing.T) {
	g := grayWith(t, 4, 4)

	tests := map[string]GrayHandle{
		"adaptive radius 0": AdaptiveThreshold(g, 0),
		"stretch lo >= hi":  StretchContrast(g, 9, 9),
		"canny low > high":  Canny(g, 5, 1),
		"blur sigma 0":      GaussianBlur(g, 0),
		"sharpen sigma < 0": SharpenGaussian(g, -1, 1),
		"noise stddev < 0":  GaussianNoise(g, 0, -1, 1),
		"noise rate > 1":    SaltAndPepperNoise(g, 2, 1),
		"shrink to 0":       ShrinkWidth(g, 0),
		"shrink wider":      ShrinkWidth(g, 5),
	}
	for name, h := range tests {
		owned(t, Grays, h)
		require.NotZero(t, h, name)
		msg, ok := Grays.ErrorMessage(h)
		assert.True(t, ok, name)
		assert.NotEmpty(t, msg, name)
	}
}

func TestGrayOperationsSucceed(t *testing.T) {
	g := grayWith(t, 6, 6)
	for name, h := range map[string]GrayHandle{
		"adaptive":  AdaptiveThreshold(g, 1),
		"equalize":  EqualizeHistogram(g),
		"canny":     Canny(g, 1, 5),
		"box":       BoxFilter(g, 1, 1),
		"filter":    GrayFilter3x3(g, [9]float32{0, 0, 0, 0, 1, 0, 0, 0, 0}),
		"gaussian":  GaussianBlur(g, 1),
		"median":    MedianFilter(g, 1, 1),
		"sharpen":   Sharpen3x3(g),
		"sharpen g": SharpenGaussian(g, 1, 0.5),
		"distance":  DistanceTransform(g, "l1"),
		"open":      MorphologyOpen(g, "linf", 1),
		"close":     MorphologyClose(g, "L1", 1),
		"erode":     Erode(g, "LInf", 1),
		"dilate":    Dilate(g, "l1", 1),
		"noise":     GaussianNoise(g, 0, 5, 1),
		"salt":      SaltAndPepperNoise(g, 0.5, 1),
		"shrink":    ShrinkWidth(g, 3),
	} {
		owned(t, Grays, h)
		assert.True(t, Grays.IsOk(h), name)
	}
}

func TestUnknownNormAndConnectivityGiveNull(t *testing.T) {
	g := grayWith(t, 2, 2)
	assert.Zero(t, DistanceTransform(g, "l2"))
	assert.Zero(t, MorphologyOpen(g, "", 1))
	assert.Zero(t, Erode(g, "manhattan", 1))
	assert.Zero(t, ConnectedComponents(g, "six", 0))
}

func TestOtsuLevel(t *testing.T) {
	assert.Equal(t, 10, OtsuLevel(grayWith(t, 4, 1, 10, 10, 200, 200)))
	assert.Equal(t, -1, OtsuLevel(0))
	e := owned(t, Grays, Grays.Wrap(Err[*image.Gray]("x")))
	assert.Equal(t, -1, OtsuLevel(e))
}

func TestMatchHistogramErrorPrecedence(t *testing.T) {
	ok := grayWith(t, 2, 2)
	first := owned(t, Grays, Grays.Wrap(Err[*image.Gray]("first")))
	second := owned(t, Grays, Grays.Wrap(Err[*image.Gray]("second")))

	msg, _ := Grays.ErrorMessage(owned(t, Grays, MatchHistogram(first, second)))
	assert.Equal(t, "first", msg)
	msg, _ = Grays.ErrorMessage(owned(t, Grays, MatchHistogram(ok, second)))
	assert.Equal(t, "second", msg)

	assert.Zero(t, MatchHistogram(ok, 0))
	assert.Zero(t, MatchHistogram(0, ok))
	assert.True(t, Grays.IsOk(owned(t, Grays, MatchHistogram(ok, ok))))
}

func TestConnectedComponentsHandle(t *testing.T) {
	g := grayWith(t, 2, 2, 255, 0, 0, 255)

	four := owned(t, Labels, ConnectedComponents(g, "Four", 0))
	eight := owned(t, Labels, ConnectedComponents(g, "EIGHT", 0))

	v, st := GetLabel(four, 1, 1)
	require.Equal(t, StatusOK, st)
	assert.Equal(t, uint32(2), v)

	v, st = GetLabel(eight, 1, 1)
	require.Equal(t, StatusOK, st)
	assert.Equal(t, uint32(1), v)
	assert.Equal(t, 2, Labels.Width(eight))
}

func TestShrinkWidthOfEmptyImage(t *testing.T) {
	g := owned(t, Grays, NewGray(5, 0))
	require.True(t, Grays.IsOk(g))

	out := owned(t, Grays, ShrinkWidth(g, 3))
	msg, ok := Grays.ErrorMessage(out)
	require.True(t, ok)
	assert.Contains(t, msg, "empty")
	assert.NotContains(t, msg, "index out of range")
}
