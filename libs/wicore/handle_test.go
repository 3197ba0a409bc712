package wicore

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStates(t *testing.T) {
	ok := Ok(3)
	assert.True(t, ok.IsOk())
	assert.False(t, ok.IsErr())
	assert.Equal(t, "", ok.Message())

	failed := Err[int]("broken")
	assert.False(t, failed.IsOk())
	assert.True(t, failed.IsErr())
	assert.Equal(t, "broken", failed.Message())

	assert.Equal(t, unknownError, Err[int]("").Message())

	var null *Result[int]
	assert.False(t, null.IsOk())
	assert.True(t, null.IsErr())
	assert.Equal(t, "", null.Message())
}

func TestConstructorsAreExactlyOneOfOkOrErr(t *testing.T) {
	handles := []ImageHandle{
		NewImage(2, 2, Luma8),
		NewImage(2, 2, RGB8),
		NewImage(2, 2, RGBA8),
		Open("does-not-exist.png"),
	}
	for _, h := range handles {
		owned(t, Images, h)
		require.NotZero(t, h)
		assert.NotEqual(t, Images.IsOk(h), Images.IsErr(h))
	}
}

func TestNullHandle(t *testing.T) {
	assert.False(t, Images.IsOk(0))
	assert.True(t, Images.IsErr(0))
	msg, ok := Images.ErrorMessage(0)
	assert.False(t, ok)
	assert.Empty(t, msg)
	assert.Equal(t, -1, Images.Width(0))
	assert.Equal(t, -1, Grays.Height(0))
	assert.Zero(t, Images.Clone(0))
	assert.False(t, Images.Release(0))
	assert.Zero(t, Blur(0, 1))
	assert.Zero(t, ToGray(0))
}

func TestErrorMessageOnlyForErrorHandles(t *testing.T) {
	h := newRGB(t, 1, 1)
	msg, ok := Images.ErrorMessage(h)
	assert.False(t, ok)
	assert.Empty(t, msg)

	e := owned(t, Grays, Grays.Wrap(Err[*image.Gray]("bad input")))
	msg, ok = Grays.ErrorMessage(e)
	assert.True(t, ok)
	assert.Equal(t, "bad input", msg)
	assert.Equal(t, -1, Grays.Width(e))
}

func TestCloneIsIndependent(t *testing.T) {
	h := newRGB(t, 4, 4)
	require.Equal(t, StatusOK, SetRGBA(h, 1, 1, red))

	c := Images.Clone(h)
	require.NotEqual(t, h, c)
	require.Equal(t, StatusOK, SetRGBA(c, 1, 1, blue))
	assert.True(t, Images.Release(c))

	assert.True(t, Images.IsOk(h))
	assert.Equal(t, red, mustRGBA(t, h, 1, 1))
}

func TestCloneOfErrorKeepsMessage(t *testing.T) {
	bad := owned(t, Grays, Grays.Wrap(Err[*image.Gray]("decode failed")))
	c := owned(t, Grays, Grays.Clone(bad))

	msg, ok := Grays.ErrorMessage(c)
	assert.True(t, ok)
	assert.Equal(t, "decode failed", msg)
	assert.True(t, Grays.IsErr(bad))
}

func TestDoubleReleaseIsDetected(t *testing.T) {
	a := NewGray(2, 2)
	b := owned(t, Grays, NewGray(2, 2))
	before := LiveHandles()

	assert.True(t, Grays.Release(a))
	assert.False(t, Grays.Release(a))
	assert.Equal(t, before-1, LiveHandles())

	assert.True(t, Grays.IsOk(b))
	assert.False(t, Grays.IsOk(a))
	assert.Zero(t, Threshold(a, 1))
}

func TestWrongKindIsTreatedAsNull(t *testing.T) {
	g := owned(t, Grays, NewGray(3, 3))

	assert.False(t, Images.IsOk(ImageHandle(g)))
	assert.Zero(t, Blur(ImageHandle(g), 1))
	assert.False(t, Images.Release(ImageHandle(g)))
	assert.True(t, Grays.IsOk(g))
}

func TestErrorPropagatesUnchanged(t *testing.T) {
	e := owned(t, Images, Open("missing/file.png"))
	want, ok := Images.ErrorMessage(e)
	require.True(t, ok)
	require.NotEmpty(t, want)

	ops := map[string]ImageHandle{
		"blur":      Blur(e, 2),
		"invert":    Invert(e),
		"resize":    Resize(e, 2, 2, "nearest"),
		"crop":      Crop(e, 0, 0, 1, 1),
		"rotate90":  Rotate90(e),
		"grayscale": Grayscale(e),
	}
	for name, h := range ops {
		owned(t, Images, h)
		got, ok := Images.ErrorMessage(h)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	g := owned(t, Grays, ToGray(e))
	got, _ := Grays.ErrorMessage(g)
	assert.Equal(t, want, got)

	l := owned(t, Labels, ConnectedComponents(g, "four", 0))
	got, _ = Labels.ErrorMessage(l)
	assert.Equal(t, want, got)
}

func TestApplyRecoversPanics(t *testing.T) {
	h := owned(t, Grays, NewGray(1, 1))
	out := owned(t, Grays, apply(Grays, h, Grays, func(*image.Gray) (*image.Gray, error) {
		panic("boom")
	}))

	msg, ok := Grays.ErrorMessage(out)
	require.True(t, ok)
	assert.Contains(t, msg, "boom")
}
