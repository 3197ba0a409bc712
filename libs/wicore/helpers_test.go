package wicore

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

// newRGB returns an rgb:8 handle released at the end of the test.
func newRGB(t *testing.T, w, h uint32) ImageHandle {
	t.Helper()
	img := NewImage(w, h, RGB8)
	require.True(t, Images.IsOk(img))
	t.Cleanup(func() { Images.Release(img) })
	return img
}

// owned registers h for release at the end of the test and returns it.
func owned[H ~uint64, T any](t *testing.T, k *Kind[T, H], h H) H {
	t.Helper()
	t.Cleanup(func() { k.Release(h) })
	return h
}

func mustRGBA(t *testing.T, h ImageHandle, x, y uint32) color.NRGBA {
	t.Helper()
	px, st := GetRGBA(h, x, y)
	require.Equal(t, StatusOK, st)
	return px
}

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)
