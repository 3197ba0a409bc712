package imageproc

import (
	"bytes"
	"image"
	"testing"
)

func grayOf(w, h int, pix ...uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	return img
}

func uniform(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func assertPix(t *testing.T, name string, got *image.Gray, want ...uint8) {
	t.Helper()
	if !bytes.Equal(got.Pix, want) {
		t.Errorf("%s: pixels = %v, want %v", name, got.Pix, want)
	}
}

func countValue(img *image.Gray, v uint8) int {
	n := 0
	for _, p := range img.Pix {
		if p == v {
			n++
		}
	}
	return n
}
