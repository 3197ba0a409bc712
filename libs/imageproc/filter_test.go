package imageproc

import (
	"errors"
	"testing"
)

func TestBoxFilterUniform(t *testing.T) {
	got := BoxFilter(uniform(4, 3, 77), 2, 1)
	if n := countValue(got, 77); n != 12 {
		t.Errorf("BoxFilter changed a uniform image: %v", got.Pix)
	}
}

func TestFilter3x3Identity(t *testing.T) {
	src := grayOf(3, 2, 1, 2, 3, 4, 5, 6)
	identity := [9]float32{0, 0, 0, 0, 1, 0, 0, 0, 0}
	assertPix(t, "Filter3x3", Filter3x3(src, identity), 1, 2, 3, 4, 5, 6)
}

func TestFilter3x3Clamps(t *testing.T) {
	src := uniform(2, 2, 200)
	double := [9]float32{0, 0, 0, 0, 2, 0, 0, 0, 0}
	negate := [9]float32{0, 0, 0, 0, -1, 0, 0, 0, 0}
	assertPix(t, "double", Filter3x3(src, double), 255, 255, 255, 255)
	assertPix(t, "negate", Filter3x3(src, negate), 0, 0, 0, 0)
}

func TestFilter3x3ReplicatesEdges(t *testing.T) {
	src := grayOf(3, 1, 10, 20, 30)
	sharpen := [9]float32{0, -1, 0, -1, 5, -1, 0, -1, 0}
	assertPix(t, "sharpen", Filter3x3(src, sharpen), 0, 20, 40)

	half := [9]float32{0, 0, 0, 0, 0.5, 0, 0, 0, 0}
	assertPix(t, "half", Filter3x3(grayOf(2, 1, 3, 9), half), 2, 5)
}

func TestSharpen3x3Uniform(t *testing.T) {
	got := Sharpen3x3(uniform(3, 3, 60))
	if n := countValue(got, 60); n != 9 {
		t.Errorf("Sharpen3x3 changed a uniform image: %v", got.Pix)
	}
}

func TestGaussianBlurRejectsSigma(t *testing.T) {
	for _, sigma := range []float32{0, -1} {
		if _, err := GaussianBlur(uniform(2, 2, 0), sigma); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("GaussianBlur(sigma=%v) error = %v, want ErrInvalidParameter", sigma, err)
		}
		if _, err := SharpenGaussian(uniform(2, 2, 0), sigma, 1); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("SharpenGaussian(sigma=%v) error = %v, want ErrInvalidParameter", sigma, err)
		}
	}
}

func TestGaussianBlurKeepsSize(t *testing.T) {
	got, err := GaussianBlur(uniform(7, 5, 128), 1.5)
	if err != nil {
		t.Fatalf("GaussianBlur: %v", err)
	}
	if b := got.Bounds(); b.Dx() != 7 || b.Dy() != 5 {
		t.Errorf("GaussianBlur bounds = %v, want 7x5", b)
	}
}

func TestMedianFilterRemovesSpeck(t *testing.T) {
	src := uniform(3, 3, 0)
	src.Pix[4] = 255
	got := MedianFilter(src, 1, 1)
	if n := countValue(got, 0); n != 9 {
		t.Errorf("MedianFilter kept the speck: %v", got.Pix)
	}
}
