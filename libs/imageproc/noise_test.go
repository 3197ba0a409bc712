package imageproc

import (
	"bytes"
	"errors"
	"testing"
)

func TestGaussianNoise(t *testing.T) {
	src := uniform(8, 8, 128)

	a, err := GaussianNoise(src, 0, 20, 42)
	if err != nil {
		t.Fatalf("GaussianNoise: %v", err)
	}
	b, _ := GaussianNoise(src, 0, 20, 42)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same seed produced different noise")
	}
	if countValue(a, 128) == 64 {
		t.Error("noise left the image unchanged")
	}

	flat, _ := GaussianNoise(src, 10, 0, 1)
	if n := countValue(flat, 138); n != 64 {
		t.Errorf("zero deviation with mean 10: %v", flat.Pix)
	}

	if _, err := GaussianNoise(src, 0, -1, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative deviation error = %v, want ErrInvalidParameter", err)
	}
}

func TestSaltAndPepperNoise(t *testing.T) {
	src := uniform(8, 8, 128)

	none, err := SaltAndPepperNoise(src, 0, 3)
	if err != nil {
		t.Fatalf("SaltAndPepperNoise: %v", err)
	}
	if n := countValue(none, 128); n != 64 {
		t.Errorf("rate 0 changed %d pixels", 64-n)
	}

	all, _ := SaltAndPepperNoise(src, 1, 3)
	if n := countValue(all, 0) + countValue(all, 255); n != 64 {
		t.Errorf("rate 1 left %d pixels untouched", 64-n)
	}

	for _, rate := range []float64{-0.1, 1.5} {
		if _, err := SaltAndPepperNoise(src, rate, 3); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("rate %v error = %v, want ErrInvalidParameter", rate, err)
		}
	}
}
