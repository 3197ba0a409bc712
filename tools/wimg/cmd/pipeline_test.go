package cmd

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestRunPipelineFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	if err := imaging.Save(imaging.New(4, 2, color.NRGBA{R: 200, A: 255}), src); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "nested", "out.png")
	pipe, err := buildPipeline("rotate=90,invert", dst, 0)
	if err != nil {
		t.Fatalf("buildPipeline: %v", err)
	}
	inSize, outSize, err := runPipelineFile(context.Background(), pipe, src, dst)
	if err != nil {
		t.Fatalf("runPipelineFile: %v", err)
	}
	if inSize == 0 || outSize == 0 {
		t.Errorf("sizes = %d, %d, want both non-zero", inSize, outSize)
	}

	out, err := imaging.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Bounds(); got != image.Rect(0, 0, 2, 4) {
		t.Errorf("bounds = %v, want 2x4", got)
	}
	r, _, _, _ := out.At(0, 0).RGBA()
	if r>>8 != 55 {
		t.Errorf("red = %d, want 55", r>>8)
	}
}

func TestBuildPipelineErrors(t *testing.T) {
	if _, err := buildPipeline("invert", "out.xyz", 0); err == nil {
		t.Error("expected error for unknown output extension")
	}
	if _, err := buildPipeline("explode", "out.png", 0); err == nil {
		t.Error("expected error for unknown operation")
	}
}
