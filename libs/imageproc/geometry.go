package imageproc

import (
	"image"

	"golang.org/x/image/draw"
)

// Translate shifts src by (tx, ty). The output keeps the input size; pixels
// uncovered by the shift are black.
func Translate(src *image.Gray, tx, ty int32) *image.Gray {
	b := src.Bounds()
	dst := newGray(b.Dx(), b.Dy())
	target := image.Rect(0, 0, b.Dx(), b.Dy()).Add(image.Pt(int(tx), int(ty)))
	draw.Draw(dst, target, src, b.Min, draw.Src)
	return dst
}
