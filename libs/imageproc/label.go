package imageproc

import (
	"image"
	"image/color"
	"sort"
)

// LabelImage is a single channel image with 32-bit unsigned pixels. It is used
// for region labels, not for display.
type LabelImage struct {
	Pix    []uint32
	Stride int
	Rect   image.Rectangle
}

// NewLabelImage returns a zeroed label image with the given bounds.
func NewLabelImage(r image.Rectangle) *LabelImage {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &LabelImage{
		Pix:    make([]uint32, w*h),
		Stride: w,
		Rect:   r,
	}
}

func (l *LabelImage) Bounds() image.Rectangle { return l.Rect }

func (l *LabelImage) ColorModel() color.Model { return color.Gray16Model }

// At reports the label saturated to 16 bits so the image can be inspected with
// the standard library.
func (l *LabelImage) At(x, y int) color.Color {
	v := l.LabelAt(x, y)
	if v > 0xffff {
		v = 0xffff
	}
	return color.Gray16{Y: uint16(v)}
}

func (l *LabelImage) offset(x, y int) int {
	return (y-l.Rect.Min.Y)*l.Stride + (x - l.Rect.Min.X)
}

// LabelAt returns the label at (x, y), or 0 outside the bounds.
func (l *LabelImage) LabelAt(x, y int) uint32 {
	if !(image.Point{x, y}.In(l.Rect)) {
		return 0
	}
	return l.Pix[l.offset(x, y)]
}

// SetLabel stores v at (x, y). Points outside the bounds are ignored.
func (l *LabelImage) SetLabel(x, y int, v uint32) {
	if !(image.Point{x, y}.In(l.Rect)) {
		return
	}
	l.Pix[l.offset(x, y)] = v
}

// Clone returns a deep copy.
func (l *LabelImage) Clone() *LabelImage {
	out := &LabelImage{
		Pix:    make([]uint32, len(l.Pix)),
		Stride: l.Stride,
		Rect:   l.Rect,
	}
	copy(out.Pix, l.Pix)
	return out
}

// Labels returns the distinct labels present, in ascending order.
func (l *LabelImage) Labels() []uint32 {
	seen := make(map[uint32]struct{})
	for y := l.Rect.Min.Y; y < l.Rect.Max.Y; y++ {
		row := l.Pix[l.offset(l.Rect.Min.X, y):]
		for x := 0; x < l.Rect.Dx(); x++ {
			seen[row[x]] = struct{}{}
		}
	}
	out := make([]uint32, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
