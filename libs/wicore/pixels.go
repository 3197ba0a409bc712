package wicore

import "image/color"

// Status is the outcome of a pixel access.
type Status int

const (
	StatusInvalid     Status = -1
	StatusOutOfBounds Status = 0
	StatusOK          Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOutOfBounds:
		return "out of bounds"
	default:
		return "invalid handle"
	}
}

// GetRGBA reads the pixel at (x, y) of an image.
func GetRGBA(h ImageHandle, x, y uint32) (color.NRGBA, Status) {
	img, ok := Images.Value(h)
	if !ok {
		return color.NRGBA{}, StatusInvalid
	}
	px, ok := img.RGBA(int(x), int(y))
	if !ok {
		return color.NRGBA{}, StatusOutOfBounds
	}
	return px, StatusOK
}

// SetRGBA writes the pixel at (x, y) of an image in place.
func SetRGBA(h ImageHandle, x, y uint32, px color.NRGBA) Status {
	img, ok := Images.Value(h)
	if !ok {
		return StatusInvalid
	}
	if !img.SetRGBA(int(x), int(y), px) {
		return StatusOutOfBounds
	}
	return StatusOK
}

func GetGray(h GrayHandle, x, y uint32) (uint8, Status) {
	g, ok := Grays.Value(h)
	if !ok {
		return 0, StatusInvalid
	}
	px, py := g.Rect.Min.X+int(x), g.Rect.Min.Y+int(y)
	if px >= g.Rect.Max.X || py >= g.Rect.Max.Y {
		return 0, StatusOutOfBounds
	}
	return g.GrayAt(px, py).Y, StatusOK
}

func SetGray(h GrayHandle, x, y uint32, v uint8) Status {
	g, ok := Grays.Value(h)
	if !ok {
		return StatusInvalid
	}
	px, py := g.Rect.Min.X+int(x), g.Rect.Min.Y+int(y)
	if px >= g.Rect.Max.X || py >= g.Rect.Max.Y {
		return StatusOutOfBounds
	}
	g.SetGray(px, py, color.Gray{Y: v})
	return StatusOK
}

func GetLabel(h LabelHandle, x, y uint32) (uint32, Status) {
	l, ok := Labels.Value(h)
	if !ok {
		return 0, StatusInvalid
	}
	px, py := l.Rect.Min.X+int(x), l.Rect.Min.Y+int(y)
	if px >= l.Rect.Max.X || py >= l.Rect.Max.Y {
		return 0, StatusOutOfBounds
	}
	return l.LabelAt(px, py), StatusOK
}

func SetLabel(h LabelHandle, x, y uint32, v uint32) Status {
	l, ok := Labels.Value(h)
	if !ok {
		return StatusInvalid
	}
	px, py := l.Rect.Min.X+int(x), l.Rect.Min.Y+int(y)
	if px >= l.Rect.Max.X || py >= l.Rect.Max.Y {
		return StatusOutOfBounds
	}
	l.SetLabel(px, py, v)
	return StatusOK
}
