package wicore

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"webimages.io/libs/imageproc"
)

// PixelKind is the channel layout of a ColorImage.
type PixelKind int

const (
	Luma8 PixelKind = iota
	RGB8
	RGBA8
)

// String returns the layout token reported by Color.
func (k PixelKind) String() string {
	switch k {
	case Luma8:
		return "gray:8"
	case RGB8:
		return "rgb:8"
	case RGBA8:
		return "rgba:8"
	default:
		return fmt.Sprintf("PixelKind(%d)", int(k))
	}
}

func (k PixelKind) bytesPerPixel() int {
	if k == Luma8 {
		return 1
	}
	return 4
}

// maxBufferBytes bounds the pixel buffer of any image the library allocates.
const maxBufferBytes = 1 << 32

// checkDimensions rejects sizes whose sides do not fit a C int or whose
// buffer would exceed maxBufferBytes.
func checkDimensions(width, height, bytesPerPixel int) error {
	if width < 0 || height < 0 || width > math.MaxInt32 || height > math.MaxInt32 ||
		uint64(width)*uint64(height)*uint64(bytesPerPixel) > maxBufferBytes {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	return nil
}

// ColorImage is a dynamically typed 8-bit image. Luma8 pixels live in an
// *image.Gray; RGB8 and RGBA8 pixels live in an *image.NRGBA, with RGB8
// keeping every alpha at 255. Bounds always start at the origin.
type ColorImage struct {
	kind PixelKind
	img  image.Image
}

// NewColorImage returns a blank image: black for Luma8, opaque black for RGB8
// and fully transparent for RGBA8.
func NewColorImage(width, height int, kind PixelKind) (*ColorImage, error) {
	if err := checkDimensions(width, height, kind.bytesPerPixel()); err != nil {
		return nil, err
	}
	r := image.Rect(0, 0, width, height)
	switch kind {
	case Luma8:
		return &ColorImage{kind: kind, img: image.NewGray(r)}, nil
	case RGB8:
		return &ColorImage{kind: kind, img: imaging.New(width, height, color.NRGBA{A: 255})}, nil
	case RGBA8:
		return &ColorImage{kind: kind, img: image.NewNRGBA(r)}, nil
	default:
		return nil, fmt.Errorf("unsupported pixel kind %v", kind)
	}
}

// FromImage copies a decoded image into a ColorImage. Gray images become
// Luma8, opaque images RGB8 and everything else RGBA8.
func FromImage(src image.Image) *ColorImage {
	switch src.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return FromGray(imageproc.ToGray(src))
	}
	nrgba := imaging.Clone(src)
	if isOpaque(nrgba) {
		return &ColorImage{kind: RGB8, img: nrgba}
	}
	return &ColorImage{kind: RGBA8, img: nrgba}
}

// FromGray wraps a copy of g as a Luma8 image.
func FromGray(g *image.Gray) *ColorImage {
	return &ColorImage{kind: Luma8, img: imageproc.ToGray(g)}
}

func isOpaque(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

func (c *ColorImage) Kind() PixelKind { return c.kind }

func (c *ColorImage) Bounds() image.Rectangle { return c.img.Bounds() }

// Image exposes the pixel buffer for encoding.
func (c *ColorImage) Image() image.Image { return c.img }

// Clone returns a deep copy.
func (c *ColorImage) Clone() *ColorImage {
	if g, ok := c.img.(*image.Gray); ok {
		return &ColorImage{kind: c.kind, img: cloneGray(g)}
	}
	return &ColorImage{kind: c.kind, img: imaging.Clone(c.img)}
}

// Gray returns the luma of c as a new gray image.
func (c *ColorImage) Gray() *image.Gray {
	return imageproc.ToGray(c.img)
}

// derive wraps the output of an imaging operation with the layout of c.
func (c *ColorImage) derive(img *image.NRGBA) *ColorImage {
	if c.kind == Luma8 {
		return &ColorImage{kind: Luma8, img: imageproc.ToGray(img)}
	}
	return &ColorImage{kind: c.kind, img: img}
}

func (c *ColorImage) contains(x, y int) bool {
	return image.Pt(x, y).In(c.img.Bounds())
}

// RGBA returns the pixel at (x, y) as non-premultiplied RGBA.
func (c *ColorImage) RGBA(x, y int) (color.NRGBA, bool) {
	if !c.contains(x, y) {
		return color.NRGBA{}, false
	}
	switch img := c.img.(type) {
	case *image.Gray:
		v := img.GrayAt(x, y).Y
		return color.NRGBA{R: v, G: v, B: v, A: 255}, true
	case *image.NRGBA:
		return img.NRGBAAt(x, y), true
	default:
		return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA), true
	}
}

// SetRGBA stores px at (x, y). RGB8 images drop the alpha channel and Luma8
// images store the luma of the colour.
func (c *ColorImage) SetRGBA(x, y int, px color.NRGBA) bool {
	if !c.contains(x, y) {
		return false
	}
	switch img := c.img.(type) {
	case *image.Gray:
		px.A = 255
		img.SetGray(x, y, color.GrayModel.Convert(px).(color.Gray))
	case *image.NRGBA:
		if c.kind == RGB8 {
			px.A = 255
		}
		img.SetNRGBA(x, y, px)
	default:
		return false
	}
	return true
}
