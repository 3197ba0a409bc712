package wicore

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Open decodes the image at path. Failures produce an error handle carrying
// the decoder's diagnostic.
func Open(path string) ImageHandle {
	if !utf8.ValidString(path) {
		return Images.Wrap(Err[*ColorImage](fmt.Sprintf("path %q is not valid UTF-8", path)))
	}
	img, err := imaging.Open(path)
	if err != nil {
		Debug("open failed", "path", path, "error", err)
		return Images.Wrap(Err[*ColorImage](err.Error()))
	}
	c := FromImage(img)
	Info("opened image", "path", path, "color", c.Kind().String(), "width", c.Bounds().Dx(), "height", c.Bounds().Dy())
	return Images.Wrap(Ok(c))
}

// Save encodes the image to path, choosing the format from the extension.
func Save(h ImageHandle, path string) bool {
	img, ok := Images.Value(h)
	if !ok {
		return false
	}
	quality := CurrentConfig().JPEGQuality
	if err := imaging.Save(img.Image(), path, imaging.JPEGQuality(quality)); err != nil {
		Error("save failed", "path", path, "error", err)
		return false
	}
	Info("saved image", "path", path)
	return true
}

// SaveWithFormat encodes the image to path in the format named by token
// ("jpeg" or "png"), whatever the extension.
func SaveWithFormat(h ImageHandle, path, format string) bool {
	f, ok := ParseFormat(format)
	if !ok {
		return false
	}
	img, ok := Images.Value(h)
	if !ok {
		return false
	}
	if err := encodeFile(img, path, f); err != nil {
		Error("save failed", "path", path, "format", f.String(), "error", err)
		return false
	}
	Info("saved image", "path", path, "format", f.String())
	return true
}

func encodeFile(img *ColorImage, path string, format imaging.Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return imaging.Encode(file, img.Image(), format, imaging.JPEGQuality(CurrentConfig().JPEGQuality))
}
