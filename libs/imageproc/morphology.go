package imageproc

import "image"

// Dilate sets every pixel within distance k of a foreground pixel to 255 and
// the rest to 0.
func Dilate(src *image.Gray, norm Norm, k uint8) *image.Gray {
	g := newGrid(src)
	dist := distances(g, norm, func(p uint8) bool { return p != 0 })
	return binarize(g.w, g.h, dist, func(d int) bool { return d <= int(k) })
}

// Erode keeps a foreground pixel only when no background pixel lies within
// distance k of it. Pixels outside the image do not count as background.
func Erode(src *image.Gray, norm Norm, k uint8) *image.Gray {
	g := newGrid(src)
	dist := distances(g, norm, func(p uint8) bool { return p == 0 })
	return binarize(g.w, g.h, dist, func(d int) bool { return d > int(k) })
}

// Open is an erosion followed by a dilation; it removes foreground specks
// smaller than the structuring element.
func Open(src *image.Gray, norm Norm, k uint8) *image.Gray {
	return Dilate(Erode(src, norm, k), norm, k)
}

// Close is a dilation followed by an erosion; it fills background holes
// smaller than the structuring element.
func Close(src *image.Gray, norm Norm, k uint8) *image.Gray {
	return Erode(Dilate(src, norm, k), norm, k)
}

func binarize(w, h int, dist []int, on func(int) bool) *image.Gray {
	out := newGray(w, h)
	for i, d := range dist {
		if on(d) {
			out.Pix[i] = 255
		}
	}
	return out
}
