package imageproc

import "image"

// Connectivity selects which neighbours join a pixel to a region.
type Connectivity int

const (
	// Four joins horizontal and vertical neighbours.
	Four Connectivity = iota
	// Eight additionally joins diagonal neighbours.
	Eight
)

func (c Connectivity) String() string {
	switch c {
	case Four:
		return "Four"
	case Eight:
		return "Eight"
	default:
		return "unknown"
	}
}

// ConnectedComponents labels the regions of equal intensity in src. Pixels
// whose value equals background get label 0; the remaining regions are
// numbered from 1 in raster order of their first pixel.
func ConnectedComponents(src *image.Gray, conn Connectivity, background uint8) *LabelImage {
	g := newGrid(src)
	out := NewLabelImage(image.Rect(0, 0, g.w, g.h))
	if g.w == 0 || g.h == 0 {
		return out
	}

	uf := newUnionFind(g.w * g.h)
	join := func(i, x, y int) {
		if x < 0 || y < 0 || x >= g.w {
			return
		}
		if j := y*g.w + x; g.pix[j] == g.pix[i] {
			uf.union(i, j)
		}
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			if g.pix[i] == background {
				continue
			}
			join(i, x-1, y)
			join(i, x, y-1)
			if conn == Eight {
				join(i, x-1, y-1)
				join(i, x+1, y-1)
			}
		}
	}

	next := uint32(1)
	roots := make(map[int]uint32)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			if g.pix[i] == background {
				continue
			}
			r := uf.find(i)
			label, ok := roots[r]
			if !ok {
				label = next
				roots[r] = label
				next++
			}
			out.Pix[y*out.Stride+x] = label
		}
	}
	return out
}

type unionFind struct {
	parent []int
	rank   []uint8
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]uint8, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}
