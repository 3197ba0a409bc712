package imageproc

import "testing"

func TestTranslate(t *testing.T) {
	src := grayOf(3, 2, 1, 2, 3, 4, 5, 6)

	tests := []struct {
		name   string
		tx, ty int32
		want   []uint8
	}{
		{"none", 0, 0, []uint8{1, 2, 3, 4, 5, 6}},
		{"right", 1, 0, []uint8{0, 1, 2, 0, 4, 5}},
		{"left", -1, 0, []uint8{2, 3, 0, 5, 6, 0}},
		{"down", 0, 1, []uint8{0, 0, 0, 1, 2, 3}},
		{"out of frame", 5, 5, []uint8{0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		assertPix(t, tt.name, Translate(src, tt.tx, tt.ty), tt.want...)
	}
}
