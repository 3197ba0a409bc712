package wicore

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		kind PixelKind
		px   color.NRGBA
	}{
		{"luma", Luma8, color.NRGBA{R: 90, G: 90, B: 90, A: 255}},
		{"rgb", RGB8, color.NRGBA{R: 12, G: 34, B: 56, A: 255}},
		{"rgba", RGBA8, color.NRGBA{R: 12, G: 34, B: 56, A: 78}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := owned(t, Images, NewImage(5, 3, tt.kind))
			require.Equal(t, StatusOK, SetRGBA(h, 4, 2, tt.px))

			path := filepath.Join(t.TempDir(), "out.png")
			require.True(t, Save(h, path))

			back := owned(t, Images, Open(path))
			require.True(t, Images.IsOk(back))
			assert.Equal(t, Color(h), Color(back))
			assert.Equal(t, Images.Width(h), Images.Width(back))
			assert.Equal(t, Images.Height(h), Images.Height(back))
			for y := uint32(0); y < 3; y++ {
				for x := uint32(0); x < 5; x++ {
					assert.Equal(t, mustRGBA(t, h, x, y), mustRGBA(t, back, x, y))
				}
			}
		})
	}
}

func TestSaveWithFormat(t *testing.T) {
	h := newRGB(t, 4, 4)
	dir := t.TempDir()

	path := filepath.Join(dir, "no-extension")
	require.True(t, SaveWithFormat(h, path, "PNG"))
	back := owned(t, Images, Open(path))
	assert.True(t, Images.IsOk(back))

	jpeg := filepath.Join(dir, "out.bin")
	require.True(t, SaveWithFormat(h, jpeg, "jpeg"))
	decoded := owned(t, Images, Open(jpeg))
	assert.Equal(t, 4, Images.Width(decoded))

	assert.False(t, SaveWithFormat(h, path, "gif"))
	assert.False(t, SaveWithFormat(0, path, "png"))
	assert.False(t, SaveWithFormat(h, filepath.Join(dir, "missing", "x.png"), "png"))
}

func TestSaveFailures(t *testing.T) {
	h := newRGB(t, 2, 2)
	dir := t.TempDir()

	assert.False(t, Save(h, filepath.Join(dir, "out.xyz")))
	assert.False(t, Save(0, filepath.Join(dir, "out.png")))

	e := owned(t, Images, Open(filepath.Join(dir, "missing.png")))
	assert.False(t, Save(e, filepath.Join(dir, "out.png")))
	_, err := os.Stat(filepath.Join(dir, "out.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestOpenFailures(t *testing.T) {
	dir := t.TempDir()

	missing := owned(t, Images, Open(filepath.Join(dir, "nope.png")))
	require.NotZero(t, missing)
	assert.True(t, Images.IsErr(missing))
	msg, ok := Images.ErrorMessage(missing)
	assert.True(t, ok)
	assert.NotEmpty(t, msg)
	assert.Equal(t, -1, Images.Width(missing))

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	bad := owned(t, Images, Open(garbage))
	assert.True(t, Images.IsErr(bad))

	invalid := owned(t, Images, Open("bad\xffpath.png"))
	msg, _ = Images.ErrorMessage(invalid)
	assert.Contains(t, msg, "UTF-8")
}
