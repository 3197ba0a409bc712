package wicore

import (
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// IsImage checks if the given path has an extension Open can decode.
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}

// IsWritable checks if Save can infer an encoder from the path's extension.
func IsWritable(path string) bool {
	_, err := imaging.FormatFromFilename(path)
	return err == nil
}
