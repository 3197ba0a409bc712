package wicore

import "testing"

func TestIsImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"test.jpg", true},
		{"test.JPG", true},
		{"test.png", true},
		{"test.gif", true},
		{"test.webp", true},
		{"test.tiff", true},
		{"test.mp4", false},
		{"no_extension", false},
	}

	for _, tt := range tests {
		if got := IsImage(tt.path); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsWritable(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"out.png", true},
		{"out.jpeg", true},
		{"out.bmp", true},
		{"out.webp", false},
		{"out", false},
	}

	for _, tt := range tests {
		if got := IsWritable(tt.path); got != tt.want {
			t.Errorf("IsWritable(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
