package wicore

import (
	"testing"

	"github.com/disintegration/imaging"

	"webimages.io/libs/imageproc"
)

func TestParseTokens(t *testing.T) {
	if f, ok := ParseFilter(" Lanczos3 "); !ok || f.Support != imaging.Lanczos.Support {
		t.Errorf("ParseFilter(Lanczos3) = %v, %v", f.Support, ok)
	}
	if n, ok := ParseNorm("LInf"); !ok || n != imageproc.LInf {
		t.Errorf("ParseNorm(LInf) = %v, %v", n, ok)
	}
	if c, ok := ParseConnectivity("EIGHT"); !ok || c != imageproc.Eight {
		t.Errorf("ParseConnectivity(EIGHT) = %v, %v", c, ok)
	}
	if f, ok := ParseFormat("Png"); !ok || f != imaging.PNG {
		t.Errorf("ParseFormat(Png) = %v, %v", f, ok)
	}
	if k, ok := ParsePixelKind("RGBA8"); !ok || k != RGBA8 {
		t.Errorf("ParsePixelKind(RGBA8) = %v, %v", k, ok)
	}
}

func TestParseTokensRejectUnknown(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) bool
		token string
	}{
		{"filter", func(s string) bool { _, ok := ParseFilter(s); return ok }, "bicubic"},
		{"norm", func(s string) bool { _, ok := ParseNorm(s); return ok }, "l2"},
		{"connectivity", func(s string) bool { _, ok := ParseConnectivity(s); return ok }, "six"},
		{"format", func(s string) bool { _, ok := ParseFormat(s); return ok }, "gif"},
		{"pixel kind", func(s string) bool { _, ok := ParsePixelKind(s); return ok }, "rgb16"},
	}

	for _, tt := range tests {
		if tt.parse(tt.token) {
			t.Errorf("%s accepted %q", tt.name, tt.token)
		}
		if tt.parse("") {
			t.Errorf("%s accepted the empty token", tt.name)
		}
	}
}

func TestTokensListing(t *testing.T) {
	tokens := Tokens()
	if got := tokens["filter"]; len(got) != 5 || got[0] != "catmullrom" {
		t.Errorf("filter tokens = %v", got)
	}
	if got := tokens["format"]; len(got) != 2 {
		t.Errorf("format tokens = %v", got)
	}
}
