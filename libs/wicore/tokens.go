package wicore

import (
	"slices"
	"strings"

	"github.com/disintegration/imaging"

	"webimages.io/libs/imageproc"
)

// Every token is matched case-insensitively after trimming whitespace.
var (
	filterTokens = map[string]imaging.ResampleFilter{
		"nearest":    imaging.NearestNeighbor,
		"triangle":   imaging.Linear,
		"catmullrom": imaging.CatmullRom,
		"gaussian":   imaging.Gaussian,
		"lanczos3":   imaging.Lanczos,
	}
	normTokens = map[string]imageproc.Norm{
		"l1":   imageproc.L1,
		"linf": imageproc.LInf,
	}
	connectivityTokens = map[string]imageproc.Connectivity{
		"four":  imageproc.Four,
		"eight": imageproc.Eight,
	}
	formatTokens = map[string]imaging.Format{
		"jpeg": imaging.JPEG,
		"png":  imaging.PNG,
	}
	pixelKindTokens = map[string]PixelKind{
		"luma8": Luma8,
		"rgb8":  RGB8,
		"rgba8": RGBA8,
	}
)

func lookupToken[V any](table map[string]V, argument, token string) (V, bool) {
	v, ok := table[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		Warn("unknown token", "argument", argument, "token", token)
	}
	return v, ok
}

func ParseFilter(token string) (imaging.ResampleFilter, bool) {
	return lookupToken(filterTokens, "filter", token)
}

func ParseNorm(token string) (imageproc.Norm, bool) {
	return lookupToken(normTokens, "norm", token)
}

func ParseConnectivity(token string) (imageproc.Connectivity, bool) {
	return lookupToken(connectivityTokens, "connectivity", token)
}

func ParseFormat(token string) (imaging.Format, bool) {
	return lookupToken(formatTokens, "format", token)
}

func ParsePixelKind(token string) (PixelKind, bool) {
	return lookupToken(pixelKindTokens, "pixel kind", token)
}

// Tokens lists the accepted tokens per argument, sorted.
func Tokens() map[string][]string {
	return map[string][]string{
		"filter":       sortedKeys(filterTokens),
		"norm":         sortedKeys(normTokens),
		"connectivity": sortedKeys(connectivityTokens),
		"format":       sortedKeys(formatTokens),
		"pixel kind":   sortedKeys(pixelKindTokens),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
