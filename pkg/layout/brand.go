package layout

import (
	"image/color"
	"strings"
)

// BrandMark describes the logo drawn in place of a known camera make.
type BrandMark struct {
	// Name is the canonical brand name and the basename of an optional logo
	// file ("canon" -> canon.png).
	Name string
	// Wordmark is drawn when no logo file is available.
	Wordmark string
	Color    color.RGBA
}

var knownBrands = map[string]BrandMark{
	"CANON":    {Name: "canon", Wordmark: "Canon", Color: color.RGBA{R: 0xCC, A: 0xFF}},
	"NIKON":    {Name: "nikon", Wordmark: "Nikon", Color: color.RGBA{R: 0xFF, G: 0xE1, A: 0xFF}},
	"SONY":     {Name: "sony", Wordmark: "SONY", Color: color.RGBA{A: 0xFF}},
	"FUJIFILM": {Name: "fujifilm", Wordmark: "FUJIFILM", Color: color.RGBA{R: 0xED, G: 0x1A, B: 0x3A, A: 0xFF}},
	"LEICA":    {Name: "leica", Wordmark: "Leica", Color: color.RGBA{R: 0xE2, G: 0x00, B: 0x1A, A: 0xFF}},
	"OLYMPUS":  {Name: "olympus", Wordmark: "OLYMPUS", Color: color.RGBA{R: 0x08, G: 0x26, B: 0x7A, A: 0xFF}},
}

// LookupBrand matches a camera make against the known brands.
// Matching uses the first word of the make, case-insensitively, so both
// "Canon" and "NIKON CORPORATION" resolve.
func LookupBrand(cameraMake string) (BrandMark, bool) {
	fields := strings.Fields(cameraMake)
	if len(fields) == 0 {
		return BrandMark{}, false
	}
	b, ok := knownBrands[strings.ToUpper(fields[0])]
	return b, ok
}
