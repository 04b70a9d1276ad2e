package render

import "image/color"

// Canvas size of every export.
const (
	CanvasWidth  = 1080
	CanvasHeight = 1920
)

// Frame geometry in pixels.
const (
	imageMaxWidth      = 1000
	imageMaxHeight     = 1400
	safeImageMaxHeight = 900
	framePadding       = 64
	safeFramePadding   = 250

	captionGap = 32
	lineGap    = 8
	logoHeight = 36
	logoGap    = 16
)

type lineStyle struct {
	size       float64
	lineHeight int
	bold       bool
	gap        int
}

var (
	brandStyle    = lineStyle{size: 36, lineHeight: 40, bold: true, gap: 16}
	largeStyle    = lineStyle{size: 24, lineHeight: 32, gap: 16}
	settingsStyle = lineStyle{size: 24, lineHeight: 32, gap: 8}
	smallStyle    = lineStyle{size: 20, lineHeight: 28, gap: 16}
)

var separatorGrey = color.RGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF}

// fit scales w x h down to fit within maxW x maxH, preserving aspect ratio.
// Images already inside the box are not enlarged.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	sw := float64(maxW) / float64(w)
	sh := float64(maxH) / float64(h)
	s := min(sw, sh)
	fw := max(1, int(float64(w)*s+0.5))
	fh := max(1, int(float64(h)*s+0.5))
	return min(fw, maxW), min(fh, maxH)
}

// box returns the photo box and vertical padding for the gutter setting.
func box(safeGutters bool) (maxW, maxH, pad int) {
	if safeGutters {
		return imageMaxWidth, safeImageMaxHeight, safeFramePadding
	}
	return imageMaxWidth, imageMaxHeight, framePadding
}
