// Package orientation maps EXIF orientation codes to the geometric transform
// that displays a photo upright.
//
// Codes follow the TIFF/EXIF Orientation tag (1..8). Anything outside that
// range is treated as code 1. Transforms are closed under composition, which
// is what lets a caller check that, for example, code 6 followed by code 8
// leaves the image unchanged.
package orientation

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Code is an EXIF orientation code.
type Code int

// Default is the orientation assumed when none is recorded.
const Default Code = 1

// Normalize returns c if it is a valid EXIF code and Default otherwise.
func Normalize(c int) Code {
	if c < 1 || c > 8 {
		return Default
	}
	return Code(c)
}

// Transform is one of the eight rigid transforms of a rectangle.
type Transform int

const (
	Identity Transform = iota
	FlipHorizontal
	Rotate180
	FlipVertical
	// Transpose rotates 90 clockwise, then flips horizontally.
	Transpose
	Rotate90CW
	// Transverse rotates 270 clockwise, then flips horizontally.
	Transverse
	Rotate270CW
)

var transformNames = [...]string{
	Identity:       "identity",
	FlipHorizontal: "flip-horizontal",
	Rotate180:      "rotate-180",
	FlipVertical:   "flip-vertical",
	Transpose:      "rotate-90-cw-flip",
	Rotate90CW:     "rotate-90-cw",
	Transverse:     "rotate-270-cw-flip",
	Rotate270CW:    "rotate-270-cw",
}

func (t Transform) String() string {
	if t < 0 || int(t) >= len(transformNames) {
		return fmt.Sprintf("Transform(%d)", int(t))
	}
	return transformNames[t]
}

// TransformFor returns the transform that makes a photo with code c upright.
func TransformFor(c Code) Transform {
	switch c {
	case 2:
		return FlipHorizontal
	case 3:
		return Rotate180
	case 4:
		return FlipVertical
	case 5:
		return Transpose
	case 6:
		return Rotate90CW
	case 7:
		return Transverse
	case 8:
		return Rotate270CW
	default:
		return Identity
	}
}

// SwapsAxes reports whether t exchanges width and height.
func (t Transform) SwapsAxes() bool {
	m := t.matrix()
	return m[0][0] == 0
}

// matrix is the action of t on pixel coordinates with y pointing down.
type matrix [2][2]int

var matrices = [...]matrix{
	Identity:       {{1, 0}, {0, 1}},
	FlipHorizontal: {{-1, 0}, {0, 1}},
	Rotate180:      {{-1, 0}, {0, -1}},
	FlipVertical:   {{1, 0}, {0, -1}},
	Transpose:      {{0, 1}, {1, 0}},
	Rotate90CW:     {{0, -1}, {1, 0}},
	Transverse:     {{0, -1}, {-1, 0}},
	Rotate270CW:    {{0, 1}, {-1, 0}},
}

func (t Transform) matrix() matrix {
	if t < 0 || int(t) >= len(matrices) {
		return matrices[Identity]
	}
	return matrices[t]
}

func (m matrix) mul(n matrix) matrix {
	var r matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return r
}

// Compose returns the transform equivalent to applying a and then b.
func Compose(a, b Transform) Transform {
	m := b.matrix().mul(a.matrix())
	for t, candidate := range matrices {
		if candidate == m {
			return Transform(t)
		}
	}
	// unreachable: the eight matrices form a group
	return Identity
}

// Apply returns img with t applied. Identity returns img unchanged.
func Apply(img image.Image, t Transform) image.Image {
	switch t {
	case FlipHorizontal:
		return imaging.FlipH(img)
	case Rotate180:
		return imaging.Rotate180(img)
	case FlipVertical:
		return imaging.FlipV(img)
	case Transpose:
		return imaging.Transpose(img)
	case Rotate90CW:
		// imaging rotates counter-clockwise
		return imaging.Rotate270(img)
	case Transverse:
		return imaging.Transverse(img)
	case Rotate270CW:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
