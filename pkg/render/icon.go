package render

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"

	"github.com/matzehuels/polaroid/pkg/layout"
	"github.com/matzehuels/polaroid/pkg/metadata"
)

// icon is a glyph drawn in front of a caption item.
type icon int

const (
	iconNone icon = iota
	iconCamera
	iconUser
	iconBadge
	iconCalendar
	iconLocation
)

func (i icon) String() string {
	switch i {
	case iconCamera:
		return "camera"
	case iconUser:
		return "user"
	case iconBadge:
		return "badge"
	case iconCalendar:
		return "calendar"
	case iconLocation:
		return "location"
	}
	return "none"
}

// iconFor returns the glyph for a field on the people and shoot lines.
func iconFor(k layout.LineKind, f metadata.Field) icon {
	switch k {
	case layout.LinePeople:
		switch f {
		case metadata.Photographer:
			return iconCamera
		case metadata.SubjectModel:
			return iconUser
		case metadata.Character:
			return iconBadge
		}
	case layout.LineShoot:
		switch f {
		case metadata.DateTimeTaken:
			return iconCalendar
		case metadata.LocationName:
			return iconLocation
		}
	}
	return iconNone
}

// iconGap separates an icon from its text.
const iconGap = 6

// iconSize is the edge of the square an icon is drawn in for st.
func iconSize(st lineStyle) int {
	return int(st.size*0.8 + 0.5)
}

// glyph traces an icon in the unit square onto a path builder.
type glyph struct {
	z    *vector.Rasterizer
	size float32
}

func (g glyph) move(x, y float32) { g.z.MoveTo(x*g.size, y*g.size) }
func (g glyph) line(x, y float32) { g.z.LineTo(x*g.size, y*g.size) }
func (g glyph) cube(x1, y1, x2, y2, x, y float32) {
	g.z.CubeTo(x1*g.size, y1*g.size, x2*g.size, y2*g.size, x*g.size, y*g.size)
}

// rect adds an axis-aligned rectangle. hole reverses the winding so it cuts
// out of a shape traced the other way.
func (g glyph) rect(x0, y0, x1, y1 float32, hole bool) {
	g.move(x0, y0)
	if hole {
		g.line(x0, y1)
		g.line(x1, y1)
		g.line(x1, y0)
	} else {
		g.line(x1, y0)
		g.line(x1, y1)
		g.line(x0, y1)
	}
	g.z.ClosePath()
}

// circle adds a circle made of four cubic arcs.
func (g glyph) circle(cx, cy, r float32, hole bool) {
	const k = 0.5523
	d := r * k
	g.move(cx+r, cy)
	if hole {
		g.cube(cx+r, cy-d, cx+d, cy-r, cx, cy-r)
		g.cube(cx-d, cy-r, cx-r, cy-d, cx-r, cy)
		g.cube(cx-r, cy+d, cx-d, cy+r, cx, cy+r)
		g.cube(cx+d, cy+r, cx+r, cy+d, cx+r, cy)
	} else {
		g.cube(cx+r, cy+d, cx+d, cy+r, cx, cy+r)
		g.cube(cx-d, cy+r, cx-r, cy+d, cx-r, cy)
		g.cube(cx-r, cy-d, cx-d, cy-r, cx, cy-r)
		g.cube(cx+d, cy-r, cx+r, cy-d, cx+r, cy)
	}
	g.z.ClosePath()
}

// person adds a head and shoulders centered on cx.
func (g glyph) person(cx, scale float32) {
	g.circle(cx, 0.3, 0.2*scale, false)
	w := 0.4 * scale
	g.move(cx-w, 0.95)
	g.cube(cx-w, 0.55, cx+w, 0.55, cx+w, 0.95)
	g.z.ClosePath()
}

func (g glyph) trace(i icon) {
	switch i {
	case iconCamera:
		g.rect(0.05, 0.3, 0.95, 0.9, false)
		g.rect(0.35, 0.15, 0.65, 0.3, false)
		g.circle(0.5, 0.6, 0.2, true)
		g.circle(0.5, 0.6, 0.1, false)
	case iconUser:
		g.person(0.5, 1)
	case iconBadge:
		g.person(0.4, 0.85)
		g.move(0.82, 0.55)
		g.line(0.97, 0.72)
		g.line(0.82, 0.89)
		g.line(0.67, 0.72)
		g.z.ClosePath()
	case iconCalendar:
		g.rect(0.1, 0.2, 0.9, 0.95, false)
		g.rect(0.2, 0.4, 0.8, 0.85, true)
		g.rect(0.28, 0.05, 0.38, 0.3, false)
		g.rect(0.62, 0.05, 0.72, 0.3, false)
	case iconLocation:
		g.circle(0.5, 0.38, 0.3, false)
		g.circle(0.5, 0.38, 0.12, true)
		g.move(0.24, 0.53)
		g.line(0.76, 0.53)
		g.line(0.5, 0.97)
		g.z.ClosePath()
	}
}

// drawIcon paints i in a size x size square with its top-left corner at at.
func drawIcon(dst *image.RGBA, i icon, at image.Point, size int, c color.RGBA) {
	if i == iconNone || size <= 0 {
		return
	}
	z := vector.NewRasterizer(size, size)
	glyph{z: z, size: float32(size)}.trace(i)
	r := image.Rectangle{Min: at, Max: at.Add(image.Pt(size, size))}
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}
