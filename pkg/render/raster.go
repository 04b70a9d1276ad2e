package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/polaroid/pkg/capture"
	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/fonts"
	"github.com/matzehuels/polaroid/pkg/layout"
)

// Rasterizer paints mounted scenes into PNG bytes.
type Rasterizer struct{}

var _ capture.Rasterizer = Rasterizer{}

// Rasterize paints sub, which must be a *Scene whose resources are ready.
func (Rasterizer) Rasterize(ctx context.Context, sub capture.Subtree) ([]byte, error) {
	s, ok := sub.(*Scene)
	if !ok {
		return nil, errors.New(errors.ErrCodeRasterization, "unsupported subtree %T", sub)
	}
	img, err := Paint(s)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterization, err, "rasterize")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterization, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Paint draws the scene onto a new canvas.
func Paint(s *Scene) (*image.RGBA, error) {
	photo, logo, set, err := s.loaded()
	if err != nil {
		return nil, err
	}
	style := s.spec.Style
	bg, fg := style.Colors()

	canvas := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	maxW, maxH, pad := box(style.SafeGutters)
	pb := photo.Bounds()
	pw, ph := fit(pb.Dx(), pb.Dy(), maxW, maxH)

	lines, err := measureLines(s.layout, set, logo)
	if err != nil {
		return nil, err
	}
	captionHeight := 0
	for i, l := range lines {
		if i > 0 {
			captionHeight += lineGap
		}
		captionHeight += l.height
	}
	contentHeight := ph
	if len(lines) > 0 {
		contentHeight += captionGap + captionHeight
	}

	y := pad + max(0, (CanvasHeight-2*pad-contentHeight)/2)

	scaled := photo
	if pw != pb.Dx() || ph != pb.Dy() {
		scaled = transform.Resize(photo, pw, ph, transform.Lanczos)
	}
	x := (CanvasWidth - pw) / 2
	draw.Draw(canvas, image.Rect(x, y, x+pw, y+ph), scaled, scaled.Bounds().Min, draw.Over)
	y += ph + captionGap

	for _, l := range lines {
		l.draw(canvas, y, fg)
		y += l.height + lineGap
	}
	return canvas, nil
}

type measuredSegment struct {
	text  string
	width int
	grey  bool
	icon  icon
}

type measuredLine struct {
	height   int
	face     font.Face
	style    lineStyle
	segments []measuredSegment
	width    int
	logo     image.Image
}

func styleFor(k layout.LineKind) lineStyle {
	switch k {
	case layout.LineBrand:
		return brandStyle
	case layout.LineSettings:
		return settingsStyle
	case layout.LineCamera:
		return largeStyle
	default:
		return smallStyle
	}
}

func measureLines(l layout.Layout, set *fonts.Set, logo image.Image) ([]measuredLine, error) {
	out := make([]measuredLine, 0, len(l.Lines))
	for _, line := range l.Lines {
		st := styleFor(line.Kind)

		if line.Mark != nil && logo != nil {
			lb := logo.Bounds()
			w := min(CanvasWidth, max(1, lb.Dx()*logoHeight/max(lb.Dy(), 1)))
			out = append(out, measuredLine{
				height: logoHeight + logoGap,
				width:  w,
				logo:   transform.Resize(logo, w, logoHeight, transform.Lanczos),
			})
			continue
		}

		face, err := set.Face(st.size, st.bold)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRasterization, err, "%s line", line.Kind)
		}
		ml := measuredLine{height: st.lineHeight, face: face, style: st}
		for i, seg := range line.Segments {
			w := font.MeasureString(face, seg.Text).Ceil()
			ic := iconNone
			if !seg.Separator {
				ic = iconFor(line.Kind, seg.Field)
			}
			if ic != iconNone {
				w += iconSize(st) + iconGap
			}
			ml.segments = append(ml.segments, measuredSegment{
				text:  seg.Text,
				width: w,
				grey:  seg.Separator && line.Kind == layout.LineSettings,
				icon:  ic,
			})
			if i > 0 {
				ml.width += st.gap
			}
			ml.width += w
		}
		out = append(out, ml)
	}
	return out, nil
}

func (l measuredLine) draw(dst *image.RGBA, top int, fg color.RGBA) {
	x := (CanvasWidth - l.width) / 2

	if l.logo != nil {
		r := image.Rect(x, top, x+l.logo.Bounds().Dx(), top+l.logo.Bounds().Dy())
		draw.Draw(dst, r, l.logo, l.logo.Bounds().Min, draw.Over)
		return
	}

	m := l.face.Metrics()
	textHeight := (m.Ascent + m.Descent).Ceil()
	baseline := top + (l.height-textHeight)/2 + m.Ascent.Ceil()

	for _, seg := range l.segments {
		c := fg
		if seg.grey {
			c = separatorGrey
		}
		textX := x
		if seg.icon != iconNone {
			size := iconSize(l.style)
			drawIcon(dst, seg.icon, image.Pt(x, top+(l.height-size)/2), size, c)
			textX += size + iconGap
		}
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(c),
			Face: l.face,
			Dot:  fixed.P(textX, baseline),
		}
		d.DrawString(seg.text)
		x += seg.width + l.style.gap
	}
}
