package render

import (
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/fonts"
	"github.com/matzehuels/polaroid/pkg/layout"
)

// wordmarkSize is the pixel size wordmarks are drawn at before being scaled
// to the logo height.
const wordmarkSize = 96

// loadLogo reads dir/<name>.png, falling back to a drawn wordmark when the
// directory is unset or has no logo for the brand.
func loadLogo(mark layout.BrandMark, dir string) (image.Image, error) {
	if dir != "" {
		path := filepath.Join(dir, mark.Name+".png")
		if _, err := os.Stat(path); err == nil {
			img, err := imgio.Open(path)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "logo %s", path)
			}
			return img, nil
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "logo %s", path)
		}
	}
	return drawWordmark(mark)
}

func drawWordmark(mark layout.BrandMark) (image.Image, error) {
	set, err := fonts.Load(fonts.Default)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "wordmark font")
	}
	face, err := set.Face(wordmarkSize, true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "wordmark face")
	}

	m := face.Metrics()
	w := font.MeasureString(face, mark.Wordmark).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(mark.Color),
		Face: face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(mark.Wordmark)
	return img, nil
}
