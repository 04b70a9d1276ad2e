package render

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/orientation"
	"github.com/matzehuels/polaroid/pkg/photo"
)

// decodePhoto decodes the handle's bytes and turns the result upright.
func decodePhoto(h *photo.Handle, t orientation.Transform) (image.Image, error) {
	if h == nil {
		return nil, errors.New(errors.ErrCodeNoImage, "no photo selected")
	}
	r, err := h.Open()
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "decode %s", h.Name())
	}
	return orientation.Apply(img, t), nil
}
