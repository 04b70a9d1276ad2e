package metadata

import (
	"io"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/matzehuels/polaroid/pkg/errors"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// Extract reads the EXIF block of an image. A missing or unreadable block
// returns whatever was decoded (possibly an empty Raw) together with a
// METADATA_EXTRACTION error; callers are expected to log it and go on.
func Extract(r io.Reader) (Raw, error) {
	raw := Raw{}

	x, err := exif.Decode(r)
	if err != nil {
		if x == nil || exif.IsCriticalError(err) {
			return raw, errors.Wrap(errors.ErrCodeMetadataExtraction, err, "decode EXIF")
		}
		// Non-critical errors leave a usable partial block.
	}

	for key, name := range map[string]exif.FieldName{
		KeyArtist:    exif.Artist,
		KeyMake:      exif.Make,
		KeyModel:     exif.Model,
		KeyLensModel: exif.LensModel,
	} {
		if tag, err := x.Get(name); err == nil {
			if val, err := tag.StringVal(); err == nil {
				raw[key] = val
			}
		}
	}

	for key, name := range map[string]exif.FieldName{
		KeyFocalLength:  exif.FocalLength,
		KeyFNumber:      exif.FNumber,
		KeyExposureTime: exif.ExposureTime,
	} {
		if tag, err := x.Get(name); err == nil {
			if v, ok := ratio(tag); ok {
				raw[key] = v
			}
		}
	}

	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if val, err := tag.Int(0); err == nil {
			raw[KeyISO] = val
		}
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if val, err := tag.Int(0); err == nil {
			raw[KeyOrientation] = val
		}
	}
	if lat, long, err := x.LatLong(); err == nil {
		raw[KeyLatitude] = lat
		raw[KeyLongitude] = long
	}
	if t, err := x.DateTime(); err == nil {
		raw[KeyDateTimeOriginal] = t
	}

	return raw, nil
}

func ratio(tag *tiff.Tag) (float64, bool) {
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}
