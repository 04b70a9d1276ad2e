package metadata

import (
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/polaroid/pkg/orientation"
)

// Raw is the loosely typed metadata produced by extraction. Values may be
// numbers of any Go numeric type, *big.Rat, strings, or time.Time.
type Raw map[string]any

// Keys of Raw.
const (
	KeyArtist           = "Artist"
	KeyMake             = "Make"
	KeyModel            = "Model"
	KeyLensModel        = "LensModel"
	KeyFocalLength      = "FocalLength"
	KeyFNumber          = "FNumber"
	KeyExposureTime     = "ExposureTime"
	KeyISO              = "ISO"
	KeyLatitude         = "latitude"
	KeyLongitude        = "longitude"
	KeyDateTimeOriginal = "dateTimeOriginal"
	KeyOrientation      = "Orientation"
)

// Normalize converts raw extraction output into display strings and an
// orientation code. It never fails: a nil map, a missing key or a value of
// the wrong shape all produce "" for that field. SubjectModel, LocationName
// and Character have no EXIF source and are always "".
func Normalize(raw Raw) (Metadata, orientation.Code) {
	var m Metadata

	m.Photographer = raw.text(KeyArtist)
	m.Make = raw.text(KeyMake)
	m.Model = raw.text(KeyModel)
	m.Lens = raw.text(KeyLensModel)

	if v, ok := raw.number(KeyFocalLength); ok && v > 0 {
		m.FocalLength = formatNumber(v)
	}
	if v, ok := raw.number(KeyFNumber); ok {
		m.Aperture = FormatAperture(v)
	}
	if v, ok := raw.number(KeyExposureTime); ok {
		m.Shutter = FormatShutter(v)
	}
	if v, ok := raw.number(KeyISO); ok {
		m.ISO = FormatISO(v)
	}
	if v, ok := raw.number(KeyLatitude); ok {
		m.Latitude = FormatCoordinate(v)
	}
	if v, ok := raw.number(KeyLongitude); ok {
		m.Longitude = FormatCoordinate(v)
	}
	if t, ok := raw.time(KeyDateTimeOriginal); ok {
		m.DateTimeTaken = FormatDateTaken(t)
	}

	code := orientation.Default
	if v, ok := raw.number(KeyOrientation); ok && v == float64(int(v)) {
		code = orientation.Normalize(int(v))
	}
	return m, code
}

func cleanText(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}

func (r Raw) text(key string) string {
	switch v := r[key].(type) {
	case string:
		return cleanText(v)
	case []byte:
		return cleanText(string(v))
	}
	return ""
}

func (r Raw) number(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case *big.Rat:
		if v == nil {
			return 0, false
		}
		f, _ := v.Float64()
		return f, true
	case string:
		s := cleanText(v)
		if num, den, ok := strings.Cut(s, "/"); ok {
			n, err1 := strconv.ParseFloat(num, 64)
			d, err2 := strconv.ParseFloat(den, 64)
			if err1 != nil || err2 != nil || d == 0 {
				return 0, false
			}
			return n / d, true
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

func (r Raw) time(key string) (time.Time, bool) {
	switch v := r[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		t, err := time.Parse(exifDateLayout, cleanText(v))
		return t, err == nil
	}
	return time.Time{}, false
}
