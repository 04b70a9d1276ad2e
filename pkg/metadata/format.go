package metadata

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout used for the date a photo was taken.
const DateLayout = "Jan 2, 2006"

// exifDateLayout is how EXIF stores DateTimeOriginal.
const exifDateLayout = "2006:01:02 15:04:05"

// formatNumber prints v in its shortest round-trip form ("2.8", "400", "0.5").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatShutter formats an exposure time in seconds.
// Exposures of a second or more print as-is ("2s"); shorter ones as the
// nearest reciprocal ("1/250s"). Non-positive values yield "".
func FormatShutter(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ""
	}
	if seconds >= 1 {
		return formatNumber(seconds) + "s"
	}
	return "1/" + formatNumber(math.Round(1/seconds)) + "s"
}

// FormatAperture formats an f-number as "ƒ/2.8".
func FormatAperture(fNumber float64) string {
	if fNumber <= 0 || math.IsNaN(fNumber) || math.IsInf(fNumber, 0) {
		return ""
	}
	return "ƒ/" + formatNumber(fNumber)
}

// FormatISO formats a sensitivity as "ISO 400".
func FormatISO(iso float64) string {
	if iso <= 0 || math.IsNaN(iso) || math.IsInf(iso, 0) {
		return ""
	}
	return "ISO " + formatNumber(iso)
}

// FormatFocalLength appends the "mm" unit unless s already carries it.
// It is idempotent and leaves "" alone.
func FormatFocalLength(s string) string {
	if s == "" || strings.Contains(s, "mm") {
		return s
	}
	return s + "mm"
}

// FormatCoordinate formats decimal degrees with six fractional digits.
func FormatCoordinate(deg float64) string {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return ""
	}
	return strconv.FormatFloat(deg, 'f', 6, 64)
}

// FormatDateTaken formats a capture time. The zero time yields "".
func FormatDateTaken(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
