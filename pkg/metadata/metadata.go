// Package metadata turns raw photo metadata into display-ready strings.
//
// The package owns three things: the [Field] enumeration shared by every
// consumer, the normalized [Metadata] record built from an EXIF block, and the
// user's [DisplayConfig]. Extraction ([Extract]) may fail; normalization
// ([Normalize]) never does. A malformed or missing value becomes "".
package metadata

import (
	"fmt"
	"strings"

	"github.com/matzehuels/polaroid/pkg/errors"
)

// Metadata is the normalized, display-ready record for one photo.
// Every field is either "" or a string that can be drawn as-is, except
// FocalLength which gets its unit at display time (see FormatFocalLength).
type Metadata struct {
	Photographer  string `json:"photographer"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	Lens          string `json:"lens"`
	FocalLength   string `json:"focalLength"`
	Aperture      string `json:"aperture"`
	Shutter       string `json:"shutter"`
	ISO           string `json:"iso"`
	Latitude      string `json:"latitude"`
	Longitude     string `json:"longitude"`
	SubjectModel  string `json:"subjectModel"`
	LocationName  string `json:"locationName"`
	Character     string `json:"character"`
	DateTimeTaken string `json:"dateTimeTaken"`
}

func (m *Metadata) ptr(f Field) *string {
	switch f {
	case Photographer:
		return &m.Photographer
	case Make:
		return &m.Make
	case Model:
		return &m.Model
	case Lens:
		return &m.Lens
	case FocalLength:
		return &m.FocalLength
	case Aperture:
		return &m.Aperture
	case Shutter:
		return &m.Shutter
	case ISO:
		return &m.ISO
	case Latitude:
		return &m.Latitude
	case Longitude:
		return &m.Longitude
	case SubjectModel:
		return &m.SubjectModel
	case LocationName:
		return &m.LocationName
	case Character:
		return &m.Character
	case DateTimeTaken:
		return &m.DateTimeTaken
	}
	return nil
}

// Get returns the value of f, or "" for an unknown field.
func (m Metadata) Get(f Field) string {
	if p := m.ptr(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns v to f. Unknown fields are ignored.
func (m *Metadata) Set(f Field, v string) {
	if p := m.ptr(f); p != nil {
		*p = v
	}
}

// Keys returns the field keys of the record, in display order.
func (m Metadata) Keys() []string {
	return Keys()
}

// Present returns the number of non-empty fields.
func (m Metadata) Present() int {
	n := 0
	for _, f := range Fields() {
		if m.Get(f) != "" {
			n++
		}
	}
	return n
}

// Overrides are caller-supplied values that replace normalized ones.
type Overrides map[Field]string

// ParseOverrides converts key/value pairs into Overrides, rejecting unknown keys
// and values that cannot be drawn on a single line.
func ParseOverrides(kv map[string]string) (Overrides, error) {
	o := make(Overrides, len(kv))
	for k, v := range kv {
		f, err := ParseField(k)
		if err != nil {
			return nil, err
		}
		if err := errors.ValidateOverride(k, v); err != nil {
			return nil, err
		}
		o[f] = v
	}
	return o, nil
}

// ParseAssignment parses a "key=value" string as used on the command line.
func ParseAssignment(s string) (Field, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", errors.New(errors.ErrCodeInvalidInput, "expected key=value, got %q", s)
	}
	f, err := ParseField(strings.TrimSpace(k))
	if err != nil {
		return 0, "", err
	}
	v = strings.TrimSpace(v)
	if err := errors.ValidateOverride(f.String(), v); err != nil {
		return 0, "", err
	}
	return f, v, nil
}

// WithOverrides returns a copy of m with every non-empty override applied.
// Focal length overrides may carry their own "mm" suffix.
func (m Metadata) WithOverrides(o Overrides) Metadata {
	for f, v := range o {
		if v == "" {
			continue
		}
		m.Set(f, v)
	}
	return m
}

// String renders the record as key=value pairs for debug logging.
func (m Metadata) String() string {
	var b strings.Builder
	for i, f := range Fields() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%q", f, m.Get(f))
	}
	return b.String()
}
