package metadata

import (
	"github.com/matzehuels/polaroid/pkg/errors"
)

// Field identifies one displayable metadata value.
type Field int

// The fields in display order. Both Metadata and DisplayConfig are indexed by
// this enumeration, so their key sets cannot diverge.
const (
	Photographer Field = iota
	Make
	Model
	Lens
	FocalLength
	Aperture
	Shutter
	ISO
	Latitude
	Longitude
	SubjectModel
	LocationName
	Character
	DateTimeTaken

	numFields
)

var fieldNames = [numFields]string{
	Photographer:  "photographer",
	Make:          "make",
	Model:         "model",
	Lens:          "lens",
	FocalLength:   "focalLength",
	Aperture:      "aperture",
	Shutter:       "shutter",
	ISO:           "iso",
	Latitude:      "latitude",
	Longitude:     "longitude",
	SubjectModel:  "subjectModel",
	LocationName:  "locationName",
	Character:     "character",
	DateTimeTaken: "dateTimeTaken",
}

var fieldLabels = [numFields]string{
	Photographer:  "Photographer",
	Make:          "Make",
	Model:         "Model",
	Lens:          "Lens",
	FocalLength:   "Focal length",
	Aperture:      "Aperture",
	Shutter:       "Shutter",
	ISO:           "ISO",
	Latitude:      "Latitude",
	Longitude:     "Longitude",
	SubjectModel:  "Model (subject)",
	LocationName:  "Location",
	Character:     "Character",
	DateTimeTaken: "Date taken",
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, numFields)
	for f, name := range fieldNames {
		m[name] = Field(f)
	}
	return m
}()

// String returns the field's key, e.g. "focalLength".
func (f Field) String() string {
	if !f.valid() {
		return "unknown"
	}
	return fieldNames[f]
}

// Label returns a human-readable name for forms and tables.
func (f Field) Label() string {
	if !f.valid() {
		return "Unknown"
	}
	return fieldLabels[f]
}

func (f Field) valid() bool {
	return f >= 0 && f < numFields
}

// Fields returns every field in display order.
func Fields() []Field {
	fs := make([]Field, numFields)
	for i := range fs {
		fs[i] = Field(i)
	}
	return fs
}

// Keys returns every field key in display order.
func Keys() []string {
	return append([]string(nil), fieldNames[:]...)
}

// ParseField resolves a field key. Unknown keys return an UNKNOWN_FIELD error.
func ParseField(name string) (Field, error) {
	f, ok := fieldsByName[name]
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownField, "unknown field %q", name)
	}
	return f, nil
}
