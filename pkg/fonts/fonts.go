// Package fonts provides the typefaces a polaroid caption can be set in.
//
// Each [Family] offered to the user is backed by fonts compiled into the
// binary (the Go font family from golang.org/x/image), so rendering never
// depends on what is installed on the machine. A TrueType or OpenType file
// can be loaded with [LoadFile] instead.
package fonts

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/polaroid/pkg/errors"
)

// Family is a caption font family.
type Family string

const (
	Arial      Family = "Arial"
	Courier    Family = "Courier"
	Quicksand  Family = "Quicksand"
	Poppins    Family = "Poppins"
	Montserrat Family = "Montserrat"
)

// Default is the family used when none is chosen.
const Default = Montserrat

type ttfPair struct {
	regular, bold []byte
}

// The offered names are kept for familiarity; the glyphs come from the
// closest embedded Go font.
var embedded = map[Family]ttfPair{
	Arial:      {goregular.TTF, gobold.TTF},
	Courier:    {gomono.TTF, gomonobold.TTF},
	Quicksand:  {gomedium.TTF, gomedium.TTF},
	Poppins:    {gomedium.TTF, gobold.TTF},
	Montserrat: {goregular.TTF, gobold.TTF},
}

// Families returns the offered families in menu order.
func Families() []Family {
	return []Family{Arial, Courier, Quicksand, Poppins, Montserrat}
}

// Parse resolves a family name case-insensitively. "" yields Default.
func Parse(name string) (Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default, nil
	}
	for _, f := range Families() {
		if strings.EqualFold(string(f), name) {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFont, "invalid font: %q (must be one of: %s)", name, joinFamilies())
}

func joinFamilies() string {
	names := make([]string, 0, len(embedded))
	for _, f := range Families() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// Set is a parsed regular and bold pair with a cache of sized faces.
type Set struct {
	Name    string
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

var (
	loaded   = map[Family]*Set{}
	loadedMu sync.Mutex
)

// Load returns the parsed fonts for f. Parsing happens once per family.
func Load(f Family) (*Set, error) {
	pair, ok := embedded[f]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFont, "invalid font: %q", f)
	}

	loadedMu.Lock()
	defer loadedMu.Unlock()
	if s, ok := loaded[f]; ok {
		return s, nil
	}
	s, err := newSet(string(f), pair.regular, pair.bold)
	if err != nil {
		return nil, err
	}
	loaded[f] = s
	return s, nil
}

// LoadFile parses a TrueType or OpenType file. The same outlines serve as
// both regular and bold.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "read font %s", path)
	}
	return newSet(path, data, nil)
}

func newSet(name string, regular, bold []byte) (*Set, error) {
	r, err := opentype.Parse(regular)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse %s", name)
	}
	b := r
	if bold != nil {
		if b, err = opentype.Parse(bold); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse %s bold", name)
		}
	}
	return &Set{Name: name, regular: r, bold: b, faces: map[faceKey]font.Face{}}, nil
}

// Face returns a face at size pixels (72 DPI), cached per size and weight.
func (s *Set) Face(size float64, bold bool) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", size)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := faceKey{size, bold}
	if f, ok := s.faces[key]; ok {
		return f, nil
	}
	src := s.regular
	if bold {
		src = s.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "%s face at %vpx", s.Name, size)
	}
	s.faces[key] = f
	return f, nil
}
