package metadata

import (
	"testing"

	"github.com/matzehuels/polaroid/pkg/errors"
)

func TestGetSet(t *testing.T) {
	var m Metadata
	for i, f := range Fields() {
		m.Set(f, f.String())
		if got := m.Get(f); got != f.String() {
			t.Errorf("Get(%v) = %q, want %q", f, got, f.String())
		}
		if m.Present() != i+1 {
			t.Errorf("Present() = %d, want %d", m.Present(), i+1)
		}
	}
	if got := m.Get(Field(99)); got != "" {
		t.Errorf("Get(unknown) = %q, want empty", got)
	}
}

func TestWithOverrides(t *testing.T) {
	m := Metadata{Make: "Canon", Photographer: "Exif Artist"}
	got := m.WithOverrides(Overrides{
		Photographer: "Jane",
		SubjectModel: "Alex",
		Make:         "",
	})
	if got.Photographer != "Jane" || got.SubjectModel != "Alex" {
		t.Errorf("WithOverrides() = %+v", got)
	}
	if got.Make != "Canon" {
		t.Errorf("empty override replaced Make: %q", got.Make)
	}
	if m.Photographer != "Exif Artist" {
		t.Error("WithOverrides mutated the receiver")
	}
}

func TestParseAssignment(t *testing.T) {
	f, v, err := ParseAssignment("locationName = Kyoto, Japan")
	if err != nil {
		t.Fatalf("ParseAssignment() error = %v", err)
	}
	if f != LocationName || v != "Kyoto, Japan" {
		t.Errorf("ParseAssignment() = %v, %q", f, v)
	}

	tests := []struct {
		in   string
		code errors.Code
	}{
		{"photographer", errors.ErrCodeInvalidInput},
		{"altitude=100m", errors.ErrCodeUnknownField},
	}
	for _, tt := range tests {
		if _, _, err := ParseAssignment(tt.in); !errors.Is(err, tt.code) {
			t.Errorf("ParseAssignment(%q) error = %v, want %s", tt.in, err, tt.code)
		}
	}
}

func TestParseOverrides(t *testing.T) {
	o, err := ParseOverrides(map[string]string{"character": "Ryuk"})
	if err != nil {
		t.Fatalf("ParseOverrides() error = %v", err)
	}
	if o[Character] != "Ryuk" {
		t.Errorf("o[Character] = %q", o[Character])
	}
	if _, err := ParseOverrides(map[string]string{"nope": "x"}); !errors.Is(err, errors.ErrCodeUnknownField) {
		t.Errorf("ParseOverrides(unknown) error = %v", err)
	}
}
