package metadata

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/polaroid/pkg/errors"
)

func TestNewDisplayConfigAllVisible(t *testing.T) {
	d := NewDisplayConfig()
	for _, key := range Keys() {
		v, err := d.IsVisible(key)
		if err != nil {
			t.Fatalf("IsVisible(%q) error = %v", key, err)
		}
		if !v {
			t.Errorf("IsVisible(%q) = false, want true", key)
		}
	}
	if len(Keys()) != 14 {
		t.Errorf("len(Keys()) = %d, want 14", len(Keys()))
	}
}

func TestToggleRoundTrip(t *testing.T) {
	d := NewDisplayConfig()
	before := d
	for _, key := range Keys() {
		if err := d.Toggle(key); err != nil {
			t.Fatalf("Toggle(%q) error = %v", key, err)
		}
		if v, _ := d.IsVisible(key); v {
			t.Errorf("after one toggle IsVisible(%q) = true", key)
		}
		if err := d.Toggle(key); err != nil {
			t.Fatalf("Toggle(%q) error = %v", key, err)
		}
	}
	if d != before {
		t.Error("double toggle changed the config")
	}
}

func TestToggleUnknownField(t *testing.T) {
	d := NewDisplayConfig()
	before := d
	err := d.Toggle("shutterSpeed")
	if !errors.Is(err, errors.ErrCodeUnknownField) {
		t.Fatalf("Toggle() error = %v, want %s", err, errors.ErrCodeUnknownField)
	}
	if d != before {
		t.Error("failed toggle mutated the config")
	}
	if _, err := d.IsVisible(""); !errors.Is(err, errors.ErrCodeUnknownField) {
		t.Errorf("IsVisible(\"\") error = %v, want %s", err, errors.ErrCodeUnknownField)
	}
}

func TestHide(t *testing.T) {
	d := NewDisplayConfig()
	if err := d.Hide("latitude", " longitude "); err != nil {
		t.Fatalf("Hide() error = %v", err)
	}
	if diff := cmp.Diff([]string{"latitude", "longitude"}, d.Hidden()); diff != "" {
		t.Errorf("Hidden() mismatch (-want +got):\n%s", diff)
	}
	if err := d.Hide("altitude"); err == nil {
		t.Error("Hide(unknown) should fail")
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, err := ParseField(f.String())
		if err != nil || got != f {
			t.Errorf("ParseField(%q) = %v, %v; want %v", f.String(), got, err, f)
		}
	}
	if _, err := ParseField("FocalLength"); err == nil {
		t.Error("ParseField is case-sensitive")
	}
}
