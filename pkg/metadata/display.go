package metadata

import "strings"

// DisplayConfig records which fields the user wants on the polaroid.
//
// The zero value hides everything; use NewDisplayConfig for the default where
// every field is visible. A DisplayConfig is a value type: copying it takes a
// snapshot.
type DisplayConfig struct {
	visible [numFields]bool
}

// NewDisplayConfig returns a config with every field visible.
func NewDisplayConfig() DisplayConfig {
	var d DisplayConfig
	for i := range d.visible {
		d.visible[i] = true
	}
	return d
}

// Toggle flips the visibility of the named field.
func (d *DisplayConfig) Toggle(name string) error {
	f, err := ParseField(name)
	if err != nil {
		return err
	}
	d.ToggleField(f)
	return nil
}

// IsVisible reports the visibility of the named field.
func (d DisplayConfig) IsVisible(name string) (bool, error) {
	f, err := ParseField(name)
	if err != nil {
		return false, err
	}
	return d.visible[f], nil
}

// ToggleField flips the visibility of f.
func (d *DisplayConfig) ToggleField(f Field) {
	if f.valid() {
		d.visible[f] = !d.visible[f]
	}
}

// Visible reports whether f is shown.
func (d DisplayConfig) Visible(f Field) bool {
	return f.valid() && d.visible[f]
}

// SetVisible sets the visibility of f.
func (d *DisplayConfig) SetVisible(f Field, v bool) {
	if f.valid() {
		d.visible[f] = v
	}
}

// Hide hides each named field. It stops at the first unknown name.
func (d *DisplayConfig) Hide(names ...string) error {
	for _, name := range names {
		f, err := ParseField(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		d.visible[f] = false
	}
	return nil
}

// Keys returns the field keys the config covers, in display order.
func (d DisplayConfig) Keys() []string {
	return Keys()
}

// Hidden returns the keys of hidden fields in display order.
func (d DisplayConfig) Hidden() []string {
	var out []string
	for f, v := range d.visible {
		if !v {
			out = append(out, Field(f).String())
		}
	}
	return out
}
