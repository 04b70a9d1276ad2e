package errors

import (
	"strings"
	"testing"
)

func TestValidateImagePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "photos/IMG_0001.jpg", false},
		{"absolute", "/home/me/IMG_0001.JPG", false},
		{"with spaces", "My Photos/beach day.jpg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00.jpg", true},
		{"newline", "foo\n.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputDir(t *testing.T) {
	if err := ValidateOutputDir(""); err != nil {
		t.Errorf("empty dir should be valid: %v", err)
	}
	if err := ValidateOutputDir("out"); err != nil {
		t.Errorf("ValidateOutputDir(out) error = %v", err)
	}
	if err := ValidateOutputDir("out\x00"); err == nil {
		t.Error("null byte should fail")
	}
}

func TestValidateBackground(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"white", false},
		{"black", false},
		{"Black", false},
		{" white ", false},
		{"", true},
		{"red", true},
	}

	for _, tt := range tests {
		err := ValidateBackground(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateBackground(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidStyle) {
			t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidStyle)
		}
	}
}

func TestValidateOverride(t *testing.T) {
	if err := ValidateOverride("photographer", "Jane Doe"); err != nil {
		t.Errorf("ValidateOverride() error = %v", err)
	}
	if err := ValidateOverride("photographer", ""); err != nil {
		t.Errorf("empty value should be valid: %v", err)
	}
	if err := ValidateOverride("character", "line\nbreak"); err == nil {
		t.Error("newline should fail")
	}
	if err := ValidateOverride("locationName", strings.Repeat("x", 201)); err == nil {
		t.Error("long value should fail")
	}
}
