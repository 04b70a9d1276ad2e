package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownField, "unknown field %q", "shutterSpeed")

	if err.Code != ErrCodeUnknownField {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownField)
	}

	if err.Message != `unknown field "shutterSpeed"` {
		t.Errorf("Message = %v, want %v", err.Message, `unknown field "shutterSpeed"`)
	}

	expected := `UNKNOWN_FIELD: unknown field "shutterSpeed"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeRasterization, cause, "encode png")

	if err.Code != ErrCodeRasterization {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRasterization)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeResourceLoad, "test"),
			code:     ErrCodeResourceLoad,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeResourceLoad, "test"),
			code:     ErrCodeRasterization,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeResourceLoad, New(ErrCodeHandleReleased, "inner"), "outer"),
			code:     ErrCodeResourceLoad,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("capture: %w", New(ErrCodeExportInFlight, "busy")),
			code:     ErrCodeExportInFlight,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeNoImage, "test"),
			expected: ErrCodeNoImage,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsTimeout(t *testing.T) {
	timeout := Wrap(ErrCodeResourceLoad, context.DeadlineExceeded, "image photo not ready after 10s")
	if !IsTimeout(timeout) {
		t.Error("IsTimeout(deadline) = false, want true")
	}
	if IsTimeout(New(ErrCodeResourceLoad, "decode failed")) {
		t.Error("IsTimeout(decode failure) = true, want false")
	}
	if IsTimeout(Wrap(ErrCodeRasterization, context.DeadlineExceeded, "x")) {
		t.Error("IsTimeout(rasterization) = true, want false")
	}
}

func TestAborts(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{New(ErrCodeMetadataExtraction, "no exif"), false},
		{New(ErrCodeResourceLoad, "timeout"), true},
		{New(ErrCodeRasterization, "encode"), true},
		{errors.New("plain"), true},
	}
	for _, tt := range tests {
		if got := Aborts(tt.err); got != tt.want {
			t.Errorf("Aborts(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeExportInFlight, "an export is already running"),
			expected: "an export is already running",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
