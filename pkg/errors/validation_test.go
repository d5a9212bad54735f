package errors

import (
	"testing"
)

func TestValidateBaseName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "layout_float_cards", false},
		{"valid with dash", "float-ops", false},
		{"valid with dot", "float.v2", false},
		{"valid digits", "panel2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"path traversal", "../secret", true},
		{"slash", "res/layout", true},
		{"backslash", "res\\layout", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"space", "float cards", true},
		{"leading dash", "-cards", true},
		{"colon", "cards:0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateBaseName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateExtension(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"xml", ".xml", false},
		{"double", ".layout.xml", false},

		{"empty", "", true},
		{"no dot", "xml", true},
		{"separator", "./xml", true},
		{"traversal", "../x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExtension(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExtension(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidName,
		ErrCodeInvalidAngle,
		ErrCodeInvalidVariant,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeMissingBase,
		ErrCodeFileNotFound,
		ErrCodeIO,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
