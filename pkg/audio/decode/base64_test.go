// ABOUTME: Tests for base64 payload decoding
// ABOUTME: Tests byte-exact decoding and rejection of malformed text
package decode

import (
	"errors"
	"testing"
)

func TestBase64(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []byte
	}{
		{"empty", "", []byte{}},
		{"padded", "AAECAw==", []byte{0, 1, 2, 3}},
		{"unpadded", "AAECAw", []byte{0, 1, 2, 3}},
		{"full quantum", "AAEC", []byte{0, 1, 2}},
		{"line wrapped", "AAEC\nAw==\n", []byte{0, 1, 2, 3}},
		{"high bytes", "//79", []byte{0xFF, 0xFE, 0xFD}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Base64(tt.payload)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != string(tt.want) {
				t.Errorf("got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestBase64_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"bangs", "!!!invalid!!!"},
		{"url alphabet", "AA-_"},
		{"interior padding", "AA==AAAA"},
		{"dangling char", "AAECA"},
		{"non ascii", "AAEé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Base64(tt.payload)
			if err == nil {
				t.Fatalf("expected error, got % x", data)
			}
			if !errors.Is(err, ErrMalformedPayload) {
				t.Errorf("expected ErrMalformedPayload, got %v", err)
			}

			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("expected *DecodeError, got %T", err)
			}
		})
	}
}

func TestNarration_Malformed(t *testing.T) {
	buf, err := Narration("!!!invalid!!!")
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
	if buf != nil {
		t.Error("expected no buffer for malformed payload")
	}
}
