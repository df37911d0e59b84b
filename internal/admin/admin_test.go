package admin

import (
	"errors"
	"testing"

	"github.com/amarpathshala/pathshala-go/internal/config"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPIN("824008")
	if err != nil {
		t.Fatalf("HashPIN() error = %v", err)
	}

	gate := NewGate(config.AdminConfig{PINHash: hash})

	tests := []struct {
		name string
		pin  string
		want error
	}{
		{"correct", "824008", nil},
		{"surrounding space", " 824008\n", nil},
		{"wrong", "000000", ErrWrongPIN},
		{"empty", "", ErrWrongPIN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := gate.Verify(tt.pin); !errors.Is(err, tt.want) {
				t.Errorf("Verify(%q) = %v, want %v", tt.pin, err, tt.want)
			}
		})
	}
}

func TestHashPINTooShort(t *testing.T) {
	if _, err := HashPIN("12"); err == nil {
		t.Error("expected error for short PIN")
	}
}

func TestVerifyNotConfigured(t *testing.T) {
	gate := NewGate(config.AdminConfig{})
	if err := gate.Verify("824008"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestVerifyCorruptHash(t *testing.T) {
	gate := NewGate(config.AdminConfig{PINHash: "not-a-bcrypt-hash"})
	err := gate.Verify("824008")
	if err == nil || errors.Is(err, ErrWrongPIN) {
		t.Errorf("expected hash error, got %v", err)
	}
}
