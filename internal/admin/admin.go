// ABOUTME: PIN gate for lesson authoring
// ABOUTME: Hashes and verifies the admin PIN with bcrypt
package admin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amarpathshala/pathshala-go/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrWrongPIN is returned when the entered PIN does not match
	ErrWrongPIN = errors.New("wrong admin PIN")

	// ErrNotConfigured is returned when no PIN hash has been set
	ErrNotConfigured = errors.New("admin PIN not configured")
)

// MinPINLength is the shortest PIN HashPIN accepts
const MinPINLength = 4

// HashPIN hashes a PIN for storage in the config file
func HashPIN(pin string) (string, error) {
	pin = strings.TrimSpace(pin)
	if len(pin) < MinPINLength {
		return "", fmt.Errorf("PIN must be at least %d characters", MinPINLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Gate checks PINs against the configured hash
type Gate struct {
	hash string
}

// NewGate creates a gate from the admin config section
func NewGate(cfg config.AdminConfig) *Gate {
	return &Gate{hash: cfg.PINHash}
}

// Verify returns nil if pin matches the configured hash
func (g *Gate) Verify(pin string) error {
	if g.hash == "" {
		return ErrNotConfigured
	}

	err := bcrypt.CompareHashAndPassword([]byte(g.hash), []byte(strings.TrimSpace(pin)))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrWrongPIN
	}
	if err != nil {
		return fmt.Errorf("verify PIN: %w", err)
	}
	return nil
}
