// ABOUTME: Base64 payload decoder
// ABOUTME: Reverses the text encoding of narration payloads, rejecting malformed input
package decode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedPayload is matched by every base64 decoding failure
var ErrMalformedPayload = errors.New("malformed audio payload")

// DecodeError reports where a payload stopped being valid base64.
// Offset counts characters after whitespace has been removed.
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed audio payload at offset %d: %v", e.Offset, e.Err)
}

// Unwrap lets errors.Is match ErrMalformedPayload
func (e *DecodeError) Unwrap() []error {
	return []error{ErrMalformedPayload, e.Err}
}

// Base64 returns the exact bytes encoded by payload. ASCII whitespace is
// ignored and trailing padding is optional; anything else outside the
// standard alphabet is an error, never a silent truncation.
func Base64(payload string) ([]byte, error) {
	compact := stripWhitespace(payload)

	enc := base64.StdEncoding
	if len(compact)%4 != 0 {
		enc = base64.RawStdEncoding
	}

	data, err := enc.DecodeString(compact)
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, &DecodeError{Offset: int64(corrupt), Err: err}
		}
		return nil, &DecodeError{Err: err}
	}
	return data, nil
}

func stripWhitespace(s string) string {
	if !strings.ContainsAny(s, " \t\n\f\r") {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, s)
}
