// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for playable-buffer encoders
package encode

import "github.com/amarpathshala/pathshala-go/pkg/audio"

// Encoder encodes a playable buffer into raw bytes
type Encoder interface {
	// Encode converts a buffer to encoded audio data
	Encode(buf *audio.Buffer) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
