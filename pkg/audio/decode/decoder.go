// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for raw payload decoders
package decode

import "github.com/amarpathshala/pathshala-go/pkg/audio"

// Decoder turns raw encoded bytes into a playable buffer
type Decoder interface {
	// Decode converts encoded audio data to a playable buffer
	Decode(data []byte) (*audio.Buffer, error)

	// Close releases decoder resources
	Close() error
}
