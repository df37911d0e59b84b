// ABOUTME: PCM audio encoder
// ABOUTME: Encodes normalized float buffers to 16-bit PCM bytes and base64 payloads
package encode

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/amarpathshala/pathshala-go/pkg/audio"
)

// PCMEncoder encodes PCM audio
type PCMEncoder struct {
	channels int
}

// NewPCM creates a new PCM encoder
func NewPCM(format audio.Format) (Encoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM encoder: %s", format.Codec)
	}

	if format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16)", format.BitDepth)
	}

	return &PCMEncoder{
		channels: format.Channels,
	}, nil
}

// Encode converts a buffer to interleaved 16-bit PCM bytes
func (e *PCMEncoder) Encode(buf *audio.Buffer) ([]byte, error) {
	if buf.NumChannels() != e.channels {
		return nil, fmt.Errorf("channel mismatch: encoder has %d, buffer has %d", e.channels, buf.NumChannels())
	}
	return PCM(buf), nil
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}

// PCM interleaves buf as little-endian int16 samples
func PCM(buf *audio.Buffer) []byte {
	samples := buf.Interleaved()
	output := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(output[i*2:], uint16(audio.SampleToInt16(sample)))
	}
	return output
}

// Base64 encodes buf as a narration payload
func Base64(buf *audio.Buffer) string {
	return base64.StdEncoding.EncodeToString(PCM(buf))
}
