// ABOUTME: PCM audio decoder
// ABOUTME: Interprets little-endian 16-bit PCM bytes as a normalized per-channel buffer
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/amarpathshala/pathshala-go/pkg/audio"
)

// ErrInvalidLayout is returned for a non-positive sample rate or channel count
var ErrInvalidLayout = errors.New("invalid pcm layout")

// FrameCount returns how many whole frames fit in byteLen bytes of 16-bit
// PCM and how many trailing bytes are left over. Leftover bytes belong to
// a partial final frame and are dropped, not rounded up.
func FrameCount(byteLen, channels int) (frames, dropped int) {
	if channels < 1 || byteLen <= 0 {
		return 0, max(byteLen, 0)
	}
	frameBytes := 2 * channels
	frames = byteLen / frameBytes
	return frames, byteLen - frames*frameBytes
}

// PCM interprets data as interleaved little-endian int16 samples.
//
// sample(c, i) = int16(i*channels + c) / 32768, so every value lies in
// [-1.0, 1.0) with -32768 mapping to exactly -1.0. A partial final frame is
// dropped (see FrameCount). The result depends only on its inputs.
func PCM(data []byte, sampleRate, channels int) (*audio.Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidLayout, channels)
	}
	if sampleRate < 1 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidLayout, sampleRate)
	}

	frames, _ := FrameCount(len(data), channels)
	buf := audio.NewBuffer(channels, frames, sampleRate)

	for c := 0; c < channels; c++ {
		out := buf.Channels[c]
		for i := 0; i < frames; i++ {
			off := (i*channels + c) * 2
			out[i] = audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(data[off:])))
		}
	}

	return buf, nil
}

// Narration decodes a base64 narration payload with the fixed 24 kHz mono layout
func Narration(payload string) (*audio.Buffer, error) {
	data, err := Base64(payload)
	if err != nil {
		return nil, err
	}
	return PCM(data, audio.NarrationFormat.SampleRate, audio.NarrationFormat.Channels)
}

// PCMDecoder decodes raw PCM chunks with a fixed layout
type PCMDecoder struct {
	sampleRate int
	channels   int
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	if format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16)", format.BitDepth)
	}

	if format.Channels < 1 || format.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLayout, format)
	}

	return &PCMDecoder{
		sampleRate: format.SampleRate,
		channels:   format.Channels,
	}, nil
}

// Decode converts PCM bytes to a playable buffer
func (d *PCMDecoder) Decode(data []byte) (*audio.Buffer, error) {
	return PCM(data, d.sampleRate, d.channels)
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
