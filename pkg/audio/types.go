// ABOUTME: Audio type definitions
// ABOUTME: Defines the fixed narration format and the playable float buffer
package audio

import (
	"fmt"
	"time"
)

const (
	// 16-bit PCM range constants
	MaxInt16 = 32767
	MinInt16 = -32768

	// Int16Scale is the divisor that maps an int16 sample onto [-1.0, 1.0)
	Int16Scale = 32768.0
)

// Format describes a raw PCM layout
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// NarrationFormat is the layout produced by the speech service: mono
// little-endian signed 16-bit PCM at 24 kHz. The payload carries no header,
// so this is never inspected or negotiated.
var NarrationFormat = Format{
	Codec:      "pcm",
	SampleRate: 24000,
	Channels:   1,
	BitDepth:   16,
}

// BytesPerFrame returns the size of one frame (one sample per channel)
func (f Format) BytesPerFrame() int {
	return f.Channels * f.BitDepth / 8
}

func (f Format) String() string {
	return fmt.Sprintf("%s %dHz %dch %d-bit", f.Codec, f.SampleRate, f.Channels, f.BitDepth)
}

// Buffer is a playable audio buffer: one slice of normalized samples per
// channel, every slice the same length.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer allocates a silent buffer
func NewBuffer(channels, frames, sampleRate int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	return &Buffer{
		SampleRate: sampleRate,
		Channels:   data,
	}
}

// NumChannels returns the channel count
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// Frames returns the number of frames in the buffer
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns frames / sample rate
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Interleaved returns the samples frame by frame (c0 c1 c0 c1 ...)
func (b *Buffer) Interleaved() []float32 {
	channels := b.NumChannels()
	frames := b.Frames()
	out := make([]float32, frames*channels)
	for c, data := range b.Channels {
		for i, s := range data {
			out[i*channels+c] = s
		}
	}
	return out
}

// SampleFromInt16 normalizes an int16 sample; -32768 maps to exactly -1.0
func SampleFromInt16(sample int16) float32 {
	return float32(sample) / Int16Scale
}

// SampleToInt16 converts a normalized sample back to int16, clamping
// anything outside [-1.0, 1.0]
func SampleToInt16(sample float32) int16 {
	scaled := float64(sample) * Int16Scale
	if scaled > MaxInt16 {
		return MaxInt16
	}
	if scaled < MinInt16 {
		return MinInt16
	}
	return int16(scaled)
}
