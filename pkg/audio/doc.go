// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Buffer types and sample conversion functions
// Package audio provides the audio types shared by the narration pipeline.
//
// This package defines:
//   - Format: describes a raw PCM layout (codec, sample rate, channels, bit depth)
//   - NarrationFormat: the fixed 24 kHz mono 16-bit layout of lesson narration
//   - Buffer: a playable, per-channel buffer of normalized float samples
//
// It also provides conversions between int16 samples and the normalized
// [-1.0, 1.0] range used by Buffer.
//
// Example:
//
//	buf := audio.NewBuffer(1, 24000, audio.NarrationFormat.SampleRate)
//	buf.Channels[0][0] = audio.SampleFromInt16(-32768) // -1.0
//	fmt.Println(buf.Duration()) // 1s
package audio
