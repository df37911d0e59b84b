// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling.
//
// Example:
//
//	r := resample.New(24000, 48000, 1)
//	n := r.Resample(inputSamples, outputSamples)
//
// Buffer converts a whole audio.Buffer in one call.
package resample
