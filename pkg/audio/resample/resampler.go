// ABOUTME: Linear resampler for converting audio sample rates
// ABOUTME: Lets a buffer play on a device opened at a different rate
package resample

import "github.com/amarpathshala/pathshala-go/pkg/audio"

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Resample converts interleaved input at inputRate into output at
// outputRate and returns the number of samples written
func (r *Resampler) Resample(input, output []float32) int {
	if len(input) == 0 {
		return 0
	}

	inputFrames := len(input) / r.channels
	outputFrames := len(output) / r.channels

	outIdx := 0
	for outIdx < outputFrames {
		inputIdx := int(r.position)
		if inputIdx >= inputFrames {
			break
		}

		frac := float32(r.position - float64(inputIdx))
		next := min(inputIdx+1, inputFrames-1)

		for ch := 0; ch < r.channels; ch++ {
			a := input[inputIdx*r.channels+ch]
			b := input[next*r.channels+ch]
			output[outIdx*r.channels+ch] = a + (b-a)*frac
		}

		outIdx++
		r.position += r.ratio
	}

	r.position -= float64(int(r.position))
	return outIdx * r.channels
}

// Reset clears the interpolation position
func (r *Resampler) Reset() {
	r.position = 0
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}

// Buffer returns buf converted to rate. buf is returned unchanged if it is
// already at rate.
func Buffer(buf *audio.Buffer, rate int) *audio.Buffer {
	if buf.SampleRate == rate || buf.Frames() == 0 || rate <= 0 {
		return buf
	}

	channels := buf.NumChannels()
	r := New(buf.SampleRate, rate, channels)

	in := buf.Interleaved()
	out := make([]float32, r.OutputSamplesNeeded(len(in)))
	n := r.Resample(in, out)
	frames := n / channels

	res := audio.NewBuffer(channels, frames, rate)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			res.Channels[c][i] = out[i*channels+c]
		}
	}
	return res
}
