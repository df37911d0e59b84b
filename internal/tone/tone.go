// ABOUTME: Test tone generator
// ABOUTME: Generates sine waves as playable buffers for demos and tests
package tone

import (
	"math"
	"time"

	"github.com/amarpathshala/pathshala-go/pkg/audio"
)

// A4 is the reference pitch used by the demo narration
const A4 = 440.0

// Sine renders a sine wave of the given frequency and length. amplitude is
// clamped to [0, 1]; every channel carries the same signal.
func Sine(frequency float64, duration time.Duration, format audio.Format, amplitude float64) *audio.Buffer {
	amplitude = math.Max(0, math.Min(1, amplitude))

	frames := int(duration * time.Duration(format.SampleRate) / time.Second)
	buf := audio.NewBuffer(format.Channels, frames, format.SampleRate)

	for i := 0; i < frames; i++ {
		t := float64(i) / float64(format.SampleRate)
		sample := float32(math.Sin(2*math.Pi*frequency*t) * amplitude)
		for c := range buf.Channels {
			buf.Channels[c][i] = sample
		}
	}

	return buf
}
