// ABOUTME: Tests for the test tone generator
// ABOUTME: Checks length, range and periodicity of generated sine waves
package tone

import (
	"math"
	"testing"
	"time"

	"github.com/amarpathshala/pathshala-go/pkg/audio"
)

func TestSineLength(t *testing.T) {
	buf := Sine(A4, time.Second, audio.NarrationFormat, 0.5)

	if buf.Frames() != 24000 {
		t.Errorf("expected 24000 frames, got %d", buf.Frames())
	}
	if buf.Duration() != time.Second {
		t.Errorf("expected 1s, got %v", buf.Duration())
	}
}

func TestSineAmplitude(t *testing.T) {
	buf := Sine(A4, 100*time.Millisecond, audio.NarrationFormat, 0.5)

	var peak float64
	for _, s := range buf.Channels[0] {
		peak = math.Max(peak, math.Abs(float64(s)))
	}
	if peak > 0.5+1e-6 {
		t.Errorf("peak %v exceeds amplitude 0.5", peak)
	}
	if peak < 0.49 {
		t.Errorf("peak %v too low for amplitude 0.5", peak)
	}
}

func TestSineClampsAmplitude(t *testing.T) {
	buf := Sine(A4, 10*time.Millisecond, audio.NarrationFormat, 3)
	for i, s := range buf.Channels[0] {
		if s > 1 || s < -1 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}
}

func TestSineStartsAtZero(t *testing.T) {
	buf := Sine(A4, 10*time.Millisecond, audio.Format{Codec: "pcm", SampleRate: 24000, Channels: 2, BitDepth: 16}, 1)

	if buf.Channels[0][0] != 0 || buf.Channels[1][0] != 0 {
		t.Errorf("expected first frame to be silent, got %v %v", buf.Channels[0][0], buf.Channels[1][0])
	}
	if buf.Channels[0][10] != buf.Channels[1][10] {
		t.Error("channels differ")
	}
}
