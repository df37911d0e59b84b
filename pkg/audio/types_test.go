// ABOUTME: Tests for audio types
// ABOUTME: Tests sample conversion functions and buffer geometry
package audio

import (
	"testing"
	"time"
)

func TestSampleFromInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int16
		expected float32
	}{
		{"zero", 0, 0},
		{"half", 16384, 0.5},
		{"negative half", -16384, -0.5},
		{"min", -32768, -1.0},
		{"max", 32767, 32767.0 / 32768.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestSampleToInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected int16
	}{
		{"zero", 0, 0},
		{"half", 0.5, 16384},
		{"min", -1.0, -32768},
		{"one clamps", 1.0, 32767},
		{"above range", 1.5, 32767},
		{"below range", -2.0, -32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleToInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestRoundTrip16Bit(t *testing.T) {
	samples := []int16{0, 100, -100, 1000, -1000, 32767, -32768}

	for _, original := range samples {
		normalized := SampleFromInt16(original)
		result := SampleToInt16(normalized)
		if result != original {
			t.Errorf("round-trip failed: %d -> %v -> %d", original, normalized, result)
		}
	}
}

func TestBufferGeometry(t *testing.T) {
	buf := NewBuffer(2, 48000, 24000)

	if buf.NumChannels() != 2 {
		t.Errorf("expected 2 channels, got %d", buf.NumChannels())
	}
	if buf.Frames() != 48000 {
		t.Errorf("expected 48000 frames, got %d", buf.Frames())
	}
	if buf.Duration() != 2*time.Second {
		t.Errorf("expected 2s, got %v", buf.Duration())
	}
}

func TestEmptyBuffer(t *testing.T) {
	buf := &Buffer{SampleRate: 24000}
	if buf.Frames() != 0 {
		t.Errorf("expected 0 frames, got %d", buf.Frames())
	}
	if buf.Duration() != 0 {
		t.Errorf("expected zero duration, got %v", buf.Duration())
	}
}

func TestInterleaved(t *testing.T) {
	buf := NewBuffer(2, 2, 24000)
	buf.Channels[0][0], buf.Channels[1][0] = 0.1, 0.2
	buf.Channels[0][1], buf.Channels[1][1] = 0.3, 0.4

	got := buf.Interleaved()
	want := []float32{0.1, 0.2, 0.3, 0.4}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestNarrationFormat(t *testing.T) {
	if NarrationFormat.SampleRate != 24000 || NarrationFormat.Channels != 1 || NarrationFormat.BitDepth != 16 {
		t.Errorf("unexpected narration format: %s", NarrationFormat)
	}
	if NarrationFormat.BytesPerFrame() != 2 {
		t.Errorf("expected 2 bytes per frame, got %d", NarrationFormat.BytesPerFrame())
	}
}
