package capture

import (
	"encoding/binary"
	"math"
	"testing"
)

func pcmSine(freqBin, fftSize int, amplitude float64) []byte {
	buf := make([]byte, fftSize*2)
	for i := 0; i < fftSize; i++ {
		v := amplitude * math.Sin(2*math.Pi*float64(freqBin)*float64(i)/float64(fftSize))
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(int16(v*32767)))
	}
	return buf
}

func TestSpectrumShape(t *testing.T) {
	frame := Spectrum(pcmSine(10, 256, 0.8), 128)
	if len(frame) != 128 {
		t.Fatalf("frame length = %d, want 128", len(frame))
	}
}

func TestSpectrumSilence(t *testing.T) {
	frame := Spectrum(make([]byte, 512), 128)
	for i, v := range frame {
		if v != 0 {
			t.Fatalf("bin %d = %d for silence, want 0", i, v)
		}
	}
}

func TestSpectrumEmptyFragment(t *testing.T) {
	// No data yet: zero-padded window, all-zero frame, no panic.
	frame := Spectrum(nil, 64)
	if len(frame) != 64 {
		t.Fatalf("frame length = %d, want 64", len(frame))
	}
	for _, v := range frame {
		if v != 0 {
			t.Fatal("expected silent frame for empty fragment")
		}
	}
}

func TestSpectrumPeakAtToneBin(t *testing.T) {
	const bins = 128
	const tone = 17
	frame := Spectrum(pcmSine(tone, bins*2, 0.9), bins)

	peak := 0
	for i, v := range frame {
		if v > frame[peak] {
			peak = i
		}
	}
	// Hann smearing puts energy in adjacent bins; the peak must be within one.
	if peak < tone-1 || peak > tone+1 {
		t.Fatalf("peak at bin %d, want near %d", peak, tone)
	}
	if frame[peak] < 100 {
		t.Fatalf("peak magnitude %d too small for a near-full-scale tone", frame[peak])
	}
}

func TestSpectrumUsesMostRecentWindow(t *testing.T) {
	const bins = 64
	// Old loud tone followed by trailing silence: snapshot reflects the tail.
	loud := pcmSine(5, bins*2, 0.9)
	fragment := append(loud, make([]byte, bins*4)...)
	frame := Spectrum(fragment, bins)
	for i, v := range frame {
		if v != 0 {
			t.Fatalf("bin %d = %d, want 0: analysis window should cover the newest samples", i, v)
		}
	}
}
