package capture

import "math"

// DefaultBins is the number of frequency buckets in a visualization frame.
const DefaultBins = 128

// Spectrum computes a frequency-magnitude snapshot of a 16-bit little-endian
// PCM fragment, binned into bins buckets with each magnitude normalized to
// [0,255]. bins must be a power of two; the analysis window is the most
// recent 2*bins samples (zero-padded when the fragment is shorter).
func Spectrum(pcm []byte, bins int) []byte {
	n := bins * 2
	re := make([]float64, n)
	im := make([]float64, n)

	// Most recent window of n samples, normalized to [-1,1).
	samples := len(pcm) / 2
	start := 0
	if samples > n {
		start = samples - n
	}
	for i := start; i < samples; i++ {
		s := int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8)
		re[i-start] = float64(s) / 32768.0
	}

	// Hann window to limit spectral leakage.
	for i := 0; i < n; i++ {
		re[i] *= 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}

	fft(re, im)

	out := make([]byte, bins)
	// Full-scale sine under a Hann window peaks near n/4; scale against that.
	scale := float64(n) / 4
	for k := 0; k < bins; k++ {
		mag := math.Hypot(re[k], im[k]) / scale
		if mag > 1 {
			mag = 1
		}
		out[k] = byte(mag * 255)
	}
	return out
}

// fft performs an in-place iterative radix-2 FFT. len(re) must be a power
// of two and equal to len(im).
func fft(re, im []float64) {
	n := len(re)
	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}
	for length := 2; length <= n; length <<= 1 {
		ang := -2 * math.Pi / float64(length)
		wRe, wIm := math.Cos(ang), math.Sin(ang)
		for i := 0; i < n; i += length {
			curRe, curIm := 1.0, 0.0
			for j := 0; j < length/2; j++ {
				aRe, aIm := re[i+j], im[i+j]
				bRe := re[i+j+length/2]*curRe - im[i+j+length/2]*curIm
				bIm := re[i+j+length/2]*curIm + im[i+j+length/2]*curRe
				re[i+j], im[i+j] = aRe+bRe, aIm+bIm
				re[i+j+length/2], im[i+j+length/2] = aRe-bRe, aIm-bIm
				curRe, curIm = curRe*wRe-curIm*wIm, curRe*wIm+curIm*wRe
			}
		}
	}
}
