package metrics

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/dynmotion/internal/sim"
)

// FFT is a radix-2 transform. The input length must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum zero-pads data to the next power of two and returns the
// magnitudes of the non-negative frequency bins.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n <<= 1
	}
	padded := make([]float64, n)
	copy(padded, data)

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// Ringing is the dominant oscillation frequency, in Hz, of the signed error
// along the first column. Critically damped and tweened runs report a low
// or zero frequency; an underdamped spring reports close to its damped
// natural frequency.
type Ringing struct {
	errs  []float64
	first float64
	last  float64
}

func NewRinging() *Ringing {
	return &Ringing{}
}

func (r *Ringing) Name() string { return "ring_hz" }

func (r *Ringing) Observe(x, target sim.Sample, t float64) {
	if len(x) == 0 || len(target) == 0 {
		return
	}
	if len(r.errs) == 0 {
		r.first = t
	}
	r.last = t
	r.errs = append(r.errs, x[0]-target[0])
}

func (r *Ringing) Value() float64 {
	n := len(r.errs)
	if n < 4 || r.last <= r.first {
		return 0
	}

	mean := 0.0
	for _, e := range r.errs {
		mean += e
	}
	mean /= float64(n)
	centered := make([]float64, n)
	for i, e := range r.errs {
		centered[i] = e - mean
	}

	ps := PowerSpectrum(centered)
	peak := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0
	}

	dt := (r.last - r.first) / float64(n-1)
	padded := 2 * len(ps)
	return float64(peak) / (float64(padded) * dt)
}

func (r *Ringing) Reset() {
	r.errs = r.errs[:0]
	r.first = 0
	r.last = 0
}
