package value

import "math"

// lanes is a fixed-width group of four float64 values. Transform arithmetic
// is expressed as whole-group operations so the compiler can keep the
// loop bodies branch-free.
type lanes [4]float64

func (l lanes) add(o lanes) lanes {
	for i := range l {
		l[i] += o[i]
	}
	return l
}

func (l lanes) sub(o lanes) lanes {
	for i := range l {
		l[i] -= o[i]
	}
	return l
}

func (l lanes) scale(f float64) lanes {
	for i := range l {
		l[i] *= f
	}
	return l
}

// fma returns l + d*t lane-wise.
func (l lanes) fma(d lanes, t float64) lanes {
	for i := range l {
		l[i] += d[i] * t
	}
	return l
}

func (l lanes) dot() float64 {
	var s float64
	for _, v := range l {
		s += v * v
	}
	return s
}

func (l lanes) norm() float64 {
	return math.Sqrt(l.dot())
}
