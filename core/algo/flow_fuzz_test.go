package algo

import (
	"math"
	"testing"
)

// quantize maps an arbitrary float onto a quarter grid in [-1000, 1000] so the
// comparisons of both algorithms stay exact in binary floating point.
func quantize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Mod(v, 1000)
	return math.Round(v*4) / 4
}

// FuzzFastFlows checks the sliding-window flows against the pairwise reference.
func FuzzFastFlows(f *testing.F) {
	f.Add(3.0, 2.0, 2.0, 0.0, 1.0, 0.0, 3.0)
	f.Add(1.0, 4.0, 3.0, 3.0, 0.0, 1.0, 2.0)
	f.Add(5.0, 5.0, 5.0, 5.0, 5.0, 0.0, 0.0)
	f.Add(-7.5, 2.25, 0.0, 11.0, -1.0, 2.0, 0.0)

	f.Fuzz(func(t *testing.T, a, b, c, d, e, q, width float64) {
		perf := []float64{quantize(a), quantize(b), quantize(c), quantize(d), quantize(e)}
		q = math.Abs(quantize(q))
		width = math.Abs(quantize(width))

		fns := []PreferenceFunction{VShape{P: q + width}, Linear{Q: q, P: q + width}}
		for _, fn := range fns {
			order := Argsort(perf)
			rq, rp, _ := fn.Ramp()
			fastPos, fastNeg := FastFlows(perf, order, rq, rp)
			slowPos, slowNeg := SlowFlows(perf, fn)
			for i := range perf {
				if math.Abs(fastPos[i]-slowPos[i]) > flowTolerance || math.Abs(fastNeg[i]-slowNeg[i]) > flowTolerance {
					t.Fatalf("%s on %v: fast (%v, %v) != slow (%v, %v) at %d",
						fn, perf, fastPos[i], fastNeg[i], slowPos[i], slowNeg[i], i)
				}
			}
		}
	})
}

// FuzzNormalize checks the range and the odd symmetry of every preference function.
func FuzzNormalize(f *testing.F) {
	f.Add(0.0, 1.0, 2.0)
	f.Add(-3.5, 0.0, 0.0)
	f.Add(10.0, 2.0, 2.0)

	f.Fuzz(func(t *testing.T, d, q, width float64) {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return
		}
		q = math.Abs(quantize(q))
		width = math.Abs(quantize(width))
		fns := []PreferenceFunction{Usual{}, UShape{P: q}, VShape{P: q + width}, Linear{Q: q, P: q + width}}
		for _, fn := range fns {
			v := fn.Normalize(d)
			if v < 0 || v > 1 {
				t.Fatalf("%s.Normalize(%v) = %v out of [0,1]", fn, d, v)
			}
			if fn.SymNormalize(d) != -fn.SymNormalize(-d) {
				t.Fatalf("%s.SymNormalize is not odd at %v", fn, d)
			}
		}
	})
}
